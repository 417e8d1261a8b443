package app

import (
	"github.com/iov-one/lexlocker/weave"
)

// ResultSet holds zero or more query results. A query response carries
// the keys and the values as two sets of the same length.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

var _ weave.Persistent = (*ResultSet)(nil)

func (r *ResultSet) Marshal() ([]byte, error) {
	return weave.Marshal(r)
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, r)
}

// splitResults returns the keys and the values of models in order.
func splitResults(models []weave.Model) (keys, values *ResultSet) {
	keys = &ResultSet{Results: make([][]byte, len(models))}
	values = &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		keys.Results[i] = m.Key
		values.Results[i] = m.Value
	}
	return keys, values
}

// UnmarshalOneResult loads the first result of a serialized set into
// dest. An empty set leaves dest untouched.
func UnmarshalOneResult(raw []byte, dest weave.Persistent) error {
	var set ResultSet
	if err := set.Unmarshal(raw); err != nil {
		return err
	}
	if len(set.Results) == 0 {
		return nil
	}
	return dest.Unmarshal(set.Results[0])
}
