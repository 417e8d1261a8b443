package orm

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// queryPrefix lists every pair whose key starts with prefix.
func queryPrefix(db weave.ReadOnlyKVStore, prefix []byte) ([]weave.Model, error) {
	it, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res []weave.Model
	for {
		key, value, err := it.Next()
		switch {
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		case err != nil:
			return nil, err
		}
		res = append(res, weave.Pair(key, value))
	}
}

// prefixRange returns the iterator bounds covering all keys with prefix.
// A nil end means the range is open.
func prefixRange(prefix []byte) ([]byte, []byte) {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}

// RegisterQuery serves raw store keys under "/".
func RegisterQuery(qr weave.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

var _ weave.QueryHandler = rawQuery{}

func (rawQuery) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil || value == nil {
			return nil, err
		}
		return []weave.Model{weave.Pair(data, value)}, nil
	case weave.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
