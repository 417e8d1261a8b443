package resolver

import (
	"encoding/json"
	"strings"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/weave"
)

const (
	// BucketName is where resolver configurations are stored
	BucketName = "resolvers"

	// MaxFeeRate is the highest fee, in basis points, a resolver can
	// charge. It is the whole custodied amount.
	MaxFeeRate = 10000
)

// Routing selects how value is paid out of custody.
type Routing int32

const (
	// Direct pays the beneficiary's wallet.
	Direct Routing = 1
	// Pooled credits the beneficiary's vault account.
	Pooled Routing = 2
)

var routingNames = map[Routing]string{
	Direct: "direct",
	Pooled: "pooled",
}

func (r Routing) String() string {
	if n, ok := routingNames[r]; ok {
		return n
	}
	return "unknown"
}

// Validate returns an error unless the routing is a known mode.
func (r Routing) Validate() error {
	if _, ok := routingNames[r]; !ok {
		return errors.Wrapf(errors.ErrInput, "routing %d", r)
	}
	return nil
}

// UnmarshalJSON accepts the numeric value as well as the mode name.
func (r *Routing) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		for k, v := range routingNames {
			if strings.EqualFold(v, name) {
				*r = k
				return nil
			}
		}
		return errors.Wrapf(errors.ErrInput, "unknown routing %q", name)
	}
	var n int32
	if err := json.Unmarshal(raw, &n); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*r = Routing(n)
	return nil
}

// ValidateFeeRate returns an error if the rate is out of range.
func ValidateFeeRate(rate int32) error {
	if rate < 0 || rate > MaxFeeRate {
		return errors.Wrapf(errors.ErrInput, "fee rate %d outside of [0, %d]", rate, MaxFeeRate)
	}
	return nil
}

// Resolver is the configuration of an arbitration identity.
type Resolver struct {
	Metadata *weave.Metadata `json:"metadata"`
	Address  weave.Address   `json:"address"`
	Routing  Routing         `json:"routing"`
	FeeRate  int32           `json:"fee_rate"`
}

var _ orm.Model = (*Resolver)(nil)

func (r *Resolver) Validate() error {
	var err error
	err = errors.AppendField(err, "Metadata", r.Metadata.Validate())
	err = errors.AppendField(err, "Address", r.Address.Validate())
	err = errors.AppendField(err, "Routing", r.Routing.Validate())
	err = errors.AppendField(err, "FeeRate", ValidateFeeRate(r.FeeRate))
	return err
}

func (r *Resolver) Copy() orm.CloneableData {
	return &Resolver{
		Metadata: r.Metadata.Copy(),
		Address:  append(weave.Address(nil), r.Address...),
		Routing:  r.Routing,
		FeeRate:  r.FeeRate,
	}
}

func (r *Resolver) Marshal() ([]byte, error) {
	return weave.Marshal(r)
}

func (r *Resolver) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, r)
}

// NewBucket returns a bucket of resolvers keyed by address
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Resolver{})
}
