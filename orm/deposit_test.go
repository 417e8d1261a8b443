package orm

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
)

// Deposit stands in for a locker: a party and the amount it put in.
type Deposit struct {
	Depositor []byte
	Amount    int64
}

var _ Model = (*Deposit)(nil)

func (d *Deposit) Marshal() ([]byte, error) {
	return weave.Marshal(d)
}

func (d *Deposit) Unmarshal(raw []byte) error {
	return weave.Unmarshal(raw, d)
}

func (d *Deposit) Validate() error {
	switch {
	case len(d.Depositor) == 0:
		return errors.Field("Depositor", errors.ErrEmpty, "required")
	case d.Amount <= 0:
		return errors.Field("Amount", errors.ErrAmount, "must be positive")
	}
	return nil
}

func (d *Deposit) Copy() CloneableData {
	return &Deposit{Depositor: append([]byte(nil), d.Depositor...), Amount: d.Amount}
}

func byDepositor(obj Object) ([]byte, error) {
	d, ok := obj.Value().(*Deposit)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return d.Depositor, nil
}

// bySize buckets deposits below and above 1000.
func bySize(obj Object) ([]byte, error) {
	if obj.Value().(*Deposit).Amount < 1000 {
		return []byte("small"), nil
	}
	return []byte("large"), nil
}
