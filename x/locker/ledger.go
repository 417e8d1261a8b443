package locker

import (
	"github.com/iov-one/lexlocker/coin"
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/orm"
	"github.com/iov-one/lexlocker/weave"
	"github.com/iov-one/lexlocker/x/custody"
	"github.com/iov-one/lexlocker/x/resolver"
)

// lockerSeq is shared with the bucket, so ids and keys come from the
// same counter.
var lockerSeq = orm.NewSequence(BucketName, orm.SeqID)

// DepositRequest describes a new locker.
type DepositRequest struct {
	Receiver weave.Address
	Resolver weave.Address
	Asset    custody.Asset
	Details  string
	// Attached is the native value sent along with the call.
	Attached *coin.Coin
}

// ResolveRequest is the decision of a resolver. Coin awards apply to
// fungible assets, ItemAward to an item.
type ResolveRequest struct {
	DepositorAward *coin.Coin
	ReceiverAward  *coin.Coin
	ItemAward      Party
	Details        string
}

// Ledger is the state machine of lockers. Every operation receives the
// authenticated caller explicitly.
//
// Operations are not atomic on their own. Run them inside a savepoint
// so a failed transfer discards all writes.
type Ledger struct {
	bucket   orm.ModelBucket
	registry resolver.Registry
	backend  custody.Backend
	payouts  map[resolver.Routing]custody.Payout
}

// NewLedger returns a ledger storing lockers in given bucket, reading
// resolver configuration from the registry and moving assets with the
// backend. Payouts select the disbursement strategy for each routing
// mode.
func NewLedger(
	bucket orm.ModelBucket,
	registry resolver.Registry,
	backend custody.Backend,
	payouts map[resolver.Routing]custody.Payout,
) Ledger {
	return Ledger{
		bucket:   bucket,
		registry: registry,
		backend:  backend,
		payouts:  payouts,
	}
}

// Locker returns the locker with given id. Id 0 never exists.
func (l Ledger) Locker(db weave.ReadOnlyKVStore, id uint64) (*Locker, error) {
	if id == 0 {
		return nil, errors.Wrap(ErrLockerNotFound, "id 0")
	}
	var lk Locker
	if err := l.bucket.One(db, LockerKey(id), &lk); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrLockerNotFound, "id %d", id)
		}
		return nil, err
	}
	return &lk, nil
}

// ByParty returns all lockers in which the address takes the role of
// given index, one of DepositorIndex, ReceiverIndex or ResolverIndex.
func (l Ledger) ByParty(db weave.ReadOnlyKVStore, index string, addr weave.Address) ([]Locker, error) {
	var lockers []Locker
	if err := l.bucket.ByIndex(db, index, addr, &lockers); err != nil {
		return nil, err
	}
	return lockers, nil
}

// Deposit creates a new locker and pulls the asset from the caller into
// its custody account. The new locker id is returned.
func (l Ledger) Deposit(ctx weave.Context, db weave.KVStore, caller weave.Address, req DepositRequest) (uint64, error) {
	if err := caller.Validate(); err != nil {
		return 0, errors.Wrap(err, "caller")
	}
	if err := req.Receiver.Validate(); err != nil {
		return 0, errors.Wrap(err, "receiver")
	}
	if err := req.Resolver.Validate(); err != nil {
		return 0, errors.Wrap(err, "resolver")
	}
	if err := req.Asset.Validate(); err != nil {
		return 0, errors.Wrap(err, "asset")
	}
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	if err := validateDetails(conf, req.Details); err != nil {
		return 0, err
	}
	if err := checkAttached(conf, req.Asset, req.Attached); err != nil {
		return 0, err
	}

	routing, feeRate, err := l.snapshot(db, req.Resolver)
	if err != nil {
		return 0, err
	}

	key, err := lockerSeq.NextVal(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot acquire key")
	}
	lk := &Locker{
		Metadata:  &weave.Metadata{Schema: 1},
		ID:        idFromKey(key),
		Depositor: caller,
		Receiver:  req.Receiver,
		Resolver:  req.Resolver,
		Asset:     req.Asset.Copy(),
		Details:   req.Details,
		Status:    Active,
		Custody:   CustodyAddress(key),
		Routing:   routing,
		FeeRate:   feeRate,
	}

	// Native value comes attached to the call, anything else is
	// pulled through the backend. Both end up in the custody account.
	pull := req.Asset
	if pull.Kind == custody.Native {
		pull = pull.WithAmount(*req.Attached)
	}
	if err := l.backend.Pull(db, caller, lk.Custody, pull); err != nil {
		return 0, errors.Wrapf(ErrTransferFailed, "pull %s: %s", pull.Kind, err)
	}
	if _, err := l.bucket.Put(db, key, lk); err != nil {
		return 0, errors.Wrap(err, "cannot store locker")
	}

	weave.GetLogger(ctx).Info("locker created",
		"locker", lk.ID, "action", "deposit", "asset", lk.Asset.Kind, "routing", lk.Routing)
	return lk.ID, nil
}

// Lock marks a dispute. Only the depositor or the receiver may lock.
// Locking does not restrict further operations and is accepted on
// released or resolved lockers as well.
func (l Ledger) Lock(ctx weave.Context, db weave.KVStore, caller weave.Address, id uint64) error {
	lk, err := l.Locker(db, id)
	if err != nil {
		return err
	}
	if !caller.Equals(lk.Depositor) && !caller.Equals(lk.Receiver) {
		return errors.Wrapf(ErrNotLockerParty, "locker %d", id)
	}
	if lk.Locked {
		return nil
	}
	lk.Locked = true
	if _, err := l.bucket.Put(db, LockerKey(id), lk); err != nil {
		return errors.Wrap(err, "cannot store locker")
	}
	weave.GetLogger(ctx).Info("locker locked", "locker", id, "action", "lock")
	return nil
}

// Release pays the whole custody to the receiver. Only the depositor
// may release.
func (l Ledger) Release(ctx weave.Context, db weave.KVStore, caller weave.Address, id uint64) error {
	lk, err := l.Locker(db, id)
	if err != nil {
		return err
	}
	if !caller.Equals(lk.Depositor) {
		return errors.Wrapf(ErrNotDepositor, "locker %d", id)
	}
	if lk.Status.IsTerminal() {
		return errors.Wrapf(ErrAlreadyTerminal, "locker %d is %s", id, lk.Status)
	}

	payout := l.payout(lk)
	if err := payout.Disburse(db, lk.Custody, lk.Receiver, lk.Asset); err != nil {
		return errors.Wrapf(ErrTransferFailed, "release: %s", err)
	}
	lk.Status = Released
	if _, err := l.bucket.Put(db, LockerKey(id), lk); err != nil {
		return errors.Wrap(err, "cannot store locker")
	}
	weave.GetLogger(ctx).Info("locker released", "locker", id, "action", "release")
	return nil
}

// Resolve ends the locker with the decision of its resolver.
//
// For fungible assets the awards must not exceed the custody. From the
// remainder the resolver is paid its fee, capped at FeeRate of the
// custody, and the rest returns to the depositor. An item is given to
// the awarded party.
func (l Ledger) Resolve(ctx weave.Context, db weave.KVStore, caller weave.Address, id uint64, req ResolveRequest) error {
	lk, err := l.Locker(db, id)
	if err != nil {
		return err
	}
	if !caller.Equals(lk.Resolver) {
		return errors.Wrapf(ErrNotResolver, "locker %d", id)
	}
	if lk.Status.IsTerminal() {
		return errors.Wrapf(ErrAlreadyTerminal, "locker %d is %s", id, lk.Status)
	}
	if req.Details != "" {
		conf, err := loadConf(db)
		if err != nil {
			return err
		}
		if err := validateDetails(conf, req.Details); err != nil {
			return err
		}
	}

	if lk.IsNonFungible() {
		err = l.resolveItem(db, lk, req)
	} else {
		err = l.resolveValue(db, lk, req)
	}
	if err != nil {
		return err
	}

	if req.Details != "" {
		lk.Details = req.Details
	}
	lk.Status = Resolved
	if _, err := l.bucket.Put(db, LockerKey(id), lk); err != nil {
		return errors.Wrap(err, "cannot store locker")
	}
	weave.GetLogger(ctx).Info("locker resolved", "locker", id, "action", "resolve")
	return nil
}

func (l Ledger) resolveItem(db weave.KVStore, lk *Locker, req ResolveRequest) error {
	if req.DepositorAward != nil || req.ReceiverAward != nil {
		return errors.Wrap(ErrAwardExceedsCustody, "an item cannot be split")
	}
	if err := req.ItemAward.Validate(); err != nil {
		return errors.Wrap(err, "item award")
	}
	to := lk.Depositor
	if req.ItemAward == Receiver {
		to = lk.Receiver
	}
	if err := l.backend.Push(db, lk.Custody, to, lk.Asset); err != nil {
		return errors.Wrapf(ErrTransferFailed, "resolve: %s", err)
	}
	lk.ItemAward = req.ItemAward
	return nil
}

func (l Ledger) resolveValue(db weave.KVStore, lk *Locker, req ResolveRequest) error {
	if req.ItemAward != 0 {
		return errors.Wrap(errors.ErrInput, "no item to award")
	}
	total := *lk.Asset.Amount
	split, err := splitCustody(total, lk.FeeRate, req.DepositorAward, req.ReceiverAward)
	if err != nil {
		return err
	}

	payout := l.payout(lk)
	refund, err := split.depositor.Add(split.refund)
	if err != nil {
		return errors.Wrap(err, "refund")
	}
	transfers := []struct {
		to     weave.Address
		amount coin.Coin
		payout custody.Payout
	}{
		{to: lk.Depositor, amount: refund, payout: payout},
		{to: lk.Receiver, amount: split.receiver, payout: payout},
		// The fee is always paid to the resolver wallet.
		{to: lk.Resolver, amount: split.fee, payout: custody.NewDirect(l.backend)},
	}
	for _, t := range transfers {
		if t.amount.IsZero() {
			continue
		}
		if err := t.payout.Disburse(db, lk.Custody, t.to, lk.Asset.WithAmount(t.amount)); err != nil {
			return errors.Wrapf(ErrTransferFailed, "resolve: %s", err)
		}
	}

	lk.DepositorAward = &split.depositor
	lk.ReceiverAward = &split.receiver
	lk.ResolverFee = &split.fee
	return nil
}

type custodySplit struct {
	depositor coin.Coin
	receiver  coin.Coin
	fee       coin.Coin
	refund    coin.Coin
}

// splitCustody computes how the custodied total is distributed. Missing
// awards are zero. Awards must be non negative, in the custody currency,
// and together not exceed the total.
func splitCustody(total coin.Coin, feeRate int32, depositorAward, receiverAward *coin.Coin) (*custodySplit, error) {
	award := func(c *coin.Coin, name string) (coin.Coin, error) {
		if c == nil {
			return coin.Coin{Ticker: total.Ticker}, nil
		}
		if !c.SameType(total) {
			return coin.Coin{}, errors.Wrapf(errors.ErrCurrency, "%s award must be %s", name, total.Ticker)
		}
		if !c.IsNonNegative() {
			return coin.Coin{}, errors.Wrapf(errors.ErrAmount, "negative %s award", name)
		}
		return *c, nil
	}
	d, err := award(depositorAward, "depositor")
	if err != nil {
		return nil, err
	}
	r, err := award(receiverAward, "receiver")
	if err != nil {
		return nil, err
	}
	awarded, err := d.Add(r)
	if err != nil {
		return nil, errors.Wrap(ErrAwardExceedsCustody, err.Error())
	}
	if !total.IsGTE(awarded) {
		return nil, errors.Wrapf(ErrAwardExceedsCustody, "%s awarded from %s", awarded, total)
	}
	remainder, err := total.Subtract(awarded)
	if err != nil {
		return nil, errors.Wrap(err, "remainder")
	}
	fee, err := total.Percent(int64(feeRate))
	if err != nil {
		return nil, errors.Wrap(err, "fee")
	}
	if remainder.Compare(fee) < 0 {
		fee = remainder
	}
	refund, err := remainder.Subtract(fee)
	if err != nil {
		return nil, errors.Wrap(err, "refund")
	}
	return &custodySplit{depositor: d, receiver: r, fee: fee, refund: refund}, nil
}

// snapshot returns the payout configuration of the resolver. An
// unregistered resolver is paid out directly without fee.
func (l Ledger) snapshot(db weave.ReadOnlyKVStore, addr weave.Address) (resolver.Routing, int32, error) {
	res, err := l.registry.Resolver(db, addr)
	switch {
	case err == nil:
		return res.Routing, res.FeeRate, nil
	case errors.ErrNotFound.Is(err):
		return resolver.Direct, 0, nil
	default:
		return 0, 0, errors.Wrap(err, "resolver configuration")
	}
}

func (l Ledger) payout(lk *Locker) custody.Payout {
	if p, ok := l.payouts[lk.Routing]; ok {
		return p
	}
	return custody.NewDirect(l.backend)
}

func checkAttached(conf *Configuration, a custody.Asset, attached *coin.Coin) error {
	switch a.Kind {
	case custody.Native:
		if a.Amount.Ticker != conf.NativeTicker {
			return errors.Wrapf(ErrInvalidValue, "native currency is %s", conf.NativeTicker)
		}
		if attached == nil || !attached.Equals(*a.Amount) {
			return errors.Wrapf(ErrInvalidValue, "want %s, got %v", a.Amount, attached)
		}
	case custody.Fungible:
		if a.Ref == conf.NativeTicker {
			return errors.Wrap(ErrInvalidValue, "native currency must be attached")
		}
		fallthrough
	default:
		if !coin.IsEmpty(attached) {
			return errors.Wrapf(ErrInvalidValue, "unexpected attached value %s", attached)
		}
	}
	return nil
}

func validateDetails(conf *Configuration, details string) error {
	if int64(len(details)) > int64(conf.MaxDetailsLength) {
		return errors.Wrapf(errors.ErrInput, "details longer than %d", conf.MaxDetailsLength)
	}
	return nil
}

func idFromKey(key []byte) uint64 {
	return uint64(orm.DecodeSequence(key))
}
