package weavetest

import "github.com/iov-one/lexlocker/weave"

// calls counts Check and Deliver invocations.
type calls struct {
	checks, delivers int
}

func (c *calls) CheckCallCount() int   { return c.checks }
func (c *calls) DeliverCallCount() int { return c.delivers }
func (c *calls) CallCount() int        { return c.checks + c.delivers }

// Handler returns a copy of its result, or its error when set.
type Handler struct {
	calls
	CheckResult   weave.CheckResult
	CheckErr      error
	DeliverResult weave.DeliverResult
	DeliverErr    error
}

var _ weave.Handler = (*Handler)(nil)

func (h *Handler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	h.checks++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	h.delivers++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler stores Value under Key and then fails with Err, if set.
// It shows whether a decorator rolls back the writes of a failed call.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ weave.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(_ weave.Context, db weave.KVStore, _ weave.Tx) (*weave.CheckResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(_ weave.Context, db weave.KVStore, _ weave.Tx) (*weave.DeliverResult, error) {
	if err := h.write(db); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h *WriteHandler) write(db weave.KVStore) error {
	if err := db.Set(h.Key, h.Value); err != nil {
		return err
	}
	return h.Err
}

// PanicHandler panics with Msg.
type PanicHandler struct {
	Msg string
}

func (h PanicHandler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	panic(h.Msg)
}

// Decorator passes calls on to the next handler unless its error for the
// call is set.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ weave.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate wraps h in d.
func Decorate(h weave.Handler, d weave.Decorator) weave.Handler {
	return decorated{h: h, d: d}
}

type decorated struct {
	h weave.Handler
	d weave.Decorator
}

func (x decorated) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return x.d.Check(ctx, db, tx, x.h)
}

func (x decorated) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return x.d.Deliver(ctx, db, tx, x.h)
}

// Tx carries Msg. Its encoding is not supported, so it cannot go
// through a WeaveRunner.
type Tx struct {
	Msg weave.Msg
	// Err is returned by GetMsg.
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("weavetest.Tx has no encoding")
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("weavetest.Tx has no encoding")
}

// Msg routes to RoutePath. Its encoding is Serialized and Err is returned
// by every method that returns an error.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
