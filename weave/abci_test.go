package weave

import (
	"fmt"
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func TestDeliverResponse(t *testing.T) {
	tags := []common.KVPair{{Key: []byte("locker"), Value: []byte("deposit")}}
	res := DeliverResponse(&DeliverResult{Data: []byte{0, 0, 0, 0, 0, 0, 0, 1}, Tags: tags}, nil, false)
	assert.Equal(t, errors.SuccessABCICode, res.Code)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, res.Data)
	assert.Equal(t, tags, res.Tags)

	res = DeliverResponse(nil, errors.Wrap(errors.ErrNotFound, "locker"), false)
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)
	assert.Equal(t, "cannot deliver tx: locker: not found", res.Log)
	assert.Nil(t, res.Data)
}

func TestCheckResponse(t *testing.T) {
	res := CheckResponse(&CheckResult{Log: "fine"}, nil, false)
	assert.Equal(t, errors.SuccessABCICode, res.Code)
	assert.Equal(t, "fine", res.Log)

	res = CheckResponse(nil, errors.ErrUnauthorized, false)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
	assert.Equal(t, "cannot check tx: unauthorized", res.Log)

	// Internal failures are not described outside of debug mode.
	res = CheckResponse(nil, fmt.Errorf("disk on fire"), false)
	assert.Equal(t, "cannot check tx: internal error", res.Log)
	res = CheckResponse(nil, fmt.Errorf("disk on fire"), true)
	assert.Contains(t, res.Log, "disk on fire")
}

func TestQueryError(t *testing.T) {
	res := QueryError(errors.Wrap(errors.ErrInput, "unknown mod: range"), false)
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)
	assert.Equal(t, "unknown mod: range: invalid input", res.Log)
}
