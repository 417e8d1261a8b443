package weave_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addr20 is 0x01...0x14, encoded as lex1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5xr8uzm
var addr20 = weave.Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

func TestAddressForms(t *testing.T) {
	assert.Equal(t, "0102030405060708090A0B0C0D0E0F1011121314", addr20.String())
	assert.Equal(t, "(nil)", weave.Address(nil).String())

	enc, err := addr20.Bech32("lex")
	require.NoError(t, err)
	assert.Equal(t, "lex1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5xr8uzm", enc)

	assert.Nil(t, weave.NewAddress(nil))
	assert.NoError(t, custody(1).Address().Validate())
	assert.True(t, errors.ErrInput.Is(weave.Address("short").Validate()))
}

func TestParseAddress(t *testing.T) {
	hexAddr := hex.EncodeToString(addr20)

	cases := map[string]struct {
		enc     string
		want    weave.Address
		wantErr *errors.Error
	}{
		"plain hex":       {enc: hexAddr, want: addr20},
		"hex":             {enc: "hex:" + hexAddr, want: addr20},
		"bech32":          {enc: "bech32:lex1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5xr8uzm", want: addr20},
		"custody":         {enc: "cond:locker/seq/0000000000000001", want: custody(1).Address()},
		"empty":           {enc: ""},
		"empty hex":       {enc: "hex:"},
		"empty cond":      {enc: "cond:"},
		"short":           {enc: "6865782d61646472", wantErr: errors.ErrInput},
		"not hex":         {enc: "xyz", wantErr: errors.ErrInput},
		"bad checksum":    {enc: "bech32:lex1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5xr8uzq", wantErr: errors.ErrInput},
		"cond sections":   {enc: "cond:locker/0000000000000001", wantErr: errors.ErrInput},
		"cond data":       {enc: "cond:locker/seq/zz", wantErr: errors.ErrInput},
		"cond short type": {enc: "cond:locker/s/01", wantErr: errors.ErrInput},
		"unknown format":  {enc: "base58:xxx", wantErr: errors.ErrType},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := weave.ParseAddress(tc.enc)
			require.True(t, tc.wantErr.Is(err), "got %+v", err)
			assert.Equal(t, tc.want, got)

			var fromJSON weave.Address
			raw, _ := json.Marshal(tc.enc)
			err = json.Unmarshal(raw, &fromJSON)
			require.True(t, tc.wantErr.Is(err), "got %+v", err)
			assert.Equal(t, tc.want, fromJSON)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	raw, err := json.Marshal(addr20)
	require.NoError(t, err)
	assert.Equal(t, `"0102030405060708090A0B0C0D0E0F1011121314"`, string(raw))

	var back weave.Address
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, addr20, back)

	type holder struct {
		Owner weave.Address `json:"owner"`
	}
	raw, err = json.Marshal(holder{})
	require.NoError(t, err)
	assert.Equal(t, `{"owner":""}`, string(raw))
}
