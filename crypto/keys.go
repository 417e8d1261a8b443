/*
Package crypto provides ed25519 keys used to derive caller identities.

The ledger trusts the caller identity carried by each transaction and never
verifies signatures on chain. Keys are used by the tooling to derive
addresses and by clients that want to prove key ownership off chain.
*/
package crypto

import (
	"github.com/iov-one/lexlocker/errors"
	"github.com/iov-one/lexlocker/weave"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions derived from public keys
const ExtensionName = "sigs"

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte
}

var (
	_ weave.Persistent = (*PublicKey)(nil)
	_ weave.Persistent = (*Signature)(nil)
)

// Marshal serializes the key.
func (p *PublicKey) Marshal() ([]byte, error) { return weave.Marshal(p) }

// Unmarshal loads the key from its serialized form.
func (p *PublicKey) Unmarshal(bz []byte) error { return weave.Unmarshal(bz, p) }

// Marshal serializes the signature.
func (s *Signature) Marshal() ([]byte, error) { return weave.Marshal(s) }

// Unmarshal loads the signature from its serialized form.
func (s *Signature) Unmarshal(bz []byte) error { return weave.Unmarshal(bz, s) }

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if sig == nil || len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a weave condition. An empty key
// has no condition.
func (p *PublicKey) Condition() weave.Condition {
	if len(p.Ed25519) == 0 {
		return nil
	}
	return weave.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the key condition.
func (p *PublicKey) Address() weave.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrState, "invalid private key")
	}
	bz := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: bz}, nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return &PublicKey{}
	}
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases. Panics if the seed is not 32 bytes.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	priv := ed25519.NewKeyFromSeed(seed)
	return &PrivateKey{Ed25519: priv}
}
