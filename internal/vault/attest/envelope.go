// Package attest signs worker results so only the coordinator holding the
// worker key can feed external outcomes back into the ledger.
package attest

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	ErrBadSignature = errors.New("envelope signature mismatch")
	ErrWrongKind    = errors.New("unexpected envelope kind")
)

type Kind string

const (
	KindDescriptorResult Kind = "descriptor_result"
	KindOffchainResult   Kind = "offchain_result"
	KindProofResult      Kind = "proof_result"
)

var digestTag = []byte("multisigvault/worker-result")

// Envelope carries a JSON payload signed by the worker key.
type Envelope struct {
	Kind      Kind   `json:"kind"`
	Payload   []byte `json:"payload"`
	Signature []byte `json:"signature"`
}

func digest(kind Kind, payload []byte) *chainhash.Hash {
	return chainhash.TaggedHash(digestTag, []byte(kind), payload)
}

type Signer struct {
	key *btcec.PrivateKey
}

func NewSigner(key *btcec.PrivateKey) *Signer {
	return &Signer{key: key}
}

// ParseSigner decodes a hex encoded 32 byte private key.
func ParseSigner(hexKey string) (*Signer, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decode worker key: %w", err)
	}
	if len(raw) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("worker key must be %d bytes, got %d", btcec.PrivKeyBytesLen, len(raw))
	}
	key, _ := btcec.PrivKeyFromBytes(raw)
	return NewSigner(key), nil
}

// GenerateSigner creates a signer with a fresh random key.
func GenerateSigner() (*Signer, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate worker key: %w", err)
	}
	return NewSigner(key), nil
}

func (s *Signer) PublicKey() *btcec.PublicKey {
	return s.key.PubKey()
}

// Seal encodes v and signs it for kind.
func (s *Signer) Seal(kind Kind, v any) (Envelope, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s: %w", kind, err)
	}
	sig, err := schnorr.Sign(s.key, digest(kind, payload)[:])
	if err != nil {
		return Envelope{}, fmt.Errorf("sign %s: %w", kind, err)
	}
	return Envelope{Kind: kind, Payload: payload, Signature: sig.Serialize()}, nil
}

type Verifier struct {
	pub *btcec.PublicKey
}

func NewVerifier(pub *btcec.PublicKey) *Verifier {
	return &Verifier{pub: pub}
}

// Open checks the envelope signature and kind, then decodes the payload.
func (v *Verifier) Open(env Envelope, kind Kind, out any) error {
	if env.Kind != kind {
		return fmt.Errorf("%w: got %q, want %q", ErrWrongKind, env.Kind, kind)
	}
	sig, err := schnorr.ParseSignature(env.Signature)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	if !sig.Verify(digest(env.Kind, env.Payload)[:], v.pub) {
		return ErrBadSignature
	}
	if err := json.Unmarshal(env.Payload, out); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	return nil
}
