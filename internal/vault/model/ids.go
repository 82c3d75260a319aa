package model

import (
	"encoding/hex"
	"fmt"
)

// IDSize is the byte length of every identifier in the ledger.
const IDSize = 32

type (
	// AccountID identifies a user or cosigner.
	AccountID [IDSize]byte
	// VaultID is derived from the vault creation parameters.
	VaultID [IDSize]byte
	// ProposalID is derived from the vault, proposer and template PSBT.
	ProposalID [IDSize]byte
	// ProofID is derived from the vault and the proof height.
	ProofID [IDSize]byte
)

func parseID(s string) ([IDSize]byte, error) {
	var out [IDSize]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("decode id: %w", err)
	}
	if len(raw) != IDSize {
		return out, fmt.Errorf("id must be %d bytes, got %d", IDSize, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

func ParseAccountID(s string) (AccountID, error) {
	id, err := parseID(s)
	return AccountID(id), err
}

func ParseVaultID(s string) (VaultID, error) {
	id, err := parseID(s)
	return VaultID(id), err
}

func ParseProposalID(s string) (ProposalID, error) {
	id, err := parseID(s)
	return ProposalID(id), err
}

func ParseProofID(s string) (ProofID, error) {
	id, err := parseID(s)
	return ProofID(id), err
}

func (a AccountID) String() string  { return hex.EncodeToString(a[:]) }
func (v VaultID) String() string    { return hex.EncodeToString(v[:]) }
func (p ProposalID) String() string { return hex.EncodeToString(p[:]) }
func (p ProofID) String() string    { return hex.EncodeToString(p[:]) }

func (a AccountID) IsZero() bool  { return a == AccountID{} }
func (v VaultID) IsZero() bool    { return v == VaultID{} }
func (p ProposalID) IsZero() bool { return p == ProposalID{} }

func (a AccountID) MarshalText() ([]byte, error)  { return []byte(a.String()), nil }
func (v VaultID) MarshalText() ([]byte, error)    { return []byte(v.String()), nil }
func (p ProposalID) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (p ProofID) MarshalText() ([]byte, error)    { return []byte(p.String()), nil }

func (a *AccountID) UnmarshalText(b []byte) (err error) {
	*a, err = ParseAccountID(string(b))
	return err
}

func (v *VaultID) UnmarshalText(b []byte) (err error) {
	*v, err = ParseVaultID(string(b))
	return err
}

func (p *ProposalID) UnmarshalText(b []byte) (err error) {
	*p, err = ParseProposalID(string(b))
	return err
}

func (p *ProofID) UnmarshalText(b []byte) (err error) {
	*p, err = ParseProofID(string(b))
	return err
}
