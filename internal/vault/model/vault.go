package model

import (
	"time"

	"github.com/goodnatureofminers/multisigvault-backend/pkg/bounded"
)

// Descriptors are the receive and change output descriptors of a vault.
type Descriptors struct {
	Output bounded.Bytes `json:"output"`
	Change bounded.Bytes `json:"change"`
}

func (d Descriptors) IsEmpty() bool {
	return d.Output.IsEmpty()
}

type Vault struct {
	ID          VaultID       `json:"id"`
	Owner       AccountID     `json:"owner"`
	Cosigners   []AccountID   `json:"cosigners"`
	Threshold   uint32        `json:"threshold"`
	Description bounded.Bytes `json:"description"`
	Descriptors Descriptors   `json:"descriptors"`
	BDKStatus   BDKStatus     `json:"bdk_status"`
	// Attempt numbers descriptor generation rounds so late results of an
	// earlier round can be told apart.
	Attempt   uint32    `json:"attempt"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsCosigner reports whether account signs for the vault.
func (v Vault) IsCosigner(account AccountID) bool {
	for _, c := range v.Cosigners {
		if c == account {
			return true
		}
	}
	return false
}

// Members is the owner followed by every cosigner not equal to the owner.
func (v Vault) Members() []AccountID {
	members := make([]AccountID, 0, len(v.Cosigners)+1)
	members = append(members, v.Owner)
	for _, c := range v.Cosigners {
		if c != v.Owner {
			members = append(members, c)
		}
	}
	return members
}

// IsReady reports whether the vault holds validated descriptors.
func (v Vault) IsReady() bool {
	return v.BDKStatus.State == BDKValid && !v.Descriptors.IsEmpty()
}
