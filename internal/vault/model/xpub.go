package model

import "github.com/goodnatureofminers/multisigvault-backend/pkg/bounded"

// XPub is the extended public key an account signs vaults with.
type XPub struct {
	Account AccountID     `json:"account"`
	Hash    [IDSize]byte  `json:"hash"`
	Value   bounded.Bytes `json:"value"`
}
