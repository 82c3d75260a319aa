package model

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ProofOfReserve is an attestation of the vault holdings at a chain height.
type ProofOfReserve struct {
	ID         ProofID        `json:"id"`
	VaultID    VaultID        `json:"vault_id"`
	Height     uint64         `json:"height"`
	BlockHash  string         `json:"block_hash"`
	Commitment chainhash.Hash `json:"commitment"`
	Total      btcutil.Amount `json:"total_sats"`
	UTXOCount  uint32         `json:"utxo_count"`
	CreatedAt  time.Time      `json:"created_at"`
}
