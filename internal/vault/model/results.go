package model

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// DescriptorResult is the worker answer to a pending vault.
type DescriptorResult struct {
	VaultID VaultID `json:"vault_id"`
	Attempt uint32  `json:"attempt"`
	Output  string  `json:"output,omitempty"`
	Change  string  `json:"change,omitempty"`
	Error   string  `json:"error,omitempty"`
}

type OffchainOp string

const (
	OpBuildPSBT OffchainOp = "build_psbt"
	OpBroadcast OffchainOp = "broadcast"
)

// OffchainResult is the worker answer to a claimed proposal.
type OffchainResult struct {
	ProposalID ProposalID `json:"proposal_id"`
	Attempt    uint32     `json:"attempt"`
	Op         OffchainOp `json:"op"`
	PSBT       []byte     `json:"psbt,omitempty"`
	Ready      bool       `json:"ready,omitempty"`
	TxID       string     `json:"tx_id,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// ProofResult is the worker answer to a reserve scan.
type ProofResult struct {
	VaultID    VaultID        `json:"vault_id"`
	Height     uint64         `json:"height"`
	BlockHash  string         `json:"block_hash"`
	Commitment chainhash.Hash `json:"commitment"`
	Total      btcutil.Amount `json:"total_sats"`
	UTXOCount  uint32         `json:"utxo_count"`
}
