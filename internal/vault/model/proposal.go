package model

import (
	"sort"
	"time"

	"github.com/goodnatureofminers/multisigvault-backend/pkg/bounded"
)

type Proposal struct {
	ID          ProposalID    `json:"id"`
	VaultID     VaultID       `json:"vault_id"`
	Proposer    AccountID     `json:"proposer"`
	Description bounded.Bytes `json:"description"`
	PSBT        bounded.Bytes `json:"psbt"`
	// Signatures keeps at most one signed PSBT per cosigner.
	Signatures     map[AccountID]bounded.Bytes `json:"signatures"`
	Status         ProposalStatus              `json:"status"`
	OffchainStatus OffchainStatus              `json:"offchain_status"`
	BDKStatus      BDKStatus                   `json:"bdk_status"`
	TxID           string                      `json:"tx_id,omitempty"`

	// Attempt increases on every claim; results carry the attempt they
	// answer.
	Attempt   uint32    `json:"attempt"`
	ClaimedAt time.Time `json:"claimed_at"`
	// Revision increases on every accepted signature. A claim remembers the
	// revision it saw so signatures arriving mid-flight re-arm the queue.
	Revision        uint64 `json:"revision"`
	ClaimedRevision uint64 `json:"claimed_revision"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignedBy lists the cosigners with a stored signature, ordered by id.
func (p Proposal) SignedBy() []AccountID {
	out := make([]AccountID, 0, len(p.Signatures))
	for account := range p.Signatures {
		out = append(out, account)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// SignatureBlobs returns the stored signatures ordered by cosigner id.
func (p Proposal) SignatureBlobs() [][]byte {
	signers := p.SignedBy()
	out := make([][]byte, 0, len(signers))
	for _, account := range signers {
		out = append(out, p.Signatures[account].Bytes())
	}
	return out
}
