package model

import "time"

type EventKind string

const (
	EventXPubStored          EventKind = "xpub_stored"
	EventXPubRemoved         EventKind = "xpub_removed"
	EventVaultCreated        EventKind = "vault_created"
	EventVaultRemoved        EventKind = "vault_removed"
	EventVaultRetried        EventKind = "vault_retried"
	EventDescriptorsStored   EventKind = "descriptors_stored"
	EventDescriptorInvalid   EventKind = "descriptor_invalid"
	EventProposalCreated     EventKind = "proposal_created"
	EventProposalRemoved     EventKind = "proposal_removed"
	EventProposalRejected    EventKind = "proposal_rejected"
	EventProposalRetried     EventKind = "proposal_retried"
	EventSignatureReceived   EventKind = "signature_received"
	EventPSBTUpdated         EventKind = "psbt_updated"
	EventPSBTFailed          EventKind = "psbt_failed"
	EventProposalBroadcasted EventKind = "proposal_broadcasted"
	EventProposalFinalized   EventKind = "proposal_finalized"
	EventProofRecorded       EventKind = "proof_recorded"
)

// Event is a notification emitted after a ledger update commits.
type Event struct {
	Kind       EventKind       `json:"kind"`
	VaultID    VaultID         `json:"vault_id"`
	ProposalID ProposalID      `json:"proposal_id"`
	Account    AccountID       `json:"account"`
	Message    string          `json:"message,omitempty"`
	Proof      *ProofOfReserve `json:"proof,omitempty"`
	At         time.Time       `json:"at"`
}
