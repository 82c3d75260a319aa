package model

import (
	"github.com/goodnatureofminers/multisigvault-backend/pkg/bounded"
)

// ProposalStatus is the lifecycle stage of a spend proposal.
type ProposalStatus string

const (
	ProposalPending     ProposalStatus = "pending"
	ProposalBroadcasted ProposalStatus = "broadcasted"
	ProposalFinalized   ProposalStatus = "finalized"
	ProposalRejected    ProposalStatus = "rejected"
)

// OffchainStatus tracks the external PSBT work queue of a proposal.
type OffchainStatus string

const (
	OffchainToRequest OffchainStatus = "to_request"
	OffchainRequested OffchainStatus = "requested"
	OffchainCompleted OffchainStatus = "completed"
	OffchainFailed    OffchainStatus = "failed"
)

// BDKState is the outcome of the latest wallet operation.
type BDKState string

const (
	BDKPending BDKState = "pending"
	BDKValid   BDKState = "valid"
	BDKInvalid BDKState = "invalid"
)

var proposalTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalPending:     {ProposalBroadcasted, ProposalRejected},
	ProposalBroadcasted: {ProposalFinalized, ProposalRejected},
}

var offchainTransitions = map[OffchainStatus][]OffchainStatus{
	OffchainToRequest: {OffchainRequested},
	OffchainRequested: {OffchainCompleted, OffchainFailed, OffchainToRequest, OffchainRequested},
	OffchainCompleted: {OffchainToRequest},
	OffchainFailed:    {OffchainToRequest},
}

var bdkTransitions = map[BDKState][]BDKState{
	BDKPending: {BDKValid, BDKInvalid},
	BDKValid:   {BDKPending},
	BDKInvalid: {BDKPending},
}

// IsTerminal reports whether no further transition is allowed.
func (s ProposalStatus) IsTerminal() bool {
	return s == ProposalFinalized || s == ProposalRejected
}

// CanTransition reports whether from -> to is a legal proposal transition.
func (s ProposalStatus) CanTransition(to ProposalStatus) bool {
	return contains(proposalTransitions[s], to)
}

// CanTransition reports whether the offchain queue may move to the given state.
// Requested -> Requested is a stale claim being re-armed with a new attempt.
func (s OffchainStatus) CanTransition(to OffchainStatus) bool {
	return contains(offchainTransitions[s], to)
}

func (s BDKState) CanTransition(to BDKState) bool {
	return contains(bdkTransitions[s], to)
}

func contains[T comparable](items []T, v T) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

// BDKStatus is a wallet outcome with its payload: a descriptor or tx id on
// success, the error message on failure.
type BDKStatus struct {
	State   BDKState      `json:"state"`
	Payload bounded.Bytes `json:"payload"`
}

func PendingStatus() BDKStatus {
	return BDKStatus{State: BDKPending}
}

// ValidStatus wraps payload bounded by max.
func ValidStatus(max int, payload []byte) (BDKStatus, error) {
	b, err := bounded.New(max, payload)
	if err != nil {
		return BDKStatus{}, err
	}
	return BDKStatus{State: BDKValid, Payload: b}, nil
}

// InvalidStatus keeps as much of msg as fits in max.
func InvalidStatus(max int, msg string) BDKStatus {
	return BDKStatus{State: BDKInvalid, Payload: bounded.Truncate(max, []byte(msg))}
}
