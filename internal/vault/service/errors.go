package service

import (
	"errors"
	"fmt"
)

// Validation errors: the caller sent something the ledger will never accept.
var (
	ErrInvalidThreshold   = errors.New("invalid vault threshold")
	ErrTooManyCosigners   = errors.New("exceeds max cosigners per vault")
	ErrNotEnoughCosigners = errors.New("not enough cosigners")
	ErrDuplicateCosigner  = errors.New("duplicate vault member")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrSignerVaultLimit   = errors.New("signer vault limit reached")
	ErrInvalidAccount     = errors.New("invalid account")

	ErrEmptyXPub         = errors.New("empty xpub")
	ErrXPubTooLarge      = errors.New("xpub too large")
	ErrXPubTaken         = errors.New("xpub already taken")
	ErrUserHasXPub       = errors.New("user already has xpub")
	ErrXPubLinkedToVault = errors.New("xpub linked to vault")

	ErrEmptyPSBT             = errors.New("empty psbt")
	ErrPSBTTooLarge          = errors.New("psbt too large")
	ErrInvalidSignature      = errors.New("invalid signature")
	ErrExceedMaxProposals    = errors.New("exceeds max proposals per vault")
	ErrAlreadyProposed       = errors.New("already proposed")
	ErrPendingProposalNeeded = errors.New("pending proposal required")
	ErrProposalNotFailed     = errors.New("proposal is not failed")
	ErrVaultNotInvalid       = errors.New("vault is not invalid")
)

// Permission errors.
var (
	ErrNotACosigner       = errors.New("not a cosigner")
	ErrVaultOwnerRequired = errors.New("vault owner permissions needed")
	ErrProposerRequired   = errors.New("proposer permissions needed")
)

// State errors.
var (
	ErrNotFound         = errors.New("not found")
	ErrVaultNotFound    = fmt.Errorf("vault %w", ErrNotFound)
	ErrProposalNotFound = fmt.Errorf("proposal %w", ErrNotFound)
	ErrXPubNotFound     = fmt.Errorf("xpub %w", ErrNotFound)
	ErrVaultNotReady    = errors.New("vault not ready")
	ErrProposalTerminal = errors.New("proposal is terminal")

	// ErrInvalidTransition means a write would break the status state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Stale errors: a worker result or claim arrived after the record moved on.
var (
	ErrVaultNotPending      = errors.New("vault not pending")
	ErrProposalNotRequested = errors.New("proposal not requested")
	ErrAlreadyClaimed       = errors.New("proposal already claimed")
)

// IsStale reports whether err means the request lost a race and can be
// dropped.
func IsStale(err error) bool {
	return errors.Is(err, ErrVaultNotPending) ||
		errors.Is(err, ErrProposalNotRequested) ||
		errors.Is(err, ErrAlreadyClaimed) ||
		errors.Is(err, ErrProposalTerminal) ||
		errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a rejected input.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidThreshold, ErrTooManyCosigners, ErrNotEnoughCosigners,
		ErrDuplicateCosigner, ErrDescriptionTooLong, ErrSignerVaultLimit,
		ErrInvalidAccount, ErrEmptyXPub, ErrXPubTooLarge, ErrXPubTaken,
		ErrUserHasXPub, ErrXPubLinkedToVault, ErrEmptyPSBT, ErrPSBTTooLarge,
		ErrInvalidSignature, ErrExceedMaxProposals, ErrAlreadyProposed,
		ErrPendingProposalNeeded, ErrProposalNotFailed, ErrVaultNotInvalid,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsPermission reports whether the caller lacks the role for the operation.
func IsPermission(err error) bool {
	return errors.Is(err, ErrNotACosigner) ||
		errors.Is(err, ErrVaultOwnerRequired) ||
		errors.Is(err, ErrProposerRequired)
}
