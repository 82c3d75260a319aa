//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
package service

import (
	"context"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/attest"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

type (
	// Authorizer answers role questions about a vault.
	Authorizer interface {
		IsCosigner(ctx context.Context, vault model.VaultID, account model.AccountID) (bool, error)
		IsOwner(ctx context.Context, vault model.VaultID, account model.AccountID) (bool, error)
	}

	// SignatureVerifier checks that a signed PSBT carries valid partial
	// signatures for the proposal transaction.
	SignatureVerifier interface {
		VerifySignature(ctx context.Context, proposalPSBT, signedPSBT []byte) error
	}

	// Notifier receives events after their ledger update committed.
	Notifier interface {
		Notify(ctx context.Context, event model.Event)
	}

	// EnvelopeOpener authenticates worker results.
	EnvelopeOpener interface {
		Open(env attest.Envelope, kind attest.Kind, out any) error
	}
)
