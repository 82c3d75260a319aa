package notify

import (
	"context"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Notifier interface {
		Notify(ctx context.Context, event model.Event)
	}

	// Store persists archived rows.
	Store interface {
		InsertEvents(ctx context.Context, events []model.Event) error
		InsertProofs(ctx context.Context, proofs []model.ProofOfReserve) error
	}
)
