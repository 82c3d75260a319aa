package reserve

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/attest"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Vaults interface {
		GetVault(ctx context.Context, id model.VaultID) (model.Vault, error)
		ValidVaults(ctx context.Context) ([]model.Vault, error)
		Proof(ctx context.Context, id model.VaultID, height uint64) (model.ProofOfReserve, error)
	}

	Prover interface {
		ChainHeight(ctx context.Context) (uint64, error)
		ProveReserve(ctx context.Context, v model.Vault) (attest.Envelope, error)
	}

	Recorder interface {
		RecordProof(ctx context.Context, env attest.Envelope) (model.ProofOfReserve, error)
	}

	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
