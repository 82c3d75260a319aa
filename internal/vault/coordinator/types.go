package coordinator

import (
	"context"
	"time"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/attest"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/service"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/wallet"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Submitter interface {
		PendingVaults(ctx context.Context) ([]service.VaultWork, error)
		ClaimableProposals(ctx context.Context) ([]model.Proposal, error)
		ClaimProposal(ctx context.Context, id model.ProposalID) (service.ClaimedProposal, error)
		RecordDescriptorResult(ctx context.Context, env attest.Envelope) error
		RecordOffchainResult(ctx context.Context, env attest.Envelope) error
	}

	Wallet interface {
		BuildDescriptor(ctx context.Context, xpubs []string, threshold uint32) (wallet.DescriptorPair, error)
		BuildOrUpdatePSBT(ctx context.Context, d model.Descriptors, psbt []byte, sigs [][]byte) (wallet.PSBTUpdate, error)
		Broadcast(ctx context.Context, psbt []byte) (string, error)
		ChainHeight(ctx context.Context) (uint64, error)
		ScanReserve(ctx context.Context, d model.Descriptors) (wallet.Reserve, error)
	}

	Sealer interface {
		Seal(kind attest.Kind, v any) (attest.Envelope, error)
	}

	Metrics interface {
		ObserveTick(err error, started time.Time)
		ObserveWork(kind, outcome string, started time.Time)
	}
)
