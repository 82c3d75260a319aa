package transport

import (
	"context"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/service"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Service is the user capability served over HTTP. Worker operations are
	// not part of it.
	Service interface {
		SetXPub(ctx context.Context, account model.AccountID, xpub []byte) (model.XPub, error)
		RemoveXPub(ctx context.Context, account model.AccountID) error
		XPub(ctx context.Context, account model.AccountID) (model.XPub, error)

		CreateVault(ctx context.Context, req service.CreateVaultRequest) (model.Vault, error)
		GetVault(ctx context.Context, id model.VaultID) (model.Vault, error)
		VaultsBySigner(ctx context.Context, account model.AccountID) ([]model.Vault, error)
		RetryVault(ctx context.Context, id model.VaultID, who model.AccountID) (model.Vault, error)
		RemoveVault(ctx context.Context, id model.VaultID, who model.AccountID) error

		ProposeSpend(ctx context.Context, req service.ProposeSpendRequest) (model.Proposal, error)
		GetProposal(ctx context.Context, id model.ProposalID) (model.Proposal, error)
		ProposalsByVault(ctx context.Context, id model.VaultID) ([]model.Proposal, error)
		SubmitSignature(ctx context.Context, id model.ProposalID, cosigner model.AccountID, signature []byte) (model.Proposal, error)
		RejectProposal(ctx context.Context, id model.ProposalID, who model.AccountID) (model.Proposal, error)
		RemoveProposal(ctx context.Context, id model.ProposalID, who model.AccountID) error
		RetryProposal(ctx context.Context, id model.ProposalID, who model.AccountID) (model.Proposal, error)

		Proofs(ctx context.Context, id model.VaultID) ([]model.ProofOfReserve, error)
		Proof(ctx context.Context, id model.VaultID, height uint64) (model.ProofOfReserve, error)
	}

	Reporter interface {
		RequestProof(ctx context.Context, id model.VaultID, requester model.AccountID) (model.ProofOfReserve, error)
	}

	EventArchive interface {
		EventsByVault(ctx context.Context, id model.VaultID, limit int) ([]model.Event, error)
	}
)
