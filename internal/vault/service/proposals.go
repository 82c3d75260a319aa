package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/ledger"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/pkg/bounded"
)

type ProposeSpendRequest struct {
	VaultID     model.VaultID
	Requester   model.AccountID
	PSBT        []byte
	Description []byte
}

// ProposeSpend stores an unsigned spend for cosigners to sign.
func (s *Service) ProposeSpend(ctx context.Context, req ProposeSpendRequest) (model.Proposal, error) {
	vault, err := s.GetVault(ctx, req.VaultID)
	if err != nil {
		return model.Proposal{}, err
	}
	if !vault.IsReady() {
		return model.Proposal{}, ErrVaultNotReady
	}
	if err := s.requireCosigner(ctx, req.VaultID, req.Requester); err != nil {
		return model.Proposal{}, err
	}
	if len(req.PSBT) == 0 {
		return model.Proposal{}, ErrEmptyPSBT
	}
	psbt, err := bounded.New(s.limits.PSBTMaxLen, req.PSBT)
	if err != nil {
		return model.Proposal{}, fmt.Errorf("%w: %v", ErrPSBTTooLarge, err)
	}
	description, err := bounded.New(s.limits.VaultDescriptionMaxLen, req.Description)
	if err != nil {
		return model.Proposal{}, fmt.Errorf("%w: %v", ErrDescriptionTooLong, err)
	}

	now := s.clock.Now()
	proposal := model.Proposal{
		ID:             proposalIDFor(req.VaultID, req.Requester, req.PSBT),
		VaultID:        req.VaultID,
		Proposer:       req.Requester,
		Description:    description,
		PSBT:           psbt,
		Signatures:     map[model.AccountID]bounded.Bytes{},
		Status:         model.ProposalPending,
		OffchainStatus: model.OffchainToRequest,
		BDKStatus:      model.PendingStatus(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		v, err := loadVault(tx, req.VaultID)
		if err != nil {
			return nil, err
		}
		if !v.IsReady() {
			return nil, ErrVaultNotReady
		}
		if _, err := tx.Proposal(proposal.ID); err == nil {
			return nil, ErrAlreadyProposed
		} else if !errors.Is(err, ledger.ErrNotFound) {
			return nil, err
		}
		existing, err := tx.ProposalsByVault(req.VaultID)
		if err != nil {
			return nil, err
		}
		if len(existing) >= s.limits.MaxProposalsPerVault {
			return nil, ErrExceedMaxProposals
		}
		if err := tx.PutProposal(proposal); err != nil {
			return nil, err
		}
		return []model.Event{s.event(model.EventProposalCreated, proposal.VaultID, proposal.ID, req.Requester, "")}, nil
	})
	if err != nil {
		return model.Proposal{}, err
	}

	s.logger.Info("proposal created",
		zap.Stringer("vault", proposal.VaultID),
		zap.Stringer("proposal", proposal.ID),
	)
	return proposal, nil
}

func (s *Service) GetProposal(ctx context.Context, id model.ProposalID) (model.Proposal, error) {
	var p model.Proposal
	err := s.ledger.View(ctx, func(tx ledger.Tx) error {
		var err error
		p, err = loadProposal(tx, id)
		return err
	})
	return p, err
}

func (s *Service) ProposalsByVault(ctx context.Context, id model.VaultID) ([]model.Proposal, error) {
	var out []model.Proposal
	err := s.ledger.View(ctx, func(tx ledger.Tx) error {
		if _, err := loadVault(tx, id); err != nil {
			return err
		}
		var err error
		out, err = tx.ProposalsByVault(id)
		return err
	})
	return out, err
}

// SubmitSignature stores the signed PSBT of cosigner, replacing any earlier
// one, and queues the proposal for another wallet pass.
func (s *Service) SubmitSignature(ctx context.Context, id model.ProposalID, cosigner model.AccountID, signature []byte) (model.Proposal, error) {
	current, err := s.GetProposal(ctx, id)
	if err != nil {
		return model.Proposal{}, err
	}
	if current.Status.IsTerminal() {
		return model.Proposal{}, ErrProposalTerminal
	}
	if err := s.requireCosigner(ctx, current.VaultID, cosigner); err != nil {
		return model.Proposal{}, err
	}
	sig, err := bounded.New(s.limits.PSBTMaxLen, signature)
	if err != nil {
		return model.Proposal{}, fmt.Errorf("%w: %v", ErrPSBTTooLarge, err)
	}
	if err := s.verifier.VerifySignature(ctx, current.PSBT.Bytes(), signature); err != nil {
		return model.Proposal{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	var updated model.Proposal
	err = s.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		p, err := loadProposal(tx, id)
		if err != nil {
			return nil, err
		}
		if p.Status.IsTerminal() {
			return nil, ErrProposalTerminal
		}
		if p.Signatures == nil {
			p.Signatures = map[model.AccountID]bounded.Bytes{}
		}
		p.Signatures[cosigner] = sig
		p.Revision++
		if p.OffchainStatus == model.OffchainCompleted || p.OffchainStatus == model.OffchainFailed {
			if err := setOffchain(&p, model.OffchainToRequest); err != nil {
				return nil, err
			}
		}
		p.UpdatedAt = s.clock.Now()
		if err := tx.PutProposal(p); err != nil {
			return nil, err
		}
		updated = p
		return []model.Event{s.event(model.EventSignatureReceived, p.VaultID, p.ID, cosigner, "")}, nil
	})
	if err != nil {
		return model.Proposal{}, err
	}

	s.logger.Debug("signature stored",
		zap.Stringer("proposal", id),
		zap.Int("signatures", len(updated.Signatures)),
	)
	return updated, nil
}

// RejectProposal cancels a proposal; only the vault owner may do it and only
// before it is finalized.
func (s *Service) RejectProposal(ctx context.Context, id model.ProposalID, who model.AccountID) (model.Proposal, error) {
	current, err := s.GetProposal(ctx, id)
	if err != nil {
		return model.Proposal{}, err
	}
	if err := s.requireOwner(ctx, current.VaultID, who); err != nil {
		return model.Proposal{}, err
	}

	var updated model.Proposal
	err = s.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		p, err := loadProposal(tx, id)
		if err != nil {
			return nil, err
		}
		if p.Status.IsTerminal() {
			return nil, ErrProposalTerminal
		}
		if err := setStatus(&p, model.ProposalRejected); err != nil {
			return nil, err
		}
		p.UpdatedAt = s.clock.Now()
		if err := tx.PutProposal(p); err != nil {
			return nil, err
		}
		updated = p
		return []model.Event{s.event(model.EventProposalRejected, p.VaultID, p.ID, who, "")}, nil
	})
	return updated, err
}

// RemoveProposal lets the proposer withdraw a pending proposal that no
// worker holds.
func (s *Service) RemoveProposal(ctx context.Context, id model.ProposalID, who model.AccountID) error {
	return s.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		p, err := loadProposal(tx, id)
		if err != nil {
			return nil, err
		}
		if p.Proposer != who {
			return nil, ErrProposerRequired
		}
		if p.Status != model.ProposalPending || p.OffchainStatus == model.OffchainRequested {
			return nil, ErrPendingProposalNeeded
		}
		if err := tx.DeleteProposal(id); err != nil {
			return nil, err
		}
		return []model.Event{s.event(model.EventProposalRemoved, p.VaultID, p.ID, who, "")}, nil
	})
}

// RetryProposal re-arms a failed proposal.
func (s *Service) RetryProposal(ctx context.Context, id model.ProposalID, who model.AccountID) (model.Proposal, error) {
	current, err := s.GetProposal(ctx, id)
	if err != nil {
		return model.Proposal{}, err
	}
	if err := s.requireCosigner(ctx, current.VaultID, who); err != nil {
		return model.Proposal{}, err
	}

	var updated model.Proposal
	err = s.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		p, err := loadProposal(tx, id)
		if err != nil {
			return nil, err
		}
		if p.Status.IsTerminal() {
			return nil, ErrProposalTerminal
		}
		if p.OffchainStatus != model.OffchainFailed {
			return nil, ErrProposalNotFailed
		}
		if err := setOffchain(&p, model.OffchainToRequest); err != nil {
			return nil, err
		}
		p.UpdatedAt = s.clock.Now()
		if err := tx.PutProposal(p); err != nil {
			return nil, err
		}
		updated = p
		return []model.Event{s.event(model.EventProposalRetried, p.VaultID, p.ID, who, "")}, nil
	})
	return updated, err
}

// Proofs lists the reserve proofs recorded for a vault in height order.
func (s *Service) Proofs(ctx context.Context, id model.VaultID) ([]model.ProofOfReserve, error) {
	var out []model.ProofOfReserve
	err := s.ledger.View(ctx, func(tx ledger.Tx) error {
		if _, err := loadVault(tx, id); err != nil {
			return err
		}
		var err error
		out, err = tx.ProofsByVault(id)
		return err
	})
	return out, err
}

// Proof returns the proof recorded for vault at height.
func (s *Service) Proof(ctx context.Context, id model.VaultID, height uint64) (model.ProofOfReserve, error) {
	var p model.ProofOfReserve
	err := s.ledger.View(ctx, func(tx ledger.Tx) error {
		var err error
		p, err = tx.ProofByHeight(id, height)
		if errors.Is(err, ledger.ErrNotFound) {
			return fmt.Errorf("proof %w", ErrNotFound)
		}
		return err
	})
	return p, err
}

func (s *Service) requireCosigner(ctx context.Context, vault model.VaultID, account model.AccountID) error {
	ok, err := s.authz.IsCosigner(ctx, vault, account)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotACosigner
	}
	return nil
}

func (s *Service) requireOwner(ctx context.Context, vault model.VaultID, account model.AccountID) error {
	ok, err := s.authz.IsOwner(ctx, vault, account)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVaultOwnerRequired
	}
	return nil
}
