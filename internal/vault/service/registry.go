package service

import (
	"context"
	"fmt"

	"github.com/lightningnetwork/lnd/fn/v2"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/ledger"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/pkg/bounded"
)

type CreateVaultRequest struct {
	Owner       model.AccountID
	Cosigners   []model.AccountID
	Threshold   uint32
	Description []byte
	// IncludeOwnerAsCosigner appends the owner to the cosigner list.
	IncludeOwnerAsCosigner bool
}

// CreateVault validates the request and stores a vault awaiting descriptors.
func (s *Service) CreateVault(ctx context.Context, req CreateVaultRequest) (model.Vault, error) {
	cosigners := make([]model.AccountID, 0, len(req.Cosigners)+1)
	cosigners = append(cosigners, req.Cosigners...)
	if req.IncludeOwnerAsCosigner {
		cosigners = append(cosigners, req.Owner)
	}

	if err := s.validateVault(req.Owner, cosigners, req.Threshold); err != nil {
		return model.Vault{}, err
	}
	description, err := bounded.New(s.limits.VaultDescriptionMaxLen, req.Description)
	if err != nil {
		return model.Vault{}, fmt.Errorf("%w: %v", ErrDescriptionTooLong, err)
	}

	now := s.clock.Now()
	vault := model.Vault{
		Owner:       req.Owner,
		Cosigners:   cosigners,
		Threshold:   req.Threshold,
		Description: description,
		BDKStatus:   model.PendingStatus(),
		Attempt:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		for _, member := range vault.Members() {
			linked, err := tx.VaultsBySigner(member)
			if err != nil {
				return nil, err
			}
			if len(linked) >= s.limits.MaxVaultsPerUser {
				return nil, fmt.Errorf("%w: %s", ErrSignerVaultLimit, member)
			}
		}

		seq, err := tx.NextSequence()
		if err != nil {
			return nil, err
		}
		vault.ID = vaultIDFor(vault.Owner, vault.Cosigners, vault.Threshold, req.Description, seq)
		if err := tx.PutVault(vault); err != nil {
			return nil, err
		}
		return []model.Event{s.event(model.EventVaultCreated, vault.ID, model.ProposalID{}, vault.Owner, "")}, nil
	})
	if err != nil {
		return model.Vault{}, err
	}

	s.logger.Info("vault created",
		zap.Stringer("vault", vault.ID),
		zap.Uint32("threshold", vault.Threshold),
		zap.Int("cosigners", len(vault.Cosigners)),
	)
	return vault, nil
}

// validateVault checks the threshold against the raw list length first, so a
// bad threshold is reported even when the list also has duplicates.
func (s *Service) validateVault(owner model.AccountID, cosigners []model.AccountID, threshold uint32) error {
	if owner.IsZero() {
		return ErrInvalidAccount
	}
	if len(cosigners) > s.limits.MaxCosignersPerVault {
		return fmt.Errorf("%w: %d > %d", ErrTooManyCosigners, len(cosigners), s.limits.MaxCosignersPerVault)
	}
	if threshold == 0 || int(threshold) > len(cosigners) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidThreshold, threshold, len(cosigners))
	}

	seen := fn.NewSet[model.AccountID]()
	for _, c := range cosigners {
		if c.IsZero() {
			return ErrInvalidAccount
		}
		if seen.Contains(c) {
			return fmt.Errorf("%w: %s", ErrDuplicateCosigner, c)
		}
		seen.Add(c)
	}
	if len(cosigners) < 2 {
		return ErrNotEnoughCosigners
	}
	return nil
}

func (s *Service) GetVault(ctx context.Context, id model.VaultID) (model.Vault, error) {
	var v model.Vault
	err := s.ledger.View(ctx, func(tx ledger.Tx) error {
		var err error
		v, err = loadVault(tx, id)
		return err
	})
	return v, err
}

// VaultsBySigner lists the vaults account owns or cosigns.
func (s *Service) VaultsBySigner(ctx context.Context, account model.AccountID) ([]model.Vault, error) {
	var out []model.Vault
	err := s.ledger.View(ctx, func(tx ledger.Tx) error {
		ids, err := tx.VaultsBySigner(account)
		if err != nil {
			return err
		}
		for _, id := range ids {
			v, err := loadVault(tx, id)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		return nil
	})
	return out, err
}

// ValidVaults lists every vault with stored descriptors.
func (s *Service) ValidVaults(ctx context.Context) ([]model.Vault, error) {
	var out []model.Vault
	err := s.ledger.View(ctx, func(tx ledger.Tx) error {
		var err error
		out, err = tx.VaultsByBDKState(model.BDKValid)
		return err
	})
	return out, err
}

// RetryVault re-queues descriptor generation for an invalid vault.
func (s *Service) RetryVault(ctx context.Context, id model.VaultID, who model.AccountID) (model.Vault, error) {
	if err := s.requireOwner(ctx, id, who); err != nil {
		return model.Vault{}, err
	}

	var vault model.Vault
	err := s.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		v, err := loadVault(tx, id)
		if err != nil {
			return nil, err
		}
		if v.BDKStatus.State != model.BDKInvalid {
			return nil, ErrVaultNotInvalid
		}
		if err := setBDK(&v.BDKStatus, model.PendingStatus()); err != nil {
			return nil, err
		}
		v.Descriptors = model.Descriptors{}
		v.Attempt++
		v.UpdatedAt = s.clock.Now()
		if err := tx.PutVault(v); err != nil {
			return nil, err
		}
		vault = v
		return []model.Event{s.event(model.EventVaultRetried, v.ID, model.ProposalID{}, who, "")}, nil
	})
	return vault, err
}

// RemoveVault deletes the vault together with all of its proposals.
func (s *Service) RemoveVault(ctx context.Context, id model.VaultID, who model.AccountID) error {
	if err := s.requireOwner(ctx, id, who); err != nil {
		return err
	}
	err := s.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		if _, err := loadVault(tx, id); err != nil {
			return nil, err
		}
		proposals, err := tx.ProposalsByVault(id)
		if err != nil {
			return nil, err
		}
		for _, p := range proposals {
			if err := tx.DeleteProposal(p.ID); err != nil {
				return nil, err
			}
		}
		if err := tx.DeleteVault(id); err != nil {
			return nil, err
		}
		return []model.Event{s.event(model.EventVaultRemoved, id, model.ProposalID{}, who, "")}, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("vault removed", zap.Stringer("vault", id))
	return nil
}
