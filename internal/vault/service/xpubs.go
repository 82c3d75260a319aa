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

// SetXPub registers the extended public key account signs with. An account
// holds one xpub and an xpub belongs to one account.
func (s *Service) SetXPub(ctx context.Context, account model.AccountID, xpub []byte) (model.XPub, error) {
	if account.IsZero() {
		return model.XPub{}, ErrInvalidAccount
	}
	if len(xpub) == 0 {
		return model.XPub{}, ErrEmptyXPub
	}
	value, err := bounded.New(s.limits.XPubMaxLen, xpub)
	if err != nil {
		return model.XPub{}, fmt.Errorf("%w: %v", ErrXPubTooLarge, err)
	}

	record := model.XPub{Account: account, Hash: xpubHash(xpub), Value: value}
	err = s.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		if _, err := tx.XPub(account); err == nil {
			return nil, ErrUserHasXPub
		} else if !errors.Is(err, ledger.ErrNotFound) {
			return nil, err
		}
		if _, err := tx.XPubOwner(record.Hash); err == nil {
			return nil, ErrXPubTaken
		} else if !errors.Is(err, ledger.ErrNotFound) {
			return nil, err
		}
		if err := tx.PutXPub(record); err != nil {
			return nil, err
		}
		return []model.Event{s.event(model.EventXPubStored, model.VaultID{}, model.ProposalID{}, account, "")}, nil
	})
	if err != nil {
		return model.XPub{}, err
	}

	s.logger.Debug("xpub stored", zap.Stringer("account", account))
	return record, nil
}

// RemoveXPub deletes the xpub of account unless a vault still lists it.
func (s *Service) RemoveXPub(ctx context.Context, account model.AccountID) error {
	return s.update(ctx, func(tx ledger.Tx) ([]model.Event, error) {
		if _, err := tx.XPub(account); errors.Is(err, ledger.ErrNotFound) {
			return nil, ErrXPubNotFound
		} else if err != nil {
			return nil, err
		}
		vaults, err := tx.VaultsBySigner(account)
		if err != nil {
			return nil, err
		}
		if len(vaults) > 0 {
			return nil, ErrXPubLinkedToVault
		}
		if err := tx.DeleteXPub(account); err != nil {
			return nil, err
		}
		return []model.Event{s.event(model.EventXPubRemoved, model.VaultID{}, model.ProposalID{}, account, "")}, nil
	})
}

func (s *Service) XPub(ctx context.Context, account model.AccountID) (model.XPub, error) {
	var x model.XPub
	err := s.ledger.View(ctx, func(tx ledger.Tx) error {
		var err error
		x, err = tx.XPub(account)
		if errors.Is(err, ledger.ErrNotFound) {
			return ErrXPubNotFound
		}
		return err
	})
	return x, err
}
