package service

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/ledger"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

// LedgerAuthorizer answers role checks from the stored vault membership.
type LedgerAuthorizer struct {
	ledger ledger.Ledger
}

func NewLedgerAuthorizer(l ledger.Ledger) *LedgerAuthorizer {
	return &LedgerAuthorizer{ledger: l}
}

func (a *LedgerAuthorizer) IsCosigner(ctx context.Context, id model.VaultID, account model.AccountID) (bool, error) {
	v, err := a.vault(ctx, id)
	if err != nil {
		return false, err
	}
	return v.IsCosigner(account), nil
}

func (a *LedgerAuthorizer) IsOwner(ctx context.Context, id model.VaultID, account model.AccountID) (bool, error) {
	v, err := a.vault(ctx, id)
	if err != nil {
		return false, err
	}
	return v.Owner == account, nil
}

func (a *LedgerAuthorizer) vault(ctx context.Context, id model.VaultID) (model.Vault, error) {
	var v model.Vault
	err := a.ledger.View(ctx, func(tx ledger.Tx) error {
		var err error
		v, err = tx.Vault(id)
		return err
	})
	if errors.Is(err, ledger.ErrNotFound) {
		return v, ErrVaultNotFound
	}
	return v, err
}
