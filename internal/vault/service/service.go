// Package service implements the vault registry and the proposal store on top
// of the ledger. User operations live on Service; the worker only operations
// live on Submitter.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/multisigvault-backend/internal/clock"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/ledger"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

const defaultClaimTimeout = 10 * time.Minute

type Service struct {
	ledger       ledger.Ledger
	limits       model.Limits
	authz        Authorizer
	verifier     SignatureVerifier
	notifier     Notifier
	clock        clock.Clock
	claimTimeout time.Duration
	logger       *zap.Logger
}

type Option func(*Service)

// WithAuthorizer replaces the ledger backed role checks.
func WithAuthorizer(authz Authorizer) Option {
	return func(s *Service) { s.authz = authz }
}

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithClaimTimeout sets how long a Requested claim is honored before the
// proposal becomes claimable again.
func WithClaimTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.claimTimeout = d
		}
	}
}

func New(
	l ledger.Ledger,
	limits model.Limits,
	verifier SignatureVerifier,
	notifier Notifier,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		ledger:       l,
		limits:       limits,
		authz:        NewLedgerAuthorizer(l),
		verifier:     verifier,
		notifier:     notifier,
		clock:        clock.System{},
		claimTimeout: defaultClaimTimeout,
		logger:       logger.Named("vault_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limits returns the configured bounds.
func (s *Service) Limits() model.Limits {
	return s.limits
}

// update commits fn and only then emits the events it produced.
func (s *Service) update(ctx context.Context, fn func(tx ledger.Tx) ([]model.Event, error)) error {
	var events []model.Event
	if err := s.ledger.Update(ctx, func(tx ledger.Tx) error {
		var err error
		events, err = fn(tx)
		return err
	}); err != nil {
		return err
	}
	for _, e := range events {
		s.notifier.Notify(ctx, e)
	}
	return nil
}

func (s *Service) event(kind model.EventKind, vault model.VaultID, proposal model.ProposalID, account model.AccountID, msg string) model.Event {
	return model.Event{
		Kind:       kind,
		VaultID:    vault,
		ProposalID: proposal,
		Account:    account,
		Message:    msg,
		At:         s.clock.Now(),
	}
}

func loadVault(tx ledger.Tx, id model.VaultID) (model.Vault, error) {
	v, err := tx.Vault(id)
	if errors.Is(err, ledger.ErrNotFound) {
		return v, ErrVaultNotFound
	}
	return v, err
}

func loadProposal(tx ledger.Tx, id model.ProposalID) (model.Proposal, error) {
	p, err := tx.Proposal(id)
	if errors.Is(err, ledger.ErrNotFound) {
		return p, ErrProposalNotFound
	}
	return p, err
}
