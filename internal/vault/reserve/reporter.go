package reserve

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lightningnetwork/lnd/ticker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/service"
	"github.com/goodnatureofminers/multisigvault-backend/pkg/workerpool"
)

const (
	defaultInterval = time.Hour
	defaultWorkers  = 2
)

// Reporter produces proofs of reserve, at most one per vault and chain
// height.
type Reporter struct {
	vaults   Vaults
	prover   Prover
	recorder Recorder
	metrics  Metrics
	logger   *zap.Logger
	workers  int
	ticker   ticker.Ticker
	group    singleflight.Group
}

type Option func(*Reporter)

func WithTicker(t ticker.Ticker) Option {
	return func(r *Reporter) {
		r.ticker = t
	}
}

func WithInterval(d time.Duration) Option {
	return func(r *Reporter) {
		if d > 0 {
			r.ticker = ticker.New(d)
		}
	}
}

func WithWorkers(n int) Option {
	return func(r *Reporter) {
		if n > 0 {
			r.workers = n
		}
	}
}

func NewReporter(vaults Vaults, prover Prover, recorder Recorder, metrics Metrics, logger *zap.Logger, opts ...Option) (*Reporter, error) {
	if vaults == nil || prover == nil || recorder == nil {
		return nil, errors.New("reporter needs vaults, a prover and a recorder")
	}
	if metrics == nil {
		return nil, errors.New("reporter metrics is required")
	}
	r := &Reporter{
		vaults:   vaults,
		prover:   prover,
		recorder: recorder,
		metrics:  metrics,
		logger:   logger.Named("reserve"),
		workers:  defaultWorkers,
		ticker:   ticker.New(defaultInterval),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RequestProof returns the proof of the vault at the current chain height,
// producing it when none exists yet. requester must be the owner or a
// cosigner.
func (r *Reporter) RequestProof(ctx context.Context, id model.VaultID, requester model.AccountID) (proof model.ProofOfReserve, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("request_proof", err, started)
	}()

	v, err := r.vaults.GetVault(ctx, id)
	if err != nil {
		return model.ProofOfReserve{}, err
	}
	if !isMember(v, requester) {
		return model.ProofOfReserve{}, service.ErrNotACosigner
	}
	return r.ensure(ctx, v)
}

func isMember(v model.Vault, account model.AccountID) bool {
	for _, m := range v.Members() {
		if m == account {
			return true
		}
	}
	return false
}

// ensure proves v unless a proof at the current height is on record.
// Concurrent calls for the same vault share one scan.
func (r *Reporter) ensure(ctx context.Context, v model.Vault) (model.ProofOfReserve, error) {
	if !v.IsReady() {
		return model.ProofOfReserve{}, service.ErrVaultNotReady
	}

	height, err := r.prover.ChainHeight(ctx)
	if err != nil {
		return model.ProofOfReserve{}, fmt.Errorf("chain height: %w", err)
	}
	existing, err := r.vaults.Proof(ctx, v.ID, height)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, service.ErrNotFound) {
		return model.ProofOfReserve{}, err
	}

	res, err, shared := r.group.Do(v.ID.String(), func() (interface{}, error) {
		env, err := r.prover.ProveReserve(ctx, v)
		if err != nil {
			return nil, err
		}
		return r.recorder.RecordProof(ctx, env)
	})
	if err != nil {
		return model.ProofOfReserve{}, err
	}
	proof := res.(model.ProofOfReserve)
	r.logger.Debug("proof ready",
		zap.Stringer("vault", v.ID),
		zap.Uint64("height", proof.Height),
		zap.Bool("shared", shared),
	)
	return proof, nil
}

// Run proves every valid vault on each tick until ctx ends.
func (r *Reporter) Run(ctx context.Context) error {
	r.ticker.Resume()
	defer r.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.ticker.Ticks():
		}
		if err := r.ProveAll(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("reserve round failed", zap.Error(err))
		}
	}
}

// ProveAll makes sure every valid vault has a proof at the current height.
// Per vault failures are logged.
func (r *Reporter) ProveAll(ctx context.Context) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("prove_all", err, started)
	}()

	vaults, err := r.vaults.ValidVaults(ctx)
	if err != nil {
		return fmt.Errorf("list valid vaults: %w", err)
	}
	return workerpool.Each(ctx, r.workers, vaults, func(ctx context.Context, v model.Vault) {
		proof, err := r.ensure(ctx, v)
		if err != nil {
			r.logger.Error("prove reserve failed", zap.Stringer("vault", v.ID), zap.Error(err))
			return
		}
		r.logger.Info("reserve proven",
			zap.Stringer("vault", v.ID),
			zap.Uint64("height", proof.Height),
			zap.Int64("total_sats", int64(proof.Total)),
		)
	})
}
