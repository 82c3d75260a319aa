package notify

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/pkg/batcher"
)

type ArchiveConfig struct {
	FlushSize     int
	FlushInterval time.Duration
	// FlushRPS caps store writes per second.
	FlushRPS int
	// EnqueueTimeout bounds how long Notify waits on a full queue.
	EnqueueTimeout time.Duration
}

func DefaultArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		FlushSize:      500,
		FlushInterval:  2 * time.Second,
		FlushRPS:       10,
		EnqueueTimeout: time.Second,
	}
}

// Archive copies events, and the proofs they carry, into a Store in batches.
type Archive struct {
	events  *batcher.Batcher[model.Event]
	proofs  *batcher.Batcher[model.ProofOfReserve]
	timeout time.Duration
	logger  *zap.Logger
}

func NewArchive(store Store, logger *zap.Logger, cfg ArchiveConfig) (*Archive, error) {
	if store == nil {
		return nil, errors.New("archive store is required")
	}
	def := DefaultArchiveConfig()
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = def.FlushSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	if cfg.FlushRPS <= 0 {
		cfg.FlushRPS = def.FlushRPS
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = def.EnqueueTimeout
	}

	logger = logger.Named("archive")
	return &Archive{
		events:  batcher.New(logger.With(zap.String("table", "vault_events")), store.InsertEvents, cfg.FlushSize, cfg.FlushInterval, cfg.FlushRPS),
		proofs:  batcher.New(logger.With(zap.String("table", "reserve_proofs")), store.InsertProofs, cfg.FlushSize, cfg.FlushInterval, cfg.FlushRPS),
		timeout: cfg.EnqueueTimeout,
		logger:  logger,
	}, nil
}

func (a *Archive) Start(ctx context.Context) {
	a.events.Start(ctx)
	a.proofs.Start(ctx)
}

// Stop flushes what is queued and stops both batchers.
func (a *Archive) Stop() {
	a.events.Stop()
	a.proofs.Stop()
}

// Notify queues the event. A full queue drops the event after the enqueue
// timeout.
func (a *Archive) Notify(ctx context.Context, e model.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
	defer cancel()

	if err := a.events.Add(ctx, e); err != nil {
		a.logger.Warn("event not archived", zap.String("kind", string(e.Kind)), zap.Stringer("vault", e.VaultID), zap.Error(err))
	}
	if e.Proof == nil {
		return
	}
	if err := a.proofs.Add(ctx, *e.Proof); err != nil {
		a.logger.Warn("proof not archived", zap.Stringer("vault", e.VaultID), zap.Uint64("height", e.Proof.Height), zap.Error(err))
	}
}
