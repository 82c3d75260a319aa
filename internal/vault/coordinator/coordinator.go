package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lightningnetwork/lnd/ticker"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/multisigvault-backend/internal/clock"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/attest"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/service"
	"github.com/goodnatureofminers/multisigvault-backend/pkg/workerpool"
)

const (
	workVault    = "vault"
	workProposal = "proposal"
	workProof    = "proof"

	outcomeApplied = "applied"
	outcomeStale   = "stale"
	outcomeFailed  = "failed"
	outcomeSkipped = "skipped"
)

type Config struct {
	Workers     int
	Interval    time.Duration
	CallTimeout time.Duration
	Backoff     time.Duration
}

func DefaultConfig() Config {
	return Config{
		Workers:     4,
		Interval:    10 * time.Second,
		CallTimeout: 30 * time.Second,
		Backoff:     5 * time.Second,
	}
}

// TickReport counts what one scan did.
type TickReport struct {
	Vaults    int
	Proposals int
	Skipped   int
	Stale     int
	Failed    int
}

func (r *TickReport) add(o TickReport) {
	r.Vaults += o.Vaults
	r.Proposals += o.Proposals
	r.Skipped += o.Skipped
	r.Stale += o.Stale
	r.Failed += o.Failed
}

// Coordinator drives pending vaults and claimable proposals through the
// wallet and submits signed results back to the ledger.
type Coordinator struct {
	submitter Submitter
	wallet    Wallet
	sealer    Sealer
	metrics   Metrics
	logger    *zap.Logger
	cfg       Config
	ticker    ticker.Ticker
	sleep     func(context.Context, time.Duration) error
	vaults    *inflight[model.VaultID]
}

type Option func(*Coordinator)

// WithTicker replaces the interval ticker.
func WithTicker(t ticker.Ticker) Option {
	return func(c *Coordinator) {
		c.ticker = t
	}
}

func New(submitter Submitter, w Wallet, sealer Sealer, metrics Metrics, logger *zap.Logger, cfg Config, opts ...Option) (*Coordinator, error) {
	if submitter == nil || w == nil || sealer == nil {
		return nil, errors.New("coordinator needs a submitter, a wallet and a sealer")
	}
	if metrics == nil {
		return nil, errors.New("coordinator metrics is required")
	}
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = def.CallTimeout
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = def.Backoff
	}

	c := &Coordinator{
		submitter: submitter,
		wallet:    w,
		sealer:    sealer,
		metrics:   metrics,
		logger:    logger.Named("coordinator"),
		cfg:       cfg,
		ticker:    ticker.New(cfg.Interval),
		sleep:     clock.SleepWithContext,
		vaults:    newInflight[model.VaultID](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Run ticks on every interval and on every value from blocks until ctx ends.
// blocks may be nil.
func (c *Coordinator) Run(ctx context.Context, blocks <-chan struct{}) error {
	c.ticker.Resume()
	defer c.ticker.Stop()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := c.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("tick failed, backing off", zap.Error(err), zap.Duration("sleep", c.cfg.Backoff))
			if sleepErr := c.sleep(ctx, c.cfg.Backoff); sleepErr != nil {
				return sleepErr
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.ticker.Ticks():
		case <-blocks:
			c.logger.Debug("new block, ticking early")
		}
	}
}

// Tick runs one scan of pending vaults and claimable proposals. Per record
// failures are folded into the report; only scan failures are returned.
func (c *Coordinator) Tick(ctx context.Context) (report TickReport, err error) {
	started := time.Now()
	defer func() {
		c.metrics.ObserveTick(err, started)
	}()

	var mu sync.Mutex
	record := func(r TickReport) {
		mu.Lock()
		defer mu.Unlock()
		report.add(r)
	}

	vaultErr := c.tickVaults(ctx, record)
	proposalErr := c.tickProposals(ctx, record)
	err = errors.Join(vaultErr, proposalErr)

	c.logger.Debug("tick done",
		zap.Int("vaults", report.Vaults),
		zap.Int("proposals", report.Proposals),
		zap.Int("skipped", report.Skipped),
		zap.Int("stale", report.Stale),
		zap.Int("failed", report.Failed),
	)
	return report, err
}

func (c *Coordinator) tickVaults(ctx context.Context, record func(TickReport)) error {
	pending, err := c.submitter.PendingVaults(ctx)
	if err != nil {
		return fmt.Errorf("scan pending vaults: %w", err)
	}

	return workerpool.Each(ctx, c.cfg.Workers, pending, func(ctx context.Context, work service.VaultWork) {
		if !c.vaults.tryAcquire(work.Vault.ID) {
			c.metrics.ObserveWork(workVault, outcomeSkipped, time.Now())
			record(TickReport{Skipped: 1})
			return
		}
		defer c.vaults.release(work.Vault.ID)
		record(c.processVault(ctx, work))
	})
}

func (c *Coordinator) tickProposals(ctx context.Context, record func(TickReport)) error {
	claimable, err := c.submitter.ClaimableProposals(ctx)
	if err != nil {
		return fmt.Errorf("scan claimable proposals: %w", err)
	}

	claimed := make([]service.ClaimedProposal, 0, len(claimable))
	for _, p := range claimable {
		cp, err := c.submitter.ClaimProposal(ctx, p.ID)
		switch {
		case err == nil:
			claimed = append(claimed, cp)
		case service.IsStale(err):
			c.logger.Debug("proposal claim lost", zap.Stringer("proposal", p.ID), zap.Error(err))
			c.metrics.ObserveWork(workProposal, outcomeSkipped, time.Now())
			record(TickReport{Skipped: 1})
		default:
			c.logger.Error("claim proposal failed", zap.Stringer("proposal", p.ID), zap.Error(err))
			c.metrics.ObserveWork(workProposal, outcomeFailed, time.Now())
			record(TickReport{Failed: 1})
		}
	}

	return workerpool.Each(ctx, c.cfg.Workers, claimed, func(ctx context.Context, cp service.ClaimedProposal) {
		record(c.processProposal(ctx, cp))
	})
}

func (c *Coordinator) processVault(ctx context.Context, work service.VaultWork) TickReport {
	started := time.Now()
	v := work.Vault
	res := model.DescriptorResult{VaultID: v.ID, Attempt: v.Attempt}

	if len(work.Missing) > 0 {
		res.Error = fmt.Sprintf("missing xpub for cosigner %s", work.Missing[0])
	} else {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
		pair, err := c.wallet.BuildDescriptor(callCtx, work.XPubs, v.Threshold)
		cancel()
		if err != nil {
			c.logger.Warn("descriptor build failed", zap.Stringer("vault", v.ID), zap.Error(err))
			res.Error = err.Error()
		} else {
			c.logger.Debug("descriptor built",
				zap.Stringer("vault", v.ID),
				zap.String("first_address", pair.FirstAddress),
			)
			res.Output = pair.Output
			res.Change = pair.Change
		}
	}

	logger := c.logger.With(zap.Stringer("vault", v.ID), zap.Uint32("attempt", v.Attempt))
	report := c.submit(workVault, started, logger, attest.KindDescriptorResult, res, c.submitter.RecordDescriptorResult)
	report.Vaults = 1
	return report
}

func (c *Coordinator) processProposal(ctx context.Context, cp service.ClaimedProposal) TickReport {
	started := time.Now()
	p := cp.Proposal
	res := model.OffchainResult{ProposalID: p.ID, Attempt: p.Attempt}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()

	switch p.Status {
	case model.ProposalPending:
		res.Op = model.OpBuildPSBT
		upd, err := c.wallet.BuildOrUpdatePSBT(callCtx, cp.Vault.Descriptors, p.PSBT.Bytes(), p.SignatureBlobs())
		if err != nil {
			res.Error = err.Error()
		} else {
			res.PSBT = upd.PSBT
			res.Ready = upd.Ready
		}
	case model.ProposalBroadcasted:
		res.Op = model.OpBroadcast
		txid, err := c.wallet.Broadcast(callCtx, p.PSBT.Bytes())
		if err != nil {
			res.Error = err.Error()
		} else {
			res.TxID = txid
		}
	default:
		res.Error = fmt.Sprintf("no offchain work for status %s", p.Status)
	}
	if res.Error != "" {
		c.logger.Warn("offchain work failed",
			zap.Stringer("proposal", p.ID),
			zap.String("op", string(res.Op)),
			zap.String("error", res.Error),
		)
	}

	logger := c.logger.With(zap.Stringer("proposal", p.ID), zap.Uint32("attempt", p.Attempt))
	report := c.submit(workProposal, started, logger, attest.KindOffchainResult, res, c.submitter.RecordOffchainResult)
	report.Proposals = 1
	return report
}

// submit seals v and records it. Stale rejections are logged and dropped.
func (c *Coordinator) submit(
	work string,
	started time.Time,
	logger *zap.Logger,
	kind attest.Kind,
	v any,
	record func(context.Context, attest.Envelope) error,
) TickReport {
	env, err := c.sealer.Seal(kind, v)
	if err != nil {
		logger.Error("seal result failed", zap.Error(err))
		c.metrics.ObserveWork(work, outcomeFailed, started)
		return TickReport{Failed: 1}
	}

	// Detached from the tick context so a finished call is still recorded.
	recordCtx, cancel := context.WithTimeout(context.Background(), c.cfg.CallTimeout)
	defer cancel()
	err = record(recordCtx, env)
	switch {
	case err == nil:
		c.metrics.ObserveWork(work, outcomeApplied, started)
		return TickReport{}
	case service.IsStale(err):
		logger.Warn("stale result dropped", zap.Error(err))
		c.metrics.ObserveWork(work, outcomeStale, started)
		return TickReport{Stale: 1}
	default:
		logger.Error("record result failed", zap.Error(err))
		c.metrics.ObserveWork(work, outcomeFailed, started)
		return TickReport{Failed: 1}
	}
}

// ChainHeight is the node's current best height.
func (c *Coordinator) ChainHeight(ctx context.Context) (uint64, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()
	return c.wallet.ChainHeight(callCtx)
}

// ProveReserve scans the vault's unspent outputs and seals the result for
// the submitter.
func (c *Coordinator) ProveReserve(ctx context.Context, v model.Vault) (env attest.Envelope, err error) {
	started := time.Now()
	defer func() {
		outcome := outcomeApplied
		if err != nil {
			outcome = outcomeFailed
		}
		c.metrics.ObserveWork(workProof, outcome, started)
	}()

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()
	reserve, err := c.wallet.ScanReserve(callCtx, v.Descriptors)
	if err != nil {
		return attest.Envelope{}, fmt.Errorf("scan reserve of %s: %w", v.ID, err)
	}
	return c.sealer.Seal(attest.KindProofResult, model.ProofResult{
		VaultID:    v.ID,
		Height:     reserve.Height,
		BlockHash:  reserve.BlockHash,
		Commitment: reserve.Commitment,
		Total:      reserve.Total,
		UTXOCount:  reserve.UTXOCount,
	})
}
