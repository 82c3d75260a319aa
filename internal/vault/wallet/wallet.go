package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/multisigvault-backend/pkg/safe"
)

const (
	defaultScanRange       = 1000
	defaultVerifyCacheSize = 4096
	maxMultisigKeys        = 15
)

// Wallet builds descriptors and PSBTs for multisig vaults and talks to a
// bitcoind node for broadcast, chain height and reserve scans.
type Wallet struct {
	params    *chaincfg.Params
	node      NodeClient
	metrics   Metrics
	logger    *zap.Logger
	scanRange int
	verified  *lru.Cache[chainhash.Hash, struct{}]
}

type Option func(*Wallet)

// WithScanRange sets how many child indexes a reserve scan covers.
func WithScanRange(n int) Option {
	return func(w *Wallet) {
		if n > 0 {
			w.scanRange = n
		}
	}
}

func New(params *chaincfg.Params, node NodeClient, metrics Metrics, logger *zap.Logger, opts ...Option) (*Wallet, error) {
	cache, err := lru.New[chainhash.Hash, struct{}](defaultVerifyCacheSize)
	if err != nil {
		return nil, fmt.Errorf("verify cache: %w", err)
	}
	w := &Wallet{
		params:    params,
		node:      node,
		metrics:   metrics,
		logger:    logger.Named("wallet"),
		scanRange: defaultScanRange,
		verified:  cache,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// ChainHeight returns the node's best block height.
func (w *Wallet) ChainHeight(ctx context.Context) (height uint64, err error) {
	started := time.Now()
	defer func() {
		w.metrics.Observe("chain_height", err, started)
	}()
	if err = ctx.Err(); err != nil {
		return 0, err
	}

	count, err := w.node.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	height, err = safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count: %w", err)
	}
	return height, nil
}
