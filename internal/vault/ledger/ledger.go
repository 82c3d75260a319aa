// Package ledger stores vault state in a single bbolt file. Every Update is
// one serialized write transaction, so every mutation of a vault or proposal
// is atomic with respect to every other.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrCorrupt is returned when a stored record cannot be decoded.
	ErrCorrupt = errors.New("corrupt record")
)

var (
	bucketVaults           = []byte("vaults_by_id")
	bucketVaultsBySigner   = []byte("vault_ids_by_signer")
	bucketProposals        = []byte("proposals_by_id")
	bucketProposalsByVault = []byte("proposal_ids_by_vault")
	bucketProofs           = []byte("proofs_by_vault_height")
	bucketXPubs            = []byte("xpubs_by_account")
	bucketXPubOwners       = []byte("accounts_by_xpub_hash")
	bucketSequence         = []byte("sequence")

	allBuckets = [][]byte{
		bucketVaults,
		bucketVaultsBySigner,
		bucketProposals,
		bucketProposalsByVault,
		bucketProofs,
		bucketXPubs,
		bucketXPubOwners,
		bucketSequence,
	}
)

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Ledger hands out read and write transactions.
type Ledger interface {
	View(ctx context.Context, fn func(Tx) error) error
	Update(ctx context.Context, fn func(Tx) error) error
}

type BoltLedger struct {
	db      *bolt.DB
	metrics Metrics
}

// Open opens or creates the ledger file at path.
func Open(path string, metrics Metrics) (*BoltLedger, error) {
	if path == "" {
		return nil, errors.New("ledger path is required")
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltLedger{db: db, metrics: metrics}, nil
}

func (l *BoltLedger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

func (l *BoltLedger) View(ctx context.Context, fn func(Tx) error) error {
	start := time.Now()
	var err error
	defer func() {
		l.metrics.Observe("view", err, start)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	err = l.db.View(func(tx *bolt.Tx) error {
		return fn(&boltTx{tx: tx})
	})
	return err
}

// Update runs fn in a write transaction; any error rolls every write back.
func (l *BoltLedger) Update(ctx context.Context, fn func(Tx) error) error {
	start := time.Now()
	var err error
	defer func() {
		l.metrics.Observe("update", err, start)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	err = l.db.Update(func(tx *bolt.Tx) error {
		return fn(&boltTx{tx: tx})
	})
	return err
}
