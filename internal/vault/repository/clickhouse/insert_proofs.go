package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

const insertProofsQuery = `
INSERT INTO reserve_proofs (
	id,
	vault_id,
	height,
	block_hash,
	commitment,
	total_sats,
	utxo_count,
	created_at
) VALUES`

// InsertProofs stores recorded reserve proofs. The table keeps the last row
// per vault and height.
func (r *Repository) InsertProofs(ctx context.Context, proofs []model.ProofOfReserve) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_proofs", err, start)
	}()

	if len(proofs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertProofsQuery)
	if err != nil {
		return fmt.Errorf("prepare proofs batch: %w", err)
	}

	for _, p := range proofs {
		if err = batch.Append(
			p.ID.String(),
			p.VaultID.String(),
			p.Height,
			p.BlockHash,
			p.Commitment.String(),
			int64(p.Total),
			p.UTXOCount,
			p.CreatedAt.UTC(),
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append proof: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert proofs: %w", err)
	}
	return nil
}
