package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

const insertEventsQuery = `
INSERT INTO vault_events (
	at,
	kind,
	vault_id,
	proposal_id,
	account,
	message
) VALUES`

// InsertEvents stores ledger events.
func (r *Repository) InsertEvents(ctx context.Context, events []model.Event) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_events", err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertEventsQuery)
	if err != nil {
		return fmt.Errorf("prepare events batch: %w", err)
	}

	for _, e := range events {
		if err = batch.Append(
			e.At.UTC(),
			string(e.Kind),
			e.VaultID.String(),
			optionalID(e.ProposalID.IsZero(), e.ProposalID.String()),
			optionalID(e.Account.IsZero(), e.Account.String()),
			e.Message,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}

func optionalID(zero bool, s string) string {
	if zero {
		return ""
	}
	return s
}
