package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
	"github.com/goodnatureofminers/multisigvault-backend/pkg/safe"
)

const eventsByVaultQuery = `
SELECT
	at,
	kind,
	proposal_id,
	account,
	message
FROM vault_events
WHERE vault_id = ?
ORDER BY at DESC
LIMIT ?`

// EventsByVault returns the newest archived events of a vault first.
func (r *Repository) EventsByVault(ctx context.Context, id model.VaultID, limit int) (events []model.Event, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("events_by_vault", err, start)
	}()

	n, err := safe.Uint32(limit)
	if err != nil {
		return nil, fmt.Errorf("events limit: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	rows, err := r.conn.Query(ctx, eventsByVaultQuery, id.String(), n)
	if err != nil {
		return nil, fmt.Errorf("query vault events: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var (
			e        model.Event
			kind     string
			proposal string
			account  string
		)
		if err = rows.Scan(&e.At, &kind, &proposal, &account, &e.Message); err != nil {
			return nil, fmt.Errorf("scan vault event: %w", err)
		}
		e.Kind = model.EventKind(kind)
		e.VaultID = id
		if proposal != "" {
			if e.ProposalID, err = model.ParseProposalID(proposal); err != nil {
				return nil, fmt.Errorf("event proposal id: %w", err)
			}
		}
		if account != "" {
			if e.Account, err = model.ParseAccountID(account); err != nil {
				return nil, fmt.Errorf("event account: %w", err)
			}
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vault events: %w", err)
	}
	return events, nil
}
