// Package notify delivers ledger events to logs and the ClickHouse archive.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/multisigvault-backend/internal/vault/model"
)

type Nop struct{}

func (Nop) Notify(context.Context, model.Event) {}

// Multi hands every event to each notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event model.Event) {
	for _, n := range m {
		n.Notify(ctx, event)
	}
}

type Logger struct {
	logger *zap.Logger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger.Named("events")}
}

func (l *Logger) Notify(_ context.Context, e model.Event) {
	fields := []zap.Field{
		zap.String("kind", string(e.Kind)),
		zap.Stringer("vault", e.VaultID),
		zap.Time("at", e.At),
	}
	if !e.ProposalID.IsZero() {
		fields = append(fields, zap.Stringer("proposal", e.ProposalID))
	}
	if !e.Account.IsZero() {
		fields = append(fields, zap.Stringer("account", e.Account))
	}
	if e.Message != "" {
		fields = append(fields, zap.String("message", e.Message))
	}
	if e.Proof != nil {
		fields = append(fields,
			zap.Uint64("height", e.Proof.Height),
			zap.Int64("total_sats", int64(e.Proof.Total)),
		)
	}
	l.logger.Info("vault event", fields...)
}
