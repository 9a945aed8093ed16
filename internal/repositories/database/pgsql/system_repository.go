package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChangeChannel is the NOTIFY channel the change triggers publish on.
const ChangeChannel = "drycleaner_changes"

// requiredTables are probed by CheckSchema, in dependency order.
var requiredTables = []string{"clients", "users", "invoices", "invoice_items", "audit_logs"}

// PgxSchemaChecker probes the tables the store depends on.
type PgxSchemaChecker struct {
	db *pgxpool.Pool
}

func newPgxSchemaChecker(db *pgxpool.Pool) portsrepo.SchemaChecker {
	return &PgxSchemaChecker{db: db}
}

var _ portsrepo.SchemaChecker = (*PgxSchemaChecker)(nil)

// CheckSchema selects from every required table and reports the first failure.
func (c *PgxSchemaChecker) CheckSchema(ctx context.Context) error {
	for _, table := range requiredTables {
		query := fmt.Sprintf("SELECT 1 FROM %s LIMIT 1;", pgx.Identifier{table}.Sanitize())
		rows, err := c.db.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to probe table %s: %w", table, translateError(err))
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to probe table %s: %w", table, translateError(err))
		}
	}
	return nil
}

// PgxChangeListener turns Postgres NOTIFY payloads into change events.
type PgxChangeListener struct {
	db      *pgxpool.Pool
	channel string
}

func newPgxChangeListener(db *pgxpool.Pool) portsrepo.ChangeFeed {
	return &PgxChangeListener{db: db, channel: ChangeChannel}
}

var _ portsrepo.ChangeFeed = (*PgxChangeListener)(nil)

// Listen holds one pooled connection for the lifetime of the subscription.
// It returns nil once ctx is cancelled.
func (l *PgxChangeListener) Listen(ctx context.Context, handler func(domain.ChangeEvent)) error {
	conn, err := l.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listener connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", l.channel, translateError(err))
	}
	defer func() {
		// The connection may already be closed by a cancelled wait.
		_, _ = conn.Exec(context.Background(), "UNLISTEN *")
	}()

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed waiting for notification: %w", err)
		}

		var event domain.ChangeEvent
		if err := json.Unmarshal([]byte(n.Payload), &event); err != nil {
			slog.Warn("Ignoring malformed change notification", "channel", n.Channel, "payload", n.Payload, "error", err)
			continue
		}
		handler(event)
	}
}
