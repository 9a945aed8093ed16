package pgsql

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: apperrors.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: apperrors.ErrNotFound},
		{name: "unique", err: &pgconn.PgError{Code: "23505", Detail: "Key (phone)=(0788) already exists."}, want: apperrors.ErrDuplicate},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: apperrors.ErrValidation},
		{name: "check", err: &pgconn.PgError{Code: "23514"}, want: apperrors.ErrValidation},
		{name: "bad uuid", err: &pgconn.PgError{Code: "22P02"}, want: apperrors.ErrValidation},
		{name: "missing table", err: &pgconn.PgError{Code: "42P01", Message: `relation "clients" does not exist`}, want: apperrors.ErrSchemaMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err), tt.want)
		})
	}

	other := errors.New("connection reset")
	assert.Same(t, other, translateError(other))
	assert.NoError(t, translateError(nil))
}

func TestUpdateBuilder(t *testing.T) {
	var b updateBuilder
	assert.True(t, b.empty())

	b.set("name", "Alice")
	b.setExpr("address", "NULLIF($%d, '')", "")

	query, args := b.build("clients", "c1", "id")
	assert.Equal(t, "UPDATE clients SET name = $1, address = NULLIF($2, ''), updated_at = NOW() WHERE id = $3 RETURNING id", query)
	assert.Equal(t, []any{"Alice", "", "c1"}, args)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%INV24%", likePattern("INV24"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func TestInvoiceWhere(t *testing.T) {
	where, args := invoiceWhere(domain.InvoiceFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = invoiceWhere(domain.InvoiceFilter{IDContains: "INV24", ClientIDs: []string{"c1", "c2"}})
	assert.Equal(t, " WHERE (i.id ILIKE $1 OR i.client_id::text = ANY($2))", where)
	assert.Equal(t, []any{"%INV24%", []string{"c1", "c2"}}, args)

	where, args = invoiceWhere(domain.InvoiceFilter{ClientID: "c1"})
	assert.Equal(t, " WHERE i.client_id::text = $1", where)
	assert.Equal(t, []any{"c1"}, args)
}

// rollbackTx is a pgx.Tx whose Rollback returns err.
type rollbackTx struct {
	pgx.Tx
	err error
}

func (tx rollbackTx) Rollback(context.Context) error { return tx.err }

func TestRollback(t *testing.T) {
	repo := &BaseRepository{}
	ctx := context.Background()

	assert.NoError(t, repo.Rollback(ctx, rollbackTx{}))
	assert.NoError(t, repo.Rollback(ctx, rollbackTx{err: pgx.ErrTxClosed}), "rollback after commit is a no-op")
	assert.NoError(t, repo.Rollback(ctx, rollbackTx{err: fmt.Errorf("deferred: %w", pgx.ErrTxClosed)}))

	err := repo.Rollback(ctx, rollbackTx{err: errors.New("conn busy")})
	assert.Error(t, err)
}

func TestMigrations_ItemWritesNotifyParentInvoice(t *testing.T) {
	up, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "000003_invoice_item_notifications.up.sql"))
	require.NoError(t, err)

	assert.Contains(t, string(up), "AFTER INSERT OR UPDATE OR DELETE ON invoice_items")
	assert.Contains(t, string(up), "'drycleaner_changes'")
	assert.Contains(t, string(up), "'table', 'invoices'")
	assert.Contains(t, string(up), "NEW.invoice_id")
}
