package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	"github.com/SscSPs/drycleaner_app/internal/models"
	"github.com/SscSPs/drycleaner_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invoiceSelect = `
	SELECT i.id, i.client_id::text, i.total, i.payment_method, i.paid, i.status,
	       i.pickup_date::text, i.pickup_time::text, i.notes, i.created_by_name, i.created_by_phone,
	       i.created_at, i.updated_at,
	       c.id::text, c.name, c.phone, c.address, c.visit_count, c.reward_claimed, c.last_visit, c.created_at, c.updated_at
	FROM invoices i
	JOIN clients c ON c.id = i.client_id`

const invoiceItemInsert = `
	INSERT INTO invoice_items (invoice_id, description, quantity, unit_price, total_price)
	VALUES ($1, $2, $3, $4, $5);`

// PgxInvoiceRepository implements the invoice repository interfaces on pgx.
type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

// invoiceWhere renders the WHERE clause for filter. IDContains and ClientIDs
// are alternatives and are OR-ed together; the remaining fields narrow.
func invoiceWhere(filter domain.InvoiceFilter) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var alternatives []string
	if filter.IDContains != "" {
		alternatives = append(alternatives, "i.id ILIKE "+next(likePattern(filter.IDContains)))
	}
	if filter.ClientIDs != nil {
		alternatives = append(alternatives, "i.client_id::text = ANY("+next(filter.ClientIDs)+")")
	}
	if len(alternatives) > 0 {
		conds = append(conds, "("+strings.Join(alternatives, " OR ")+")")
	}
	if filter.ClientID != "" {
		conds = append(conds, "i.client_id::text = "+next(filter.ClientID))
	}
	if filter.CreatedFrom != nil {
		conds = append(conds, "i.created_at >= "+next(*filter.CreatedFrom))
	}
	if filter.CreatedTo != nil {
		conds = append(conds, "i.created_at <= "+next(*filter.CreatedTo))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListInvoices retrieves a page of invoices with their client and items.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter, limit int, offset int) ([]domain.Invoice, error) {
	where, args := invoiceWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY i.created_at DESC, i.id DESC LIMIT $%d OFFSET $%d;",
		invoiceSelect, where, len(args)-1, len(args))

	return r.queryInvoices(ctx, query, args...)
}

// FindInvoiceByID retrieves a specific invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoices, err := r.queryInvoices(ctx, invoiceSelect+" WHERE i.id = $1;", invoiceID)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &invoices[0], nil
}

func (r *PgxInvoiceRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", translateError(err))
	}
	defer rows.Close()

	var (
		invoiceRows []models.Invoice
		clientRows  []models.Client
		ids         []string
	)
	for rows.Next() {
		var inv models.Invoice
		var c models.Client
		if err := rows.Scan(
			&inv.InvoiceID, &inv.ClientID, &inv.Total, &inv.PaymentMethod, &inv.Paid, &inv.Status,
			&inv.PickupDate, &inv.PickupTime, &inv.Notes, &inv.CreatedByName, &inv.CreatedByPhone,
			&inv.CreatedAt, &inv.UpdatedAt,
			&c.ClientID, &c.Name, &c.Phone, &c.Address, &c.VisitCount, &c.RewardClaimed, &c.LastVisit, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoiceRows = append(invoiceRows, inv)
		clientRows = append(clientRows, c)
		ids = append(ids, inv.InvoiceID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", translateError(err))
	}

	items, err := r.findItemsByInvoiceIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, len(invoiceRows))
	for i := range invoiceRows {
		invoices[i] = mapping.ToDomainInvoice(invoiceRows[i], clientRows[i], items[invoiceRows[i].InvoiceID])
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) findItemsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]models.InvoiceItem, error) {
	itemsMap := make(map[string][]models.InvoiceItem, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return itemsMap, nil
	}

	query := `
		SELECT id::text, invoice_id, description, quantity, unit_price, total_price, created_at
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, created_at, id;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", translateError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var m models.InvoiceItem
		if err := rows.Scan(&m.ItemID, &m.InvoiceID, &m.Description, &m.Quantity, &m.UnitPrice, &m.TotalPrice, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item row: %w", err)
		}
		itemsMap[m.InvoiceID] = append(itemsMap[m.InvoiceID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice item rows: %w", translateError(err))
	}
	return itemsMap, nil
}

// CreateInvoice inserts the invoice row. A zero CreatedAt defaults to now.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	var createdAt *time.Time
	if !m.CreatedAt.IsZero() {
		createdAt = &m.CreatedAt
	}

	query := `
		INSERT INTO invoices (id, client_id, total, payment_method, paid, status, pickup_date, pickup_time,
		                      notes, created_by_name, created_by_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::time, $9, $10, $11, COALESCE($12, NOW()), NOW());
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID,
		m.ClientID,
		m.Total,
		m.PaymentMethod,
		m.Paid,
		m.Status,
		m.PickupDate,
		m.PickupTime,
		m.Notes,
		m.CreatedByName,
		m.CreatedByPhone,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice %s: %w", m.InvoiceID, translateError(err))
	}
	return nil
}

// CreateInvoiceItems inserts items for invoiceID in one transaction.
func (r *PgxInvoiceRepository) CreateInvoiceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertItems(ctx, tx, invoiceID, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertItems(ctx context.Context, tx pgx.Tx, invoiceID string, items []domain.InvoiceItem) error {
	batch := &pgx.Batch{}
	for _, item := range mapping.ToModelInvoiceItems(invoiceID, items) {
		batch.Queue(invoiceItemInsert, item.InvoiceID, item.Description, item.Quantity, item.UnitPrice, item.TotalPrice)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert items of invoice %s: %w", invoiceID, translateError(err))
	}
	return nil
}

// UpdateInvoice applies update in one transaction: the scalar fields first,
// then, when update.Items is set, a delete and re-insert of the items.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoiceID string, update domain.InvoiceUpdate) error {
	var b updateBuilder
	if update.ClientID != nil {
		b.setExpr("client_id", "$%d::uuid", *update.ClientID)
	}
	if update.PaymentMethod != nil {
		b.set("payment_method", string(*update.PaymentMethod))
	}
	if update.Paid != nil {
		b.set("paid", *update.Paid)
	}
	if update.Status != nil {
		b.set("status", string(*update.Status))
	}
	if update.PickupDate != nil {
		b.setExpr("pickup_date", "NULLIF($%d, '')::date", *update.PickupDate)
	}
	if update.PickupTime != nil {
		b.setExpr("pickup_time", "NULLIF($%d, '')::time", *update.PickupTime)
	}
	if update.Notes != nil {
		b.setExpr("notes", "NULLIF($%d, '')", *update.Notes)
	}
	if update.CreatedAt != nil {
		b.set("created_at", *update.CreatedAt)
	}
	if update.Total != nil {
		b.set("total", *update.Total)
	}

	query := `UPDATE invoices SET updated_at = NOW() WHERE id = $1;`
	args := []any{invoiceID}
	if !b.empty() {
		query, args = b.build("invoices", invoiceID, "")
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", invoiceID, translateError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if update.Items != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoiceID); err != nil {
			return fmt.Errorf("failed to delete items of invoice %s: %w", invoiceID, translateError(err))
		}
		if err := insertItems(ctx, tx, invoiceID, update.Items); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// DeleteInvoice hard deletes an invoice; its items cascade in the database.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1;`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, translateError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
