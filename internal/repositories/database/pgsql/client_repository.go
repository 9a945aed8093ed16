package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	"github.com/SscSPs/drycleaner_app/internal/models"
	"github.com/SscSPs/drycleaner_app/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `id::text, name, phone, address, visit_count, reward_claimed, last_visit, created_at, updated_at`

// PgxClientRepository implements the client repository interfaces on pgx.
type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.Phone,
		&m.Address,
		&m.VisitCount,
		&m.RewardClaimed,
		&m.LastVisit,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// FindClients retrieves all clients, newest first.
func (r *PgxClientRepository) FindClients(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC, id DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", translateError(err))
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", translateError(err))
	}
	return mapping.ToDomainClientSlice(clients), nil
}

// FindClientByID retrieves a specific client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1;`

	m, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, translateError(err))
	}
	client := mapping.ToDomainClient(m)
	return &client, nil
}

// FindClientIDsMatching returns ids of clients whose name or phone contains query.
func (r *PgxClientRepository) FindClientIDsMatching(ctx context.Context, query string) ([]string, error) {
	sqlQuery := `SELECT id::text FROM clients WHERE name ILIKE $1 OR phone ILIKE $1;`

	rows, err := r.Pool.Query(ctx, sqlQuery, likePattern(query))
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", translateError(err))
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect client ids: %w", translateError(err))
	}
	return ids, nil
}

// CreateClient inserts a client. The database assigns id and timestamps;
// last_visit defaults to now when not supplied.
func (r *PgxClientRepository) CreateClient(ctx context.Context, client domain.NewClient) (*domain.Client, error) {
	query := `
		INSERT INTO clients (name, phone, address, visit_count, reward_claimed, last_visit)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, COALESCE($6, NOW()))
		RETURNING ` + clientColumns + `;`

	m, err := scanClient(r.Pool.QueryRow(ctx, query,
		client.Name,
		client.Phone,
		client.Address,
		client.VisitCount,
		client.RewardClaimed,
		client.LastVisit,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create client %s: %w", client.Phone, translateError(err))
	}
	created := mapping.ToDomainClient(m)
	return &created, nil
}

// UpdateClient applies the non-nil fields of update and returns the stored row.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, clientID string, update domain.ClientUpdate) (*domain.Client, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	var b updateBuilder
	if update.Name != nil {
		b.set("name", *update.Name)
	}
	if update.Phone != nil {
		b.set("phone", *update.Phone)
	}
	if update.Address != nil {
		b.setExpr("address", "NULLIF($%d, '')", *update.Address)
	}
	if update.VisitCount != nil {
		b.set("visit_count", *update.VisitCount)
	}
	if update.RewardClaimed != nil {
		b.set("reward_claimed", *update.RewardClaimed)
	}
	if update.LastVisit != nil {
		b.set("last_visit", *update.LastVisit)
	}
	if b.empty() {
		return r.FindClientByID(ctx, clientID)
	}

	query, args := b.build("clients", clientID, clientColumns)
	m, err := scanClient(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update client %s: %w", clientID, translateError(err))
	}
	updated := mapping.ToDomainClient(m)
	return &updated, nil
}

// DeleteClient hard deletes a client; its invoices cascade in the database.
func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	if _, err := uuid.Parse(clientID); err != nil {
		return apperrors.ErrNotFound
	}
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE id = $1;`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, translateError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IncrementVisit bumps visit_count in a single statement so concurrent
// invoices never lose a visit.
func (r *PgxClientRepository) IncrementVisit(ctx context.Context, clientID string, at time.Time) error {
	query := `
		UPDATE clients
		SET visit_count = visit_count + 1, last_visit = $2, updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, clientID, at)
	if err != nil {
		return fmt.Errorf("failed to increment visit for client %s: %w", clientID, translateError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
