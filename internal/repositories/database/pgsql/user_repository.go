package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	"github.com/SscSPs/drycleaner_app/internal/models"
	"github.com/SscSPs/drycleaner_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id::text, name, phone, role, created_at, updated_at`

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(&m.UserID, &m.Name, &m.Phone, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.UserAccount) (*domain.UserAccount, error) {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (name, phone, role)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns + `;`

	saved, err := scanUser(r.db.QueryRow(ctx, query, m.Name, m.Phone, m.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to save user %s: %w", m.Phone, translateError(err))
	}
	out := mapping.ToDomainUser(saved)
	return &out, nil
}

// FindUserByPhone retrieves a user by the phone they sign in with.
func (r *PgxUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.UserAccount, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1;`

	m, err := scanUser(r.db.QueryRow(ctx, query, phone))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by phone: %w", translateError(err))
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUsers retrieves a paginated list of users, oldest first.
func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.UserAccount, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id LIMIT $1 OFFSET $2;`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", translateError(err))
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", translateError(err))
	}
	return mapping.ToDomainUserSlice(users), nil
}
