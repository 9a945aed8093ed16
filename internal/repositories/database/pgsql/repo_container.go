package pgsql

import (
	portsrepo "github.com/SscSPs/drycleaner_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:   newPgxClientRepository(dbPool),
		InvoiceRepo:  newPgxInvoiceRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		AuditLogRepo: newPgxAuditLogRepository(dbPool),
		Schema:       newPgxSchemaChecker(dbPool),
		Changes:      newPgxChangeListener(dbPool),
	}
}
