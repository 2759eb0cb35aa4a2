package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/obsbank/obs_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:          newPgxAccountRepository(dbPool),
		TransactionRepo:      newPgxTransactionRepository(dbPool),
		RecurringPaymentRepo: newPgxRecurringPaymentRepository(dbPool),
		BillPaymentRepo:      newPgxBillPaymentRepository(dbPool),
		UserRepo:             newPgxUserRepository(dbPool),
	}
}
