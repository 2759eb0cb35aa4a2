package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obsbank/obs_backend/internal/core/domain"
)

// AccountRepositoryFacade provides access to account records. Balance columns are
// never written through this facade; all balance mutation goes through the
// TransactionRepositoryFacade so that it stays atomic with the ledger.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	FindAccountsByUserID(ctx context.Context, userID int64) ([]domain.Account, error)
	SetAccountActive(ctx context.Context, accountNumber string, active bool) error
}

// TransactionRepositoryFacade is the ledger store. SaveEntries and ResolveEntry
// are the system's two atomic units: each locks the affected account rows FOR
// UPDATE, re-checks that no balance goes negative, applies the balance changes and
// writes the ledger rows in a single database transaction.
type TransactionRepositoryFacade interface {
	// SaveEntries appends ledger entries and applies the given per-account-number
	// balance deltas as one atomic unit. It returns the entries with ids and
	// timestamps assigned, plus the post-update balance of every touched account
	// as written under the row locks. A delta that would drive a balance negative
	// fails the whole unit with ErrInsufficientFunds.
	SaveEntries(ctx context.Context, entries []domain.Transaction, balanceChanges map[string]decimal.Decimal) ([]domain.Transaction, map[string]decimal.Decimal, error)

	// ResolveEntry finalises a pending entry: it updates the entry's status and
	// description, applies the balance deltas and, when credit is non-nil, appends
	// the counterparty credit entry, all in one atomic unit.
	ResolveEntry(ctx context.Context, updated domain.Transaction, credit *domain.Transaction, balanceChanges map[string]decimal.Decimal) (*domain.Transaction, error)

	FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error)
	FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	FindPendingTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// RecurringPaymentRepositoryFacade provides access to standing orders.
type RecurringPaymentRepositoryFacade interface {
	SaveRecurringPayment(ctx context.Context, payment domain.RecurringPayment) (*domain.RecurringPayment, error)
	FindRecurringPaymentByID(ctx context.Context, id int64) (*domain.RecurringPayment, error)
	FindRecurringPaymentsByAccountID(ctx context.Context, accountID int64) ([]domain.RecurringPayment, error)
	// FindDuePayments returns schedules with the given status whose next payment
	// date is on or before the given date. The scheduler processes the returned
	// snapshot without re-querying mid-batch.
	FindDuePayments(ctx context.Context, status domain.ScheduleStatus, dueOnOrBefore time.Time) ([]domain.RecurringPayment, error)
	UpdateRecurringPayment(ctx context.Context, payment domain.RecurringPayment) error
}

// BillPaymentRepositoryFacade provides access to bill payments. SaveBillPayment
// is atomic with the matching ledger debit.
type BillPaymentRepositoryFacade interface {
	// SaveBillPayment writes the bill record, the debit ledger entry and the
	// balance deltas as one atomic unit.
	SaveBillPayment(ctx context.Context, bill domain.BillPayment, debit domain.Transaction, balanceChanges map[string]decimal.Decimal) (*domain.BillPayment, error)
	FindBillPaymentsByUserID(ctx context.Context, userID int64) ([]domain.BillPayment, error)
}

// RepositoryProvider bundles the concrete repositories for wiring at startup.
type RepositoryProvider struct {
	AccountRepo          AccountRepositoryFacade
	TransactionRepo      TransactionRepositoryFacade
	RecurringPaymentRepo RecurringPaymentRepositoryFacade
	BillPaymentRepo      BillPaymentRepositoryFacade
	UserRepo             UserRepositoryFacade
}

// UserRepositoryFacade provides access to user records.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByPANNumber(ctx context.Context, panNumber string) (bool, error)
	UpdateUserPAN(ctx context.Context, userID int64, panNumber string) error
}
