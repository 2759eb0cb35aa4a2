package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obsbank/obs_backend/internal/core/domain"
	"github.com/obsbank/obs_backend/internal/dto"
)

// TransferSvcFacade is the transfer engine plus the approval workflow over held
// transfers.
type TransferSvcFacade interface {
	// TransferFunds moves money between two accounts on behalf of the requesting
	// user. It returns OutcomeSuccess for an auto-approved transfer and
	// OutcomePending when the transfer is held for banker approval.
	TransferFunds(ctx context.Context, req dto.TransferRequest, username string) (dto.TransferOutcome, error)

	// ExecuteRecurringTransfer is the scheduler's unconditional variant: the
	// ownership check is skipped (the scheduler acts for the schedule owner) and
	// the transfer always auto-executes regardless of amount.
	ExecuteRecurringTransfer(ctx context.Context, fromAccount domain.Account, targetAccountNumber string, amount decimal.Decimal) error

	ApproveTransaction(ctx context.Context, transactionID int64) error
	RejectTransaction(ctx context.Context, transactionID int64) error

	GetPendingTransactions(ctx context.Context) ([]domain.Transaction, error)
	GetTransactionHistory(ctx context.Context, accountNumber, username string) ([]domain.Transaction, error)
	GetTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error)
}

// AccountSvcFacade manages account lifecycle and banker/admin operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, username string) (*domain.Account, error)
	GetMyAccounts(ctx context.Context, username string) ([]domain.Account, error)
	GetOwnedAccount(ctx context.Context, accountNumber, username string) (*domain.Account, error)
	SearchAccount(ctx context.Context, accountNumber string) (*domain.Account, error)
	ToggleAccountActive(ctx context.Context, accountNumber string) (bool, error)
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, bankerUsername string) (decimal.Decimal, error)
}

// RecurringSvcFacade manages standing orders and executes the daily tick.
type RecurringSvcFacade interface {
	CreateRecurringPayment(ctx context.Context, req dto.CreateRecurringPaymentRequest, username string) (*domain.RecurringPayment, error)
	GetRecurringPaymentsByAccount(ctx context.Context, accountNumber, username string) ([]domain.RecurringPayment, error)
	StopRecurringPayment(ctx context.Context, id int64, username string) error

	// ProcessDuePayments runs one scheduler tick for the given date. Failures are
	// isolated per schedule: a failed payment is logged and skipped and its
	// schedule left untouched for the next tick.
	ProcessDuePayments(ctx context.Context, today time.Time) error
}

// BillPaymentSvcFacade is the debit-only bill payment processor.
type BillPaymentSvcFacade interface {
	PayBill(ctx context.Context, userID int64, accountNumber, billerName string, amount decimal.Decimal) error
	GetMyBills(ctx context.Context, userID int64) ([]domain.BillPayment, error)
}

// UserSvcFacade manages user registration and lookup.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}

// AuthSvcFacade issues access tokens for valid credentials.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// ServiceContainer bundles the service facades for route wiring at startup.
type ServiceContainer struct {
	Auth        AuthSvcFacade
	User        UserSvcFacade
	Account     AccountSvcFacade
	Transfer    TransferSvcFacade
	Recurring   RecurringSvcFacade
	BillPayment BillPaymentSvcFacade
	Statement   StatementRenderer
}

// StatementRenderer turns core data into a printable byte stream. It is a
// read-only consumer of accounts and ledger entries and never mutates them.
type StatementRenderer interface {
	RenderStatement(ctx context.Context, account domain.Account, entries []domain.Transaction) ([]byte, error)
	RenderReceipt(ctx context.Context, entry domain.Transaction) ([]byte, error)
}
