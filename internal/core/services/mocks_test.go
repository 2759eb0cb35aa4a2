package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/obsbank/obs_backend/internal/core/domain"
	portsrepo "github.com/obsbank/obs_backend/internal/core/ports/repositories"
	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/dto"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByUserID(ctx context.Context, userID int64) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, accountNumber string, active bool) error {
	args := m.Called(ctx, accountNumber, active)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveEntries(ctx context.Context, entries []domain.Transaction, balanceChanges map[string]decimal.Decimal) ([]domain.Transaction, map[string]decimal.Decimal, error) {
	args := m.Called(ctx, entries, balanceChanges)
	var saved []domain.Transaction
	if args.Get(0) != nil {
		saved = args.Get(0).([]domain.Transaction)
	}
	var balances map[string]decimal.Decimal
	if args.Get(1) != nil {
		balances = args.Get(1).(map[string]decimal.Decimal)
	}
	return saved, balances, args.Error(2)
}

func (m *MockTransactionRepository) ResolveEntry(ctx context.Context, updated domain.Transaction, credit *domain.Transaction, balanceChanges map[string]decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, updated, credit, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock RecurringPaymentRepository ---

type MockRecurringPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.RecurringPaymentRepositoryFacade = (*MockRecurringPaymentRepository)(nil)

func (m *MockRecurringPaymentRepository) SaveRecurringPayment(ctx context.Context, payment domain.RecurringPayment) (*domain.RecurringPayment, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringPayment), args.Error(1)
}

func (m *MockRecurringPaymentRepository) FindRecurringPaymentByID(ctx context.Context, id int64) (*domain.RecurringPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringPayment), args.Error(1)
}

func (m *MockRecurringPaymentRepository) FindRecurringPaymentsByAccountID(ctx context.Context, accountID int64) ([]domain.RecurringPayment, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringPayment), args.Error(1)
}

func (m *MockRecurringPaymentRepository) FindDuePayments(ctx context.Context, status domain.ScheduleStatus, dueOnOrBefore time.Time) ([]domain.RecurringPayment, error) {
	args := m.Called(ctx, status, dueOnOrBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringPayment), args.Error(1)
}

func (m *MockRecurringPaymentRepository) UpdateRecurringPayment(ctx context.Context, payment domain.RecurringPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// --- Mock BillPaymentRepository ---

type MockBillPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.BillPaymentRepositoryFacade = (*MockBillPaymentRepository)(nil)

func (m *MockBillPaymentRepository) SaveBillPayment(ctx context.Context, bill domain.BillPayment, debit domain.Transaction, balanceChanges map[string]decimal.Decimal) (*domain.BillPayment, error) {
	args := m.Called(ctx, bill, debit, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillPayment), args.Error(1)
}

func (m *MockBillPaymentRepository) FindBillPaymentsByUserID(ctx context.Context, userID int64) ([]domain.BillPayment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BillPayment), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByPANNumber(ctx context.Context, panNumber string) (bool, error) {
	args := m.Called(ctx, panNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateUserPAN(ctx context.Context, userID int64, panNumber string) error {
	args := m.Called(ctx, userID, panNumber)
	return args.Error(0)
}

// --- Mock TransferService (used by the recurring service tests) ---

type MockTransferService struct {
	mock.Mock
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

func (m *MockTransferService) TransferFunds(ctx context.Context, req dto.TransferRequest, username string) (dto.TransferOutcome, error) {
	args := m.Called(ctx, req, username)
	return args.Get(0).(dto.TransferOutcome), args.Error(1)
}

func (m *MockTransferService) ExecuteRecurringTransfer(ctx context.Context, fromAccount domain.Account, targetAccountNumber string, amount decimal.Decimal) error {
	args := m.Called(ctx, fromAccount, targetAccountNumber, amount)
	return args.Error(0)
}

func (m *MockTransferService) ApproveTransaction(ctx context.Context, transactionID int64) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransferService) RejectTransaction(ctx context.Context, transactionID int64) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransferService) GetPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransferService) GetTransactionHistory(ctx context.Context, accountNumber, username string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountNumber, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransferService) GetTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
