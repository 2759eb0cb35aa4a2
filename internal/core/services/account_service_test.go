package services_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/obsbank/obs_backend/internal/apperrors"
	"github.com/obsbank/obs_backend/internal/core/domain"
	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/core/services"
	"github.com/obsbank/obs_backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.AccountSvcFacade
	user            domain.User
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockTxnRepo, suite.mockUserRepo)

	suite.user = domain.User{
		ID:       10,
		Username: "alice",
		FullName: gofakeit.Name(),
		Email:    gofakeit.Email(),
		Roles:    []domain.Role{domain.RoleCustomer},
		Active:   true,
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_LinksPANOnFirstAccount() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(&suite.user, nil)
	suite.mockUserRepo.On("ExistsByPANNumber", ctx, "ABCDE1234F").Return(false, nil).Once()
	suite.mockUserRepo.On("UpdateUserPAN", ctx, suite.user.ID, "ABCDE1234F").Return(nil).Once()

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).
		Return(&domain.Account{ID: 1}, nil).Once()

	req := dto.CreateAccountRequest{AccountType: domain.Savings, PANCardNumber: "ABCDE1234F"}
	_, err := suite.service.CreateAccount(ctx, req, "alice")

	suite.Require().NoError(err)
	suite.True(saved.Balance.IsZero())
	suite.True(saved.Active)
	suite.Len(saved.AccountNumber, 16)
	suite.Equal("1000", saved.AccountNumber[:4])
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsDifferentPAN() {
	ctx := context.Background()
	suite.user.PANNumber = "ABCDE1234F"
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(&suite.user, nil)

	req := dto.CreateAccountRequest{AccountType: domain.Savings, PANCardNumber: "ZZZZZ9999Z"}
	_, err := suite.service.CreateAccount(ctx, req, "alice")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsPANOfAnotherCustomer() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(&suite.user, nil)
	suite.mockUserRepo.On("ExistsByPANNumber", ctx, "ABCDE1234F").Return(true, nil).Once()

	req := dto.CreateAccountRequest{AccountType: domain.Savings, PANCardNumber: "ABCDE1234F"}
	_, err := suite.service.CreateAccount(ctx, req, "alice")

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SamePANAllowedForSecondAccount() {
	ctx := context.Background()
	suite.user.PANNumber = "ABCDE1234F"
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(&suite.user, nil)
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(&domain.Account{ID: 2}, nil).Once()

	req := dto.CreateAccountRequest{AccountType: domain.Savings, PANCardNumber: "ABCDE1234F"}
	_, err := suite.service.CreateAccount(ctx, req, "alice")

	suite.Require().NoError(err)
	// No re-link and no uniqueness lookup for an already linked PAN.
	suite.mockUserRepo.AssertNotCalled(suite.T(), "ExistsByPANNumber", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUserPAN", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CurrentRequiresBusinessDetails() {
	ctx := context.Background()
	suite.user.PANNumber = "ABCDE1234F"
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(&suite.user, nil)

	req := dto.CreateAccountRequest{AccountType: domain.Current, PANCardNumber: "ABCDE1234F"}
	_, err := suite.service.CreateAccount(ctx, req, "alice")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestDeposit_WritesCreditEntry() {
	ctx := context.Background()
	account := domain.Account{
		ID:            1,
		AccountNumber: "1000111122223333",
		Balance:       decimal.NewFromInt(100),
		Active:        true,
		OwnerUsername: "alice",
	}
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, account.AccountNumber).Return(&account, nil)

	var entries []domain.Transaction
	var changes map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			entries = args.Get(1).([]domain.Transaction)
			changes = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return([]domain.Transaction{}, map[string]decimal.Decimal{account.AccountNumber: decimal.NewFromInt(600)}, nil).Once()

	newBalance, err := suite.service.Deposit(ctx, account.AccountNumber, decimal.NewFromInt(500), "banker")

	suite.Require().NoError(err)
	suite.True(newBalance.Equal(decimal.NewFromInt(600)))

	suite.Require().Len(entries, 1)
	suite.Equal(domain.Credit, entries[0].Type)
	suite.Equal(domain.StatusSuccess, entries[0].Status)
	suite.Equal("Cash Deposit by Banker [banker]", entries[0].Description)
	suite.True(changes[account.AccountNumber].Equal(decimal.NewFromInt(500)))
}

func (suite *AccountServiceTestSuite) TestDeposit_ReportsLockedBalance() {
	ctx := context.Background()
	account := domain.Account{
		ID:            1,
		AccountNumber: "1000111122223333",
		Balance:       decimal.NewFromInt(100),
		Active:        true,
		OwnerUsername: "alice",
	}
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, account.AccountNumber).Return(&account, nil)

	// A concurrent transfer debited the account between the read and the locked
	// write. The reported balance must be the one the repository wrote, not the
	// stale read plus the deposit.
	suite.mockTxnRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Return([]domain.Transaction{}, map[string]decimal.Decimal{account.AccountNumber: decimal.NewFromInt(550)}, nil).Once()

	newBalance, err := suite.service.Deposit(ctx, account.AccountNumber, decimal.NewFromInt(500), "banker")

	suite.Require().NoError(err)
	suite.True(newBalance.Equal(decimal.NewFromInt(550)))
}

func (suite *AccountServiceTestSuite) TestDeposit_RefusesFrozenAccount() {
	ctx := context.Background()
	account := domain.Account{ID: 1, AccountNumber: "1000111122223333", Active: false}
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, account.AccountNumber).Return(&account, nil)

	_, err := suite.service.Deposit(ctx, account.AccountNumber, decimal.NewFromInt(500), "banker")

	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeposit_RejectsNonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.Deposit(ctx, "1000111122223333", decimal.Zero, "banker")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestToggleAccountActive() {
	ctx := context.Background()
	account := domain.Account{ID: 1, AccountNumber: "1000111122223333", Active: true}
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, account.AccountNumber).Return(&account, nil)
	suite.mockAccountRepo.On("SetAccountActive", ctx, account.AccountNumber, false).Return(nil).Once()

	active, err := suite.service.ToggleAccountActive(ctx, account.AccountNumber)

	suite.Require().NoError(err)
	suite.False(active)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOwnedAccount_NotOwner() {
	ctx := context.Background()
	account := domain.Account{ID: 1, AccountNumber: "1000111122223333", OwnerUsername: "alice"}
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, account.AccountNumber).Return(&account, nil)

	_, err := suite.service.GetOwnedAccount(ctx, account.AccountNumber, "mallory")

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
