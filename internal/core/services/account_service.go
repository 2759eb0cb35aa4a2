package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obsbank/obs_backend/internal/apperrors"
	"github.com/obsbank/obs_backend/internal/core/domain"
	portsrepo "github.com/obsbank/obs_backend/internal/core/ports/repositories"
	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/dto"
	"github.com/obsbank/obs_backend/internal/middleware"
	"github.com/obsbank/obs_backend/internal/utils"
)

// accountService manages account lifecycle, banker deposits and freeze toggles.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new account with zero balance for the given customer.
// A customer links exactly one PAN card number; the first account fixes it and
// every later account must present the same one. CURRENT accounts additionally
// require business details.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, username string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	requestPAN := strings.TrimSpace(req.PANCardNumber)
	if requestPAN == "" {
		return nil, fmt.Errorf("%w: PAN card number is required", apperrors.ErrValidation)
	}

	if user.PANNumber == "" {
		taken, err := s.userRepo.ExistsByPANNumber(ctx, requestPAN)
		if err != nil {
			return nil, fmt.Errorf("failed to check PAN uniqueness: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: PAN already linked to another customer", apperrors.ErrDuplicate)
		}
		if err := s.userRepo.UpdateUserPAN(ctx, user.ID, requestPAN); err != nil {
			return nil, fmt.Errorf("failed to link PAN to user: %w", err)
		}
	} else if user.PANNumber != requestPAN {
		return nil, fmt.Errorf("%w: customer can use only one PAN number for all accounts", apperrors.ErrValidation)
	}

	if req.AccountType == domain.Current {
		if strings.TrimSpace(req.BusinessName) == "" || strings.TrimSpace(req.BusinessAddress) == "" {
			return nil, fmt.Errorf("%w: business name and address are required for a current account", apperrors.ErrValidation)
		}
	}

	accountNumber, err := utils.GenerateAccountNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account number: %w", err)
	}

	account := domain.Account{
		AccountNumber: accountNumber,
		Balance:       decimal.Zero,
		AccountType:   req.AccountType,
		Active:        true,
		UserID:        user.ID,
		OwnerUsername: user.Username,
		CreatedAt:     time.Now().UTC(),
	}
	if req.AccountType == domain.Current {
		account.BusinessName = req.BusinessName
		account.BusinessAddress = req.BusinessAddress
	}

	saved, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_number", saved.AccountNumber),
		slog.String("account_type", string(saved.AccountType)))
	return saved, nil
}

// GetMyAccounts lists all accounts owned by the given user.
func (s *accountService) GetMyAccounts(ctx context.Context, username string) ([]domain.Account, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return s.accountRepo.FindAccountsByUserID(ctx, user.ID)
}

// GetOwnedAccount fetches an account and verifies the requester owns it.
func (s *accountService) GetOwnedAccount(ctx context.Context, accountNumber, username string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account.OwnerUsername != username {
		return nil, fmt.Errorf("%w: unauthorized access to account", apperrors.ErrForbidden)
	}
	return account, nil
}

// SearchAccount fetches an account by number without an ownership check. Only
// banker routes expose this.
func (s *accountService) SearchAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// ToggleAccountActive flips the account's active flag and returns the new state.
func (s *accountService) ToggleAccountActive(ctx context.Context, accountNumber string) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
		}
		return false, fmt.Errorf("failed to find account: %w", err)
	}

	newState := !account.Active
	if err := s.accountRepo.SetAccountActive(ctx, accountNumber, newState); err != nil {
		return false, fmt.Errorf("failed to update account state: %w", err)
	}

	logger.Info("Account active flag toggled", slog.String("account_number", accountNumber), slog.Bool("active", newState))
	return newState, nil
}

// Deposit credits a customer account with cash handed to a banker. Produces one
// SUCCESS CREDIT ledger entry and returns the new balance.
func (s *accountService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, bankerUsername string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
		}
		return decimal.Zero, fmt.Errorf("failed to find account: %w", err)
	}

	if !account.Active {
		return decimal.Zero, fmt.Errorf("%w: cannot deposit to frozen/inactive account", apperrors.ErrInvalidState)
	}

	description := "Cash Deposit by Banker"
	if bankerUsername != "" {
		description += " [" + bankerUsername + "]"
	}

	credit := domain.Transaction{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Amount:        amount,
		Type:          domain.Credit,
		Status:        domain.StatusSuccess,
		Description:   description,
		Timestamp:     time.Now().UTC(),
	}
	balanceChanges := map[string]decimal.Decimal{
		account.AccountNumber: amount,
	}

	// Report the balance written under the row lock, not the pre-lock read plus
	// the amount; a concurrent transfer between the read and the write would make
	// the recomputed value stale.
	_, balances, err := s.txnRepo.SaveEntries(ctx, []domain.Transaction{credit}, balanceChanges)
	if err != nil {
		logger.Error("Failed to record deposit", slog.String("account_number", accountNumber), slog.String("error", err.Error()))
		return decimal.Zero, fmt.Errorf("failed to record deposit: %w", err)
	}

	logger.Info("Deposit recorded", slog.String("account_number", accountNumber), slog.String("amount", amount.String()))
	return balances[account.AccountNumber], nil
}
