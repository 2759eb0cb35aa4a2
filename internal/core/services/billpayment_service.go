package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/obsbank/obs_backend/internal/apperrors"
	"github.com/obsbank/obs_backend/internal/core/domain"
	portsrepo "github.com/obsbank/obs_backend/internal/core/ports/repositories"
	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/middleware"
)

// billPaymentService debits customer accounts for utility bills and keeps the
// per-user bill history.
type billPaymentService struct {
	billRepo    portsrepo.BillPaymentRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewBillPaymentService creates a new BillPaymentService.
func NewBillPaymentService(billRepo portsrepo.BillPaymentRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.BillPaymentSvcFacade {
	return &billPaymentService{
		billRepo:    billRepo,
		accountRepo: accountRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.BillPaymentSvcFacade = (*billPaymentService)(nil)

// PayBill debits an owned account for a bill. The bill record, the debit ledger
// entry and the balance change are written in one atomic unit.
func (s *billPaymentService) PayBill(ctx context.Context, userID int64, accountNumber, billerName string, amount decimal.Decimal) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: bill amount must be positive", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user not found", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to find account: %w", err)
	}
	if account.UserID != user.ID {
		return fmt.Errorf("%w: unauthorized access to account", apperrors.ErrForbidden)
	}
	if account.Balance.LessThan(amount) {
		return apperrors.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	bill := domain.BillPayment{
		UserID:     user.ID,
		BillerName: billerName,
		Amount:     amount,
		PaidAt:     now,
		Status:     domain.BillPaid,
	}
	debit := domain.Transaction{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Amount:        amount.Neg(),
		Type:          domain.Debit,
		Status:        domain.StatusSuccess,
		Description:   "Bill Payment: " + billerName,
		Timestamp:     now,
	}
	balanceChanges := map[string]decimal.Decimal{
		account.AccountNumber: amount.Neg(),
	}

	if _, err := s.billRepo.SaveBillPayment(ctx, bill, debit, balanceChanges); err != nil {
		logger.Error("Failed to record bill payment",
			slog.String("account_number", accountNumber),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to record bill payment: %w", err)
	}

	logger.Info("Bill paid",
		slog.String("account_number", accountNumber),
		slog.String("biller", billerName),
		slog.String("amount", amount.String()))
	return nil
}

// GetMyBills lists the user's bill payments, newest first.
func (s *billPaymentService) GetMyBills(ctx context.Context, userID int64) ([]domain.BillPayment, error) {
	bills, err := s.billRepo.FindBillPaymentsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill payments: %w", err)
	}
	return bills, nil
}
