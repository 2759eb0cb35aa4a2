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
)

// transferLimit is the amount above which a transfer from a non-CURRENT account
// is held for banker approval. Same unit as account balances.
var transferLimit = decimal.NewFromInt(10_000)

// transferService implements the transfer engine and the approval workflow.
type transferService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewTransferService creates a new TransferService.
func NewTransferService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.TransferSvcFacade {
	return &transferService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// TransferFunds validates a transfer and either executes it immediately or holds
// it for approval. A held transfer debits the source right away so the funds
// cannot be spent twice while the approval is outstanding.
func (s *transferService) TransferFunds(ctx context.Context, req dto.TransferRequest, username string) (dto.TransferOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	fromAccount, err := s.accountRepo.FindAccountByNumber(ctx, req.FromAccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: source account not found", apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("failed to find source account: %w", err)
	}

	if fromAccount.OwnerUsername != username {
		logger.Warn("Transfer attempt on account not owned by requester",
			slog.String("account_number", req.FromAccountNumber), slog.String("username", username))
		return "", fmt.Errorf("%w: you do not own the source account", apperrors.ErrForbidden)
	}

	toAccount, err := s.accountRepo.FindAccountByNumber(ctx, req.ToAccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: target account not found", apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("failed to find target account: %w", err)
	}

	if toAccount.AccountNumber == fromAccount.AccountNumber {
		return "", fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrInvalidState)
	}
	if !fromAccount.Active {
		return "", fmt.Errorf("%w: source account is frozen/inactive", apperrors.ErrInvalidState)
	}
	if !toAccount.Active {
		return "", fmt.Errorf("%w: target account is frozen/inactive", apperrors.ErrInvalidState)
	}
	if fromAccount.Balance.LessThan(req.Amount) {
		return "", apperrors.ErrInsufficientFunds
	}

	now := time.Now().UTC()

	if req.Amount.GreaterThan(transferLimit) && fromAccount.AccountType != domain.Current {
		// High value transfer from a personal account: reserve the funds now,
		// credit the target only after a banker approves.
		debit := domain.Transaction{
			AccountID:           fromAccount.ID,
			AccountNumber:       fromAccount.AccountNumber,
			Amount:              req.Amount.Neg(),
			Type:                domain.Debit,
			Status:              domain.StatusPending,
			TargetAccountNumber: toAccount.AccountNumber,
			Description:         "Transfer to " + toAccount.AccountNumber + domain.PendingApprovalMarker,
			Timestamp:           now,
		}
		balanceChanges := map[string]decimal.Decimal{
			fromAccount.AccountNumber: req.Amount.Neg(),
		}

		if _, _, err := s.txnRepo.SaveEntries(ctx, []domain.Transaction{debit}, balanceChanges); err != nil {
			logger.Error("Failed to hold transfer", slog.String("error", err.Error()),
				slog.String("from", fromAccount.AccountNumber), slog.String("to", toAccount.AccountNumber))
			return "", fmt.Errorf("failed to hold transfer: %w", err)
		}

		logger.Info("Transfer held for approval",
			slog.String("from", fromAccount.AccountNumber),
			slog.String("to", toAccount.AccountNumber),
			slog.String("amount", req.Amount.String()))
		return dto.OutcomePending, nil
	}

	debit := domain.Transaction{
		AccountID:           fromAccount.ID,
		AccountNumber:       fromAccount.AccountNumber,
		Amount:              req.Amount.Neg(),
		Type:                domain.Debit,
		Status:              domain.StatusSuccess,
		TargetAccountNumber: toAccount.AccountNumber,
		Description:         "Transfer to " + toAccount.OwnerUsername,
		Timestamp:           now,
	}
	credit := domain.Transaction{
		AccountID:           toAccount.ID,
		AccountNumber:       toAccount.AccountNumber,
		Amount:              req.Amount,
		Type:                domain.Credit,
		Status:              domain.StatusSuccess,
		TargetAccountNumber: fromAccount.AccountNumber,
		Description:         "Received from " + fromAccount.OwnerUsername,
		Timestamp:           now,
	}
	balanceChanges := map[string]decimal.Decimal{
		fromAccount.AccountNumber: req.Amount.Neg(),
		toAccount.AccountNumber:   req.Amount,
	}

	if _, _, err := s.txnRepo.SaveEntries(ctx, []domain.Transaction{debit, credit}, balanceChanges); err != nil {
		logger.Error("Failed to execute transfer", slog.String("error", err.Error()),
			slog.String("from", fromAccount.AccountNumber), slog.String("to", toAccount.AccountNumber))
		return "", fmt.Errorf("failed to execute transfer: %w", err)
	}

	logger.Info("Transfer completed",
		slog.String("from", fromAccount.AccountNumber),
		slog.String("to", toAccount.AccountNumber),
		slog.String("amount", req.Amount.String()))
	return dto.OutcomeSuccess, nil
}

// ExecuteRecurringTransfer runs a transfer on behalf of a schedule's owner. The
// ownership check is skipped and the transfer always auto-executes, but the
// active and balance preconditions stay in force.
func (s *transferService) ExecuteRecurringTransfer(ctx context.Context, fromAccount domain.Account, targetAccountNumber string, amount decimal.Decimal) error {
	toAccount, err := s.accountRepo.FindAccountByNumber(ctx, targetAccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: target account not found", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to find target account: %w", err)
	}

	if !fromAccount.Active {
		return fmt.Errorf("%w: source account is frozen/inactive", apperrors.ErrInvalidState)
	}
	if !toAccount.Active {
		return fmt.Errorf("%w: target account is frozen/inactive", apperrors.ErrInvalidState)
	}
	if fromAccount.Balance.LessThan(amount) {
		return apperrors.ErrInsufficientFunds
	}

	now := time.Now().UTC()
	debit := domain.Transaction{
		AccountID:           fromAccount.ID,
		AccountNumber:       fromAccount.AccountNumber,
		Amount:              amount.Neg(),
		Type:                domain.Debit,
		Status:              domain.StatusSuccess,
		TargetAccountNumber: toAccount.AccountNumber,
		Description:         "Recurring Transfer to " + toAccount.AccountNumber,
		Timestamp:           now,
	}
	credit := domain.Transaction{
		AccountID:           toAccount.ID,
		AccountNumber:       toAccount.AccountNumber,
		Amount:              amount,
		Type:                domain.Credit,
		Status:              domain.StatusSuccess,
		TargetAccountNumber: fromAccount.AccountNumber,
		Description:         "Recurring Received from " + fromAccount.OwnerUsername,
		Timestamp:           now,
	}
	balanceChanges := map[string]decimal.Decimal{
		fromAccount.AccountNumber: amount.Neg(),
		toAccount.AccountNumber:   amount,
	}

	if _, _, err := s.txnRepo.SaveEntries(ctx, []domain.Transaction{debit, credit}, balanceChanges); err != nil {
		return fmt.Errorf("failed to execute recurring transfer: %w", err)
	}
	return nil
}

// ApproveTransaction releases a held transfer: the target is credited, the
// matching credit entry is created and the original entry becomes SUCCESS.
func (s *transferService) ApproveTransaction(ctx context.Context, transactionID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: transaction not found", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to find transaction: %w", err)
	}

	if txn.Status != domain.StatusPending {
		return fmt.Errorf("%w: transaction is not pending", apperrors.ErrInvalidState)
	}

	toAccount, err := s.accountRepo.FindAccountByNumber(ctx, txn.TargetAccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: target account not found", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to find target account: %w", err)
	}
	if !toAccount.Active {
		return fmt.Errorf("%w: target account is frozen/inactive", apperrors.ErrInvalidState)
	}

	fromAccount, err := s.accountRepo.FindAccountByNumber(ctx, txn.AccountNumber)
	if err != nil {
		return fmt.Errorf("failed to find source account: %w", err)
	}

	// The source was already debited at hold time; only the credit side moves now.
	amount := txn.Amount.Abs()

	updated := *txn
	updated.Status = domain.StatusSuccess
	updated.Description = strings.Replace(txn.Description, domain.PendingApprovalMarker, "", 1)

	credit := &domain.Transaction{
		AccountID:           toAccount.ID,
		AccountNumber:       toAccount.AccountNumber,
		Amount:              amount,
		Type:                domain.Credit,
		Status:              domain.StatusSuccess,
		TargetAccountNumber: fromAccount.AccountNumber,
		Description:         "Received from " + fromAccount.OwnerUsername,
		Timestamp:           time.Now().UTC(),
	}
	balanceChanges := map[string]decimal.Decimal{
		toAccount.AccountNumber: amount,
	}

	if _, err := s.txnRepo.ResolveEntry(ctx, updated, credit, balanceChanges); err != nil {
		logger.Error("Failed to approve transaction", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to approve transaction: %w", err)
	}

	logger.Info("Transaction approved", slog.Int64("transaction_id", transactionID),
		slog.String("target_account", toAccount.AccountNumber), slog.String("amount", amount.String()))
	return nil
}

// RejectTransaction refunds a held transfer to the source account and marks the
// entry REJECTED. No credit entry is created.
func (s *transferService) RejectTransaction(ctx context.Context, transactionID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: transaction not found", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to find transaction: %w", err)
	}

	if txn.Status != domain.StatusPending {
		return fmt.Errorf("%w: transaction is not pending", apperrors.ErrInvalidState)
	}

	amount := txn.Amount.Abs()

	updated := *txn
	updated.Status = domain.StatusRejected

	balanceChanges := map[string]decimal.Decimal{
		txn.AccountNumber: amount,
	}

	if _, err := s.txnRepo.ResolveEntry(ctx, updated, nil, balanceChanges); err != nil {
		logger.Error("Failed to reject transaction", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to reject transaction: %w", err)
	}

	logger.Info("Transaction rejected and refunded", slog.Int64("transaction_id", transactionID),
		slog.String("source_account", txn.AccountNumber), slog.String("amount", amount.String()))
	return nil
}

// GetPendingTransactions lists held transfers awaiting banker review.
func (s *transferService) GetPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindPendingTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}
	return txns, nil
}

// GetTransactionHistory lists the ledger entries of an account the requester owns.
func (s *transferService) GetTransactionHistory(ctx context.Context, accountNumber, username string) ([]domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if account.OwnerUsername != username {
		return nil, fmt.Errorf("%w: unauthorized access to account history", apperrors.ErrForbidden)
	}

	return s.txnRepo.FindTransactionsByAccountID(ctx, account.ID)
}

// GetTransactionByID fetches one ledger entry.
func (s *transferService) GetTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, id)
}
