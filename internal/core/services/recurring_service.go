package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/obsbank/obs_backend/internal/apperrors"
	"github.com/obsbank/obs_backend/internal/core/domain"
	portsrepo "github.com/obsbank/obs_backend/internal/core/ports/repositories"
	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/dto"
	"github.com/obsbank/obs_backend/internal/middleware"
)

const dateLayout = "2006-01-02"

// recurringService manages standing orders and runs the periodic tick that
// executes the due ones.
type recurringService struct {
	recurringRepo portsrepo.RecurringPaymentRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	transferSvc   portssvc.TransferSvcFacade
}

// NewRecurringService creates a new RecurringService.
func NewRecurringService(recurringRepo portsrepo.RecurringPaymentRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, transferSvc portssvc.TransferSvcFacade) portssvc.RecurringSvcFacade {
	return &recurringService{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		transferSvc:   transferSvc,
	}
}

var _ portssvc.RecurringSvcFacade = (*recurringService)(nil)

// CreateRecurringPayment registers a new standing order. The first execution is
// due on the start date.
func (s *recurringService) CreateRecurringPayment(ctx context.Context, req dto.CreateRecurringPaymentRequest, username string) (*domain.RecurringPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	source, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: source account not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find source account: %w", err)
	}
	if source.OwnerUsername != username {
		return nil, fmt.Errorf("%w: unauthorized access to account", apperrors.ErrForbidden)
	}

	if req.TargetAccountNumber == req.AccountNumber {
		return nil, fmt.Errorf("%w: target account must differ from source", apperrors.ErrValidation)
	}
	if _, err := s.accountRepo.FindAccountByNumber(ctx, req.TargetAccountNumber); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: target account not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find target account: %w", err)
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", apperrors.ErrValidation)
	}

	payment := domain.RecurringPayment{
		AccountID:           source.ID,
		AccountNumber:       source.AccountNumber,
		TargetAccountNumber: req.TargetAccountNumber,
		Amount:              req.Amount,
		Frequency:           domain.Frequency(req.Frequency),
		StartDate:           startDate,
		NextPaymentDate:     startDate,
		Status:              domain.ScheduleActive,
		CreatedAt:           time.Now().UTC(),
	}
	if req.EndDate != "" {
		endDate, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date", apperrors.ErrValidation)
		}
		if endDate.Before(startDate) {
			return nil, fmt.Errorf("%w: end date must not be before start date", apperrors.ErrValidation)
		}
		payment.EndDate = &endDate
	}

	saved, err := s.recurringRepo.SaveRecurringPayment(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to save recurring payment: %w", err)
	}

	logger.Info("Recurring payment created",
		slog.Int64("recurring_payment_id", saved.ID),
		slog.String("from", saved.AccountNumber),
		slog.String("frequency", string(saved.Frequency)))
	return saved, nil
}

// GetRecurringPaymentsByAccount lists the schedules drawing from an account
// owned by the user.
func (s *recurringService) GetRecurringPaymentsByAccount(ctx context.Context, accountNumber, username string) ([]domain.RecurringPayment, error) {
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
	return s.recurringRepo.FindRecurringPaymentsByAccountID(ctx, account.ID)
}

// StopRecurringPayment stops an active schedule owned by the user.
func (s *recurringService) StopRecurringPayment(ctx context.Context, id int64, username string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.recurringRepo.FindRecurringPaymentByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: recurring payment not found", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to find recurring payment: %w", err)
	}

	source, err := s.accountRepo.FindAccountByNumber(ctx, payment.AccountNumber)
	if err != nil {
		return fmt.Errorf("failed to find source account: %w", err)
	}
	if source.OwnerUsername != username {
		return fmt.Errorf("%w: unauthorized access to recurring payment", apperrors.ErrForbidden)
	}

	if payment.Status != domain.ScheduleActive {
		return fmt.Errorf("%w: recurring payment is not active", apperrors.ErrInvalidState)
	}

	payment.Status = domain.ScheduleStopped
	if err := s.recurringRepo.UpdateRecurringPayment(ctx, *payment); err != nil {
		return fmt.Errorf("failed to stop recurring payment: %w", err)
	}

	logger.Info("Recurring payment stopped", slog.Int64("recurring_payment_id", id))
	return nil
}

// ProcessDuePayments executes every active schedule whose next payment date is
// on or before today. A failing schedule is logged and skipped so the rest of
// the batch still runs; its schedule is left untouched for the next tick. A
// successful execution advances the payment date by the schedule frequency, and
// a schedule whose new date passes its end date completes.
func (s *recurringService) ProcessDuePayments(ctx context.Context, today time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	due, err := s.recurringRepo.FindDuePayments(ctx, domain.ScheduleActive, today)
	if err != nil {
		return fmt.Errorf("failed to load due recurring payments: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	logger.Info("Processing due recurring payments", slog.Int("count", len(due)))

	for _, payment := range due {
		if err := s.executeOne(ctx, payment); err != nil {
			logger.Error("Recurring payment execution failed",
				slog.Int64("recurring_payment_id", payment.ID),
				slog.String("error", err.Error()))
			continue
		}
	}
	return nil
}

func (s *recurringService) executeOne(ctx context.Context, payment domain.RecurringPayment) error {
	source, err := s.accountRepo.FindAccountByNumber(ctx, payment.AccountNumber)
	if err != nil {
		return fmt.Errorf("failed to find source account: %w", err)
	}

	if err := s.transferSvc.ExecuteRecurringTransfer(ctx, *source, payment.TargetAccountNumber, payment.Amount); err != nil {
		return fmt.Errorf("transfer failed: %w", err)
	}

	payment.NextPaymentDate = payment.Advance()
	if payment.EndDate != nil && payment.NextPaymentDate.After(*payment.EndDate) {
		payment.Status = domain.ScheduleCompleted
	}
	if err := s.recurringRepo.UpdateRecurringPayment(ctx, payment); err != nil {
		return fmt.Errorf("failed to advance schedule: %w", err)
	}
	return nil
}
