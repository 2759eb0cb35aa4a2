package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obsbank/obs_backend/internal/apperrors"
	"github.com/obsbank/obs_backend/internal/core/domain"
	portsrepo "github.com/obsbank/obs_backend/internal/core/ports/repositories"
	"github.com/obsbank/obs_backend/internal/models"
	"github.com/obsbank/obs_backend/internal/utils/mapping"
)

type PgxRecurringPaymentRepository struct {
	BaseRepository
}

// newPgxRecurringPaymentRepository creates a new repository for standing orders.
func newPgxRecurringPaymentRepository(pool *pgxpool.Pool) *PgxRecurringPaymentRepository {
	return &PgxRecurringPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RecurringPaymentRepositoryFacade = (*PgxRecurringPaymentRepository)(nil)

const recurringSelectColumns = `
	p.id, p.account_id, p.amount, p.target_account_number, p.frequency,
	p.start_date, p.end_date, p.next_payment_date, p.status, p.created_at, a.account_number
`

func scanRecurringPayment(row pgx.Row) (*models.RecurringPayment, error) {
	var m models.RecurringPayment
	err := row.Scan(
		&m.ID,
		&m.AccountID,
		&m.Amount,
		&m.TargetAccountNumber,
		&m.Frequency,
		&m.StartDate,
		&m.EndDate,
		&m.NextPaymentDate,
		&m.Status,
		&m.CreatedAt,
		&m.AccountNumber,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveRecurringPayment inserts a new schedule and returns it with the id assigned.
func (r *PgxRecurringPaymentRepository) SaveRecurringPayment(ctx context.Context, payment domain.RecurringPayment) (*domain.RecurringPayment, error) {
	m := mapping.ToModelRecurringPayment(payment)

	query := `
		INSERT INTO recurring_payments (account_id, amount, target_account_number, frequency, start_date, end_date, next_payment_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.AccountID,
		m.Amount,
		m.TargetAccountNumber,
		m.Frequency,
		m.StartDate,
		m.EndDate,
		m.NextPaymentDate,
		m.Status,
		m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save recurring payment: %w", err)
	}

	saved := mapping.ToDomainRecurringPayment(m)
	return &saved, nil
}

// FindRecurringPaymentByID retrieves one schedule by id.
func (r *PgxRecurringPaymentRepository) FindRecurringPaymentByID(ctx context.Context, id int64) (*domain.RecurringPayment, error) {
	query := `
		SELECT ` + recurringSelectColumns + `
		FROM recurring_payments p
		JOIN accounts a ON a.id = p.account_id
		WHERE p.id = $1;
	`
	m, err := scanRecurringPayment(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurring payment %d: %w", id, err)
	}

	payment := mapping.ToDomainRecurringPayment(*m)
	return &payment, nil
}

// FindRecurringPaymentsByAccountID lists the schedules drawing from an account.
func (r *PgxRecurringPaymentRepository) FindRecurringPaymentsByAccountID(ctx context.Context, accountID int64) ([]domain.RecurringPayment, error) {
	query := `
		SELECT ` + recurringSelectColumns + `
		FROM recurring_payments p
		JOIN accounts a ON a.id = p.account_id
		WHERE p.account_id = $1
		ORDER BY p.created_at;
	`
	return r.queryRecurringPayments(ctx, query, accountID)
}

// FindDuePayments returns schedules with the given status due on or before the
// given date, oldest due date first.
func (r *PgxRecurringPaymentRepository) FindDuePayments(ctx context.Context, status domain.ScheduleStatus, dueOnOrBefore time.Time) ([]domain.RecurringPayment, error) {
	query := `
		SELECT ` + recurringSelectColumns + `
		FROM recurring_payments p
		JOIN accounts a ON a.id = p.account_id
		WHERE p.status = $1 AND p.next_payment_date <= $2
		ORDER BY p.next_payment_date, p.id;
	`
	return r.queryRecurringPayments(ctx, query, string(status), dueOnOrBefore)
}

// UpdateRecurringPayment writes the mutable schedule fields.
func (r *PgxRecurringPaymentRepository) UpdateRecurringPayment(ctx context.Context, payment domain.RecurringPayment) error {
	query := `
		UPDATE recurring_payments
		SET next_payment_date = $2, status = $3
		WHERE id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, payment.ID, payment.NextPaymentDate, string(payment.Status))
	if err != nil {
		return fmt.Errorf("failed to update recurring payment %d: %w", payment.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRecurringPaymentRepository) queryRecurringPayments(ctx context.Context, query string, args ...any) ([]domain.RecurringPayment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring payments: %w", err)
	}
	defer rows.Close()

	var payments []models.RecurringPayment
	for rows.Next() {
		m, err := scanRecurringPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring payment row: %w", err)
		}
		payments = append(payments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recurring payment rows: %w", err)
	}

	return mapping.ToDomainRecurringPaymentSlice(payments), nil
}
