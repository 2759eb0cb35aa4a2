package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/obsbank/obs_backend/internal/core/domain"
	portsrepo "github.com/obsbank/obs_backend/internal/core/ports/repositories"
	"github.com/obsbank/obs_backend/internal/models"
	"github.com/obsbank/obs_backend/internal/utils/mapping"
)

type PgxBillPaymentRepository struct {
	BaseRepository
}

// newPgxBillPaymentRepository creates a new repository for bill payments.
func newPgxBillPaymentRepository(pool *pgxpool.Pool) *PgxBillPaymentRepository {
	return &PgxBillPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BillPaymentRepositoryFacade = (*PgxBillPaymentRepository)(nil)

// SaveBillPayment writes the bill record, the debit ledger entry and the
// balance delta in one database transaction. The sufficiency re-check runs
// under the account row lock, same as for transfers.
func (r *PgxBillPaymentRepository) SaveBillPayment(ctx context.Context, bill domain.BillPayment, debit domain.Transaction, balanceChanges map[string]decimal.Decimal) (*domain.BillPayment, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockAndApplyBalanceChanges(ctx, tx, balanceChanges); err != nil {
		return nil, err
	}

	debitModel := mapping.ToModelTransaction(debit)
	if err := insertTransaction(ctx, tx, &debitModel); err != nil {
		return nil, err
	}

	billModel := mapping.ToModelBillPayment(bill)
	query := `
		INSERT INTO bill_payments (biller_name, amount, paid_at, status, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, query,
		billModel.BillerName,
		billModel.Amount,
		billModel.PaidAt,
		billModel.Status,
		billModel.UserID,
	).Scan(&billModel.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bill payment: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	saved := mapping.ToDomainBillPayment(billModel)
	return &saved, nil
}

// FindBillPaymentsByUserID lists a user's bill payments, newest first.
func (r *PgxBillPaymentRepository) FindBillPaymentsByUserID(ctx context.Context, userID int64) ([]domain.BillPayment, error) {
	query := `
		SELECT id, biller_name, amount, paid_at, status, user_id
		FROM bill_payments
		WHERE user_id = $1
		ORDER BY paid_at DESC, id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill payments for user %d: %w", userID, err)
	}
	defer rows.Close()

	var bills []models.BillPayment
	for rows.Next() {
		var m models.BillPayment
		if err := rows.Scan(&m.ID, &m.BillerName, &m.Amount, &m.PaidAt, &m.Status, &m.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan bill payment row: %w", err)
		}
		bills = append(bills, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill payment rows: %w", err)
	}

	return mapping.ToDomainBillPaymentSlice(bills), nil
}
