package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/obsbank/obs_backend/internal/apperrors"
	"github.com/obsbank/obs_backend/internal/core/domain"
	portsrepo "github.com/obsbank/obs_backend/internal/core/ports/repositories"
	"github.com/obsbank/obs_backend/internal/models"
	"github.com/obsbank/obs_backend/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionSelectColumns = `
	t.id, t.account_id, t.amount, t.transaction_type, t.status,
	t.target_account_number, t.description, t.created_at, a.account_number
`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.ID,
		&m.AccountID,
		&m.Amount,
		&m.TransactionType,
		&m.Status,
		&m.TargetAccountNumber,
		&m.Description,
		&m.Timestamp,
		&m.AccountNumber,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// lockAndApplyBalanceChanges locks the affected account rows FOR UPDATE in a
// deterministic order, verifies that no resulting balance goes negative and
// writes the new balances. Lock ordering by account number prevents deadlocks
// between concurrent units touching the same pair of accounts. The returned map
// holds the balance of each touched account as written under the lock.
func lockAndApplyBalanceChanges(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	accountNumbers := make([]string, 0, len(balanceChanges))
	for number := range balanceChanges {
		accountNumbers = append(accountNumbers, number)
	}
	sort.Strings(accountNumbers)

	newBalances := make(map[string]decimal.Decimal, len(balanceChanges))
	for _, number := range accountNumbers {
		var balance decimal.Decimal
		err := tx.QueryRow(ctx,
			`SELECT balance FROM accounts WHERE account_number = $1 FOR UPDATE;`,
			number,
		).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, number)
			}
			return nil, fmt.Errorf("failed to lock account %s: %w", number, err)
		}

		newBalance := balance.Add(balanceChanges[number])
		if newBalance.IsNegative() {
			return nil, fmt.Errorf("%w: account %s balance would go negative", apperrors.ErrInsufficientFunds, number)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE accounts SET balance = $2 WHERE account_number = $1;`,
			number, newBalance,
		); err != nil {
			return nil, fmt.Errorf("failed to update balance of account %s: %w", number, err)
		}
		newBalances[number] = newBalance
	}
	return newBalances, nil
}

func insertTransaction(ctx context.Context, tx pgx.Tx, m *models.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, amount, transaction_type, status, target_account_number, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	err := tx.QueryRow(ctx, query,
		m.AccountID,
		m.Amount,
		m.TransactionType,
		m.Status,
		m.TargetAccountNumber,
		m.Description,
		m.Timestamp,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

// SaveEntries appends ledger entries and applies the balance deltas as one
// atomic unit. The sufficiency check runs again under the row locks, so a
// racing unit that drained the account in the meantime fails here instead of
// overdrawing it. The returned balances are the ones written under the lock,
// not a recomputation from a stale read.
func (r *PgxTransactionRepository) SaveEntries(ctx context.Context, entries []domain.Transaction, balanceChanges map[string]decimal.Decimal) ([]domain.Transaction, map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	newBalances, err := lockAndApplyBalanceChanges(ctx, tx, balanceChanges)
	if err != nil {
		return nil, nil, err
	}

	saved := make([]domain.Transaction, 0, len(entries))
	for _, entry := range entries {
		m := mapping.ToModelTransaction(entry)
		if err := insertTransaction(ctx, tx, &m); err != nil {
			return nil, nil, err
		}
		saved = append(saved, mapping.ToDomainTransaction(m))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return saved, newBalances, nil
}

// ResolveEntry finalises a pending entry and applies the balance deltas, plus
// the counterparty credit when given, in one atomic unit. The status guard in
// the UPDATE makes double resolution impossible: the second banker to act on
// the same entry matches zero rows and gets ErrInvalidState.
func (r *PgxTransactionRepository) ResolveEntry(ctx context.Context, updated domain.Transaction, credit *domain.Transaction, balanceChanges map[string]decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockAndApplyBalanceChanges(ctx, tx, balanceChanges); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE transactions SET status = $2, description = $3 WHERE id = $1 AND status = 'PENDING';`,
		updated.ID, string(updated.Status), updated.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ledger entry %d: %w", updated.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: ledger entry %d is not pending", apperrors.ErrInvalidState, updated.ID)
	}

	if credit != nil {
		m := mapping.ToModelTransaction(*credit)
		if err := insertTransaction(ctx, tx, &m); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &updated, nil
}

// FindTransactionByID retrieves one ledger entry by its numeric id.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionSelectColumns + `
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", id, err)
	}

	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// FindTransactionsByAccountID lists the ledger entries of an account, newest first.
func (r *PgxTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionSelectColumns + `
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.account_id = $1
		ORDER BY t.created_at DESC, t.id DESC;
	`
	return r.queryTransactions(ctx, query, accountID)
}

// FindPendingTransactions lists all held entries awaiting banker review, oldest first.
func (r *PgxTransactionRepository) FindPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionSelectColumns + `
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.status = 'PENDING'
		ORDER BY t.created_at, t.id;
	`
	return r.queryTransactions(ctx, query)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(txns), nil
}
