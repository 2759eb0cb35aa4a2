package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obsbank/obs_backend/internal/apperrors"
	"github.com/obsbank/obs_backend/internal/core/domain"
	portsrepo "github.com/obsbank/obs_backend/internal/core/ports/repositories"
	"github.com/obsbank/obs_backend/internal/models"
	"github.com/obsbank/obs_backend/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountSelectColumns = `
	a.id, a.account_number, a.balance, a.account_type, a.is_active,
	a.user_id, a.business_name, a.business_address, a.created_at, u.username
`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.ID,
		&m.AccountNumber,
		&m.Balance,
		&m.AccountType,
		&m.IsActive,
		&m.UserID,
		&m.BusinessName,
		&m.BusinessAddress,
		&m.CreatedAt,
		&m.OwnerUsername,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount inserts a new account and returns it with the id assigned.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_number, balance, account_type, is_active, user_id, business_name, business_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		modelAcc.AccountNumber,
		modelAcc.Balance,
		modelAcc.AccountType,
		modelAcc.IsActive,
		modelAcc.UserID,
		modelAcc.BusinessName,
		modelAcc.BusinessAddress,
		modelAcc.CreatedAt,
	).Scan(&modelAcc.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique violation
			return nil, fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, modelAcc.AccountNumber)
		}
		return nil, fmt.Errorf("failed to save account %s: %w", modelAcc.AccountNumber, err)
	}

	saved := mapping.ToDomainAccount(modelAcc)
	return &saved, nil
}

// FindAccountByNumber retrieves an account by its account number. The owner
// username comes from a join against users.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `
		SELECT ` + accountSelectColumns + `
		FROM accounts a
		JOIN users u ON u.id = a.user_id
		WHERE a.account_number = $1;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by number %s: %w", accountNumber, err)
	}

	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// FindAccountsByUserID lists all accounts owned by the given user.
func (r *PgxAccountRepository) FindAccountsByUserID(ctx context.Context, userID int64) ([]domain.Account, error) {
	query := `
		SELECT ` + accountSelectColumns + `
		FROM accounts a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		ORDER BY a.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %d: %w", userID, err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

// SetAccountActive sets the active flag of an account.
func (r *PgxAccountRepository) SetAccountActive(ctx context.Context, accountNumber string, active bool) error {
	query := `UPDATE accounts SET is_active = $2 WHERE account_number = $1;`

	tag, err := r.Pool.Exec(ctx, query, accountNumber, active)
	if err != nil {
		return fmt.Errorf("failed to update account %s active flag: %w", accountNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
