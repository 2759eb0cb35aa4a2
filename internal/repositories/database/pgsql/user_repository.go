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

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userSelectColumns = `
	id, username, password_hash, email, phone_number, full_name,
	is_active, pan_card_number, roles, created_at
`

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	var pan *string
	err := row.Scan(
		&m.ID,
		&m.Username,
		&m.PasswordHash,
		&m.Email,
		&m.PhoneNumber,
		&m.FullName,
		&m.IsActive,
		&pan,
		&m.Roles,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if pan != nil {
		m.PANNumber = *pan
	}
	return &m, nil
}

// SaveUser inserts a new user and returns it with the id assigned.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	m := mapping.ToModelUser(user)

	query := `
		INSERT INTO users (username, password_hash, email, phone_number, full_name, is_active, roles, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Username,
		m.PasswordHash,
		m.Email,
		m.PhoneNumber,
		m.FullName,
		m.IsActive,
		m.Roles,
		m.CreatedAt,
	).Scan(&m.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique violation
			return nil, fmt.Errorf("%w: username %s already exists", apperrors.ErrDuplicate, m.Username)
		}
		return nil, fmt.Errorf("failed to save user %s: %w", m.Username, err)
	}

	saved := mapping.ToDomainUser(m)
	return &saved, nil
}

// FindUserByID retrieves a user by id.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE id = $1;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %d: %w", id, err)
	}

	user := mapping.ToDomainUser(*m)
	return &user, nil
}

// FindUserByUsername retrieves a user by username.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE username = $1;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", username, err)
	}

	user := mapping.ToDomainUser(*m)
	return &user, nil
}

// ExistsByPANNumber reports whether any user already carries the given PAN number.
func (r *PgxUserRepository) ExistsByPANNumber(ctx context.Context, panNumber string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE pan_card_number = $1);`,
		panNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check PAN number: %w", err)
	}
	return exists, nil
}

// UpdateUserPAN links a PAN number to a user. The unique index on
// pan_card_number backs up the service-level uniqueness check.
func (r *PgxUserRepository) UpdateUserPAN(ctx context.Context, userID int64, panNumber string) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE users SET pan_card_number = $2 WHERE id = $1;`,
		userID, panNumber,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique violation
			return fmt.Errorf("%w: PAN number already linked to another user", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update PAN for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
