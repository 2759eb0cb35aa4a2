package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType for persistence.
type AccountType string

const (
	Savings AccountType = "SAVINGS"
	Current AccountType = "CURRENT"
)

// Account is the DB shape of a customer account. OwnerUsername is not a column;
// it is populated from a join against users on read.
type Account struct {
	ID              int64           `db:"id"`
	AccountNumber   string          `db:"account_number"`
	Balance         decimal.Decimal `db:"balance"`
	AccountType     AccountType     `db:"account_type"`
	IsActive        bool            `db:"is_active"`
	UserID          int64           `db:"user_id"`
	OwnerUsername   string          `db:"-"`
	BusinessName    string          `db:"business_name"`
	BusinessAddress string          `db:"business_address"`
	CreatedAt       time.Time       `db:"created_at"`
}
