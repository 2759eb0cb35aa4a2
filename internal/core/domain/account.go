package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType distinguishes personal savings accounts from business current accounts.
type AccountType string

const (
	Savings AccountType = "SAVINGS"
	Current AccountType = "CURRENT"
)

// Account represents a customer bank account. The balance is only ever mutated by
// the transfer engine, the approval workflow, the bill payment processor or a
// banker deposit, always together with the matching ledger entries.
type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"` // 16 digits, "1000" issuer prefix
	Balance       decimal.Decimal `json:"balance"`
	AccountType   AccountType     `json:"accountType"`
	Active        bool            `json:"active"`
	UserID        int64           `json:"userID"`
	OwnerUsername string          `json:"ownerUsername"` // denormalised from the owning user

	// Required only for CURRENT accounts.
	BusinessName    string `json:"businessName,omitempty"`
	BusinessAddress string `json:"businessAddress,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
