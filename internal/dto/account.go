package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obsbank/obs_backend/internal/core/domain"
)

// CreateAccountRequest opens a new account for the logged-in customer.
// BusinessName and BusinessAddress are required when AccountType is CURRENT.
type CreateAccountRequest struct {
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=SAVINGS CURRENT"`
	PANCardNumber   string             `json:"panCardNumber" binding:"required"`
	BusinessName    string             `json:"businessName"`
	BusinessAddress string             `json:"businessAddress"`
}

// DepositRequest is a banker cash deposit into a customer account.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// AccountResponse is the API shape of an account.
type AccountResponse struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	AccountType   string          `json:"accountType"`
	Active        bool            `json:"active"`
	OwnerUsername string          `json:"ownerUsername"`
	BusinessName  string          `json:"businessName,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain account to its API shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
		AccountType:   string(a.AccountType),
		Active:        a.Active,
		OwnerUsername: a.OwnerUsername,
		BusinessName:  a.BusinessName,
		CreatedAt:     a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(as []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(as))
	for i := range as {
		out[i] = ToAccountResponse(&as[i])
	}
	return out
}
