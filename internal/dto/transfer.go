package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obsbank/obs_backend/internal/core/domain"
)

// TransferOutcome is the synchronous result of a transfer request.
type TransferOutcome string

const (
	OutcomeSuccess TransferOutcome = "SUCCESS"
	OutcomePending TransferOutcome = "PENDING"
)

// TransferRequest asks to move money between two accounts.
type TransferRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber" binding:"required,account_number"`
	ToAccountNumber   string          `json:"toAccountNumber" binding:"required,account_number"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
}

// TransferResponse reports the outcome of a transfer.
type TransferResponse struct {
	Status  TransferOutcome `json:"status"`
	Message string          `json:"message"`
}

// TransactionResponse is the API shape of a ledger entry.
type TransactionResponse struct {
	ID                  int64           `json:"id"`
	TransactionID       string          `json:"transactionId"`
	AccountNumber       string          `json:"accountNumber"`
	Amount              decimal.Decimal `json:"amount"`
	Type                string          `json:"type"`
	Status              string          `json:"status"`
	TargetAccountNumber string          `json:"targetAccountNumber,omitempty"`
	Description         string          `json:"description"`
	Timestamp           time.Time       `json:"timestamp"`
}

// ToTransactionResponse converts a domain ledger entry to its API shape.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                  t.ID,
		TransactionID:       t.DisplayID(),
		AccountNumber:       t.AccountNumber,
		Amount:              t.Amount,
		Type:                string(t.Type),
		Status:              string(t.Status),
		TargetAccountNumber: t.TargetAccountNumber,
		Description:         t.Description,
		Timestamp:           t.Timestamp,
	}
}

// ToTransactionResponses converts a slice of domain ledger entries.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		out[i] = ToTransactionResponse(t)
	}
	return out
}
