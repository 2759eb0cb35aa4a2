package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger entry is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// TransactionStatus is the lifecycle state of a ledger entry. PENDING is the only
// non-terminal status; SUCCESS and REJECTED are final.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusSuccess  TransactionStatus = "SUCCESS"
	StatusRejected TransactionStatus = "REJECTED"
)

// PendingApprovalMarker is appended to a held transfer's description and stripped
// again when the transfer is approved.
const PendingApprovalMarker = " (PENDING APPROVAL)"

// Transaction is one immutable, signed ledger entry recording a balance change.
// Amount is negative for debits and positive for credits. Only Status and
// Description may change after creation, exactly once, by the approval workflow.
type Transaction struct {
	ID                  int64             `json:"id"`
	AccountID           int64             `json:"accountID"`
	AccountNumber       string            `json:"accountNumber"`
	Amount              decimal.Decimal   `json:"amount"`
	Type                TransactionType   `json:"type"`
	Status              TransactionStatus `json:"status"`
	TargetAccountNumber string            `json:"targetAccountNumber,omitempty"` // counterparty, empty for deposits and bill payments
	Description         string            `json:"description"`
	Timestamp           time.Time         `json:"timestamp"`
}

// DisplayID derives the customer-facing transaction id by zero-padding the numeric
// id to at least eight digits. Wider ids are never truncated and negative ids keep
// their sign before the padded digits.
func (t Transaction) DisplayID() string {
	return fmt.Sprintf("TXN%08d", t.ID)
}

// IsTerminal reports whether the entry can no longer change status.
func (t Transaction) IsTerminal() bool {
	return t.Status != StatusPending
}
