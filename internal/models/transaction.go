package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the DB shape of a ledger entry. Amount is signed: negative for
// debits, positive for credits. AccountNumber comes from a join on read.
type Transaction struct {
	ID                  int64           `db:"id"`
	AccountID           int64           `db:"account_id"`
	AccountNumber       string          `db:"-"`
	Amount              decimal.Decimal `db:"amount"`
	TransactionType     string          `db:"transaction_type"`
	Status              string          `db:"status"`
	TargetAccountNumber string          `db:"target_account_number"`
	Description         string          `db:"description"`
	Timestamp           time.Time       `db:"created_at"`
}
