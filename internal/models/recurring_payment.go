package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringPayment is the DB shape of a standing order.
type RecurringPayment struct {
	ID                  int64           `db:"id"`
	AccountID           int64           `db:"account_id"`
	AccountNumber       string          `db:"-"`
	Amount              decimal.Decimal `db:"amount"`
	TargetAccountNumber string          `db:"target_account_number"`
	Frequency           string          `db:"frequency"`
	StartDate           time.Time       `db:"start_date"`
	EndDate             *time.Time      `db:"end_date"`
	NextPaymentDate     time.Time       `db:"next_payment_date"`
	Status              string          `db:"status"`
	CreatedAt           time.Time       `db:"created_at"`
}
