package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillPayment is the DB shape of a settled bill payment.
type BillPayment struct {
	ID         int64           `db:"id"`
	BillerName string          `db:"biller_name"`
	Amount     decimal.Decimal `db:"amount"`
	PaidAt     time.Time       `db:"paid_at"`
	Status     string          `db:"status"`
	UserID     int64           `db:"user_id"`
}
