package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillPaymentStatus is the state of a bill payment. Only immediate settlement is
// supported, so PAID is the only status the processor ever writes.
type BillPaymentStatus string

const BillPaid BillPaymentStatus = "PAID"

// BillPayment records a debit-only payment to an external biller. It is created
// atomically with its matching ledger entry and is immutable afterward.
type BillPayment struct {
	ID         int64             `json:"id"`
	BillerName string            `json:"billerName"`
	Amount     decimal.Decimal   `json:"amount"`
	PaidAt     time.Time         `json:"paidAt"`
	Status     BillPaymentStatus `json:"status"`
	UserID     int64             `json:"userID"`
}
