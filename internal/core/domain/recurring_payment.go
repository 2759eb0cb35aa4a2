package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often a recurring payment fires.
type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
)

// ScheduleStatus is the lifecycle state of a recurring payment schedule.
type ScheduleStatus string

const (
	ScheduleActive    ScheduleStatus = "ACTIVE"
	ScheduleStopped   ScheduleStatus = "STOPPED"
	ScheduleCompleted ScheduleStatus = "COMPLETED"
)

// RecurringPayment is a standing order from one account to a target account
// number. The scheduler is the only writer of NextPaymentDate and the only
// component that can complete a schedule; the owning customer can stop it.
type RecurringPayment struct {
	ID                  int64           `json:"id"`
	AccountID           int64           `json:"accountID"`
	AccountNumber       string          `json:"accountNumber"`
	Amount              decimal.Decimal `json:"amount"`
	TargetAccountNumber string          `json:"targetAccountNumber"`
	Frequency           Frequency       `json:"frequency"`
	StartDate           time.Time       `json:"startDate"`
	EndDate             *time.Time      `json:"endDate,omitempty"`
	NextPaymentDate     time.Time       `json:"nextPaymentDate"`
	Status              ScheduleStatus  `json:"status"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// Advance returns the next due date after one firing. An unrecognised frequency
// leaves the date unchanged; that is a defined no-op, not an error.
func (p RecurringPayment) Advance() time.Time {
	switch p.Frequency {
	case Daily:
		return p.NextPaymentDate.AddDate(0, 0, 1)
	case Weekly:
		return p.NextPaymentDate.AddDate(0, 0, 7)
	case Monthly:
		return p.NextPaymentDate.AddDate(0, 1, 0)
	default:
		return p.NextPaymentDate
	}
}
