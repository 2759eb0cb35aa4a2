package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obsbank/obs_backend/internal/core/domain"
)

// CreateRecurringPaymentRequest sets up a standing order from one of the
// customer's accounts. Dates are calendar dates in YYYY-MM-DD form.
type CreateRecurringPaymentRequest struct {
	AccountNumber       string          `json:"accountNumber" binding:"required,account_number"`
	TargetAccountNumber string          `json:"targetAccountNumber" binding:"required,account_number"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	Frequency           string          `json:"frequency" binding:"required,oneof=DAILY WEEKLY MONTHLY"`
	StartDate           string          `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate             string          `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// RecurringPaymentResponse is the API shape of a standing order.
type RecurringPaymentResponse struct {
	ID                  int64           `json:"id"`
	AccountNumber       string          `json:"accountNumber"`
	TargetAccountNumber string          `json:"targetAccountNumber"`
	Amount              decimal.Decimal `json:"amount"`
	Frequency           string          `json:"frequency"`
	StartDate           string          `json:"startDate"`
	EndDate             string          `json:"endDate,omitempty"`
	NextPaymentDate     string          `json:"nextPaymentDate"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"createdAt"`
}

const dateLayout = "2006-01-02"

// ToRecurringPaymentResponse converts a domain schedule to its API shape.
func ToRecurringPaymentResponse(p *domain.RecurringPayment) RecurringPaymentResponse {
	resp := RecurringPaymentResponse{
		ID:                  p.ID,
		AccountNumber:       p.AccountNumber,
		TargetAccountNumber: p.TargetAccountNumber,
		Amount:              p.Amount,
		Frequency:           string(p.Frequency),
		StartDate:           p.StartDate.Format(dateLayout),
		NextPaymentDate:     p.NextPaymentDate.Format(dateLayout),
		Status:              string(p.Status),
		CreatedAt:           p.CreatedAt,
	}
	if p.EndDate != nil {
		resp.EndDate = p.EndDate.Format(dateLayout)
	}
	return resp
}

// ToRecurringPaymentResponses converts a slice of domain schedules.
func ToRecurringPaymentResponses(ps []domain.RecurringPayment) []RecurringPaymentResponse {
	out := make([]RecurringPaymentResponse, len(ps))
	for i := range ps {
		out[i] = ToRecurringPaymentResponse(&ps[i])
	}
	return out
}
