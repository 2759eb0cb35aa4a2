package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/obsbank/obs_backend/internal/core/domain"
)

// PayBillRequest pays an external biller from one of the user's accounts.
type PayBillRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required,account_number"`
	BillerName    string          `json:"billerName" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// BillPaymentResponse is the API shape of a settled bill payment.
type BillPaymentResponse struct {
	ID         int64           `json:"id"`
	BillerName string          `json:"billerName"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAt     time.Time       `json:"paidAt"`
	Status     string          `json:"status"`
}

// ToBillPaymentResponse converts a domain bill payment to its API shape.
func ToBillPaymentResponse(b *domain.BillPayment) BillPaymentResponse {
	return BillPaymentResponse{
		ID:         b.ID,
		BillerName: b.BillerName,
		Amount:     b.Amount,
		PaidAt:     b.PaidAt,
		Status:     string(b.Status),
	}
}

// ToBillPaymentResponses converts a slice of domain bill payments.
func ToBillPaymentResponses(bs []domain.BillPayment) []BillPaymentResponse {
	out := make([]BillPaymentResponse, len(bs))
	for i := range bs {
		out[i] = ToBillPaymentResponse(&bs[i])
	}
	return out
}
