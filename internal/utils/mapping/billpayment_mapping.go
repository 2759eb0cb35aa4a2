package mapping

import (
	"github.com/obsbank/obs_backend/internal/core/domain"
	"github.com/obsbank/obs_backend/internal/models"
)

// ToModelBillPayment converts a domain bill payment to its DB shape.
func ToModelBillPayment(d domain.BillPayment) models.BillPayment {
	return models.BillPayment{
		ID:         d.ID,
		BillerName: d.BillerName,
		Amount:     d.Amount,
		PaidAt:     d.PaidAt,
		Status:     string(d.Status),
		UserID:     d.UserID,
	}
}

// ToDomainBillPayment converts a DB bill payment to the domain shape.
func ToDomainBillPayment(m models.BillPayment) domain.BillPayment {
	return domain.BillPayment{
		ID:         m.ID,
		BillerName: m.BillerName,
		Amount:     m.Amount,
		PaidAt:     m.PaidAt,
		Status:     domain.BillPaymentStatus(m.Status),
		UserID:     m.UserID,
	}
}

// ToDomainBillPaymentSlice converts a slice of DB bill payments.
func ToDomainBillPaymentSlice(ms []models.BillPayment) []domain.BillPayment {
	ds := make([]domain.BillPayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBillPayment(m)
	}
	return ds
}
