package mapping

import (
	"github.com/obsbank/obs_backend/internal/core/domain"
	"github.com/obsbank/obs_backend/internal/models"
)

// ToModelRecurringPayment converts a domain schedule to its DB shape.
func ToModelRecurringPayment(d domain.RecurringPayment) models.RecurringPayment {
	return models.RecurringPayment{
		ID:                  d.ID,
		AccountID:           d.AccountID,
		AccountNumber:       d.AccountNumber,
		Amount:              d.Amount,
		TargetAccountNumber: d.TargetAccountNumber,
		Frequency:           string(d.Frequency),
		StartDate:           d.StartDate,
		EndDate:             d.EndDate,
		NextPaymentDate:     d.NextPaymentDate,
		Status:              string(d.Status),
		CreatedAt:           d.CreatedAt,
	}
}

// ToDomainRecurringPayment converts a DB schedule to the domain shape.
func ToDomainRecurringPayment(m models.RecurringPayment) domain.RecurringPayment {
	return domain.RecurringPayment{
		ID:                  m.ID,
		AccountID:           m.AccountID,
		AccountNumber:       m.AccountNumber,
		Amount:              m.Amount,
		TargetAccountNumber: m.TargetAccountNumber,
		Frequency:           domain.Frequency(m.Frequency),
		StartDate:           m.StartDate,
		EndDate:             m.EndDate,
		NextPaymentDate:     m.NextPaymentDate,
		Status:              domain.ScheduleStatus(m.Status),
		CreatedAt:           m.CreatedAt,
	}
}

// ToDomainRecurringPaymentSlice converts a slice of DB schedules.
func ToDomainRecurringPaymentSlice(ms []models.RecurringPayment) []domain.RecurringPayment {
	ds := make([]domain.RecurringPayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRecurringPayment(m)
	}
	return ds
}
