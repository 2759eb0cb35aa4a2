package mapping

import (
	"github.com/obsbank/obs_backend/internal/core/domain"
	"github.com/obsbank/obs_backend/internal/models"
)

// ToModelTransaction converts a domain ledger entry to its DB shape.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		ID:                  d.ID,
		AccountID:           d.AccountID,
		AccountNumber:       d.AccountNumber,
		Amount:              d.Amount,
		TransactionType:     string(d.Type),
		Status:              string(d.Status),
		TargetAccountNumber: d.TargetAccountNumber,
		Description:         d.Description,
		Timestamp:           d.Timestamp,
	}
}

// ToDomainTransaction converts a DB ledger entry to the domain shape.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:                  m.ID,
		AccountID:           m.AccountID,
		AccountNumber:       m.AccountNumber,
		Amount:              m.Amount,
		Type:                domain.TransactionType(m.TransactionType),
		Status:              domain.TransactionStatus(m.Status),
		TargetAccountNumber: m.TargetAccountNumber,
		Description:         m.Description,
		Timestamp:           m.Timestamp,
	}
}

// ToDomainTransactionSlice converts a slice of DB ledger entries.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
