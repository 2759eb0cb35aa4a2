package mapping

import (
	"github.com/obsbank/obs_backend/internal/core/domain"
	"github.com/obsbank/obs_backend/internal/models"
)

// ToModelAccount converts a domain account to its DB shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		ID:              d.ID,
		AccountNumber:   d.AccountNumber,
		Balance:         d.Balance,
		AccountType:     models.AccountType(d.AccountType),
		IsActive:        d.Active,
		UserID:          d.UserID,
		OwnerUsername:   d.OwnerUsername,
		BusinessName:    d.BusinessName,
		BusinessAddress: d.BusinessAddress,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainAccount converts a DB account to the domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:              m.ID,
		AccountNumber:   m.AccountNumber,
		Balance:         m.Balance,
		AccountType:     domain.AccountType(m.AccountType),
		Active:          m.IsActive,
		UserID:          m.UserID,
		OwnerUsername:   m.OwnerUsername,
		BusinessName:    m.BusinessName,
		BusinessAddress: m.BusinessAddress,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainAccountSlice converts a slice of DB accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
