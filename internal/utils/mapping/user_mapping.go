package mapping

import (
	"github.com/obsbank/obs_backend/internal/core/domain"
	"github.com/obsbank/obs_backend/internal/models"
)

// ToModelUser converts a domain user to its DB shape.
func ToModelUser(d domain.User) models.User {
	roles := make([]string, len(d.Roles))
	for i, r := range d.Roles {
		roles[i] = string(r)
	}
	return models.User{
		ID:           d.ID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Email:        d.Email,
		PhoneNumber:  d.PhoneNumber,
		FullName:     d.FullName,
		IsActive:     d.Active,
		PANNumber:    d.PANNumber,
		Roles:        roles,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainUser converts a DB user to the domain shape.
func ToDomainUser(m models.User) domain.User {
	roles := make([]domain.Role, len(m.Roles))
	for i, r := range m.Roles {
		roles[i] = domain.Role(r)
	}
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Email:        m.Email,
		PhoneNumber:  m.PhoneNumber,
		FullName:     m.FullName,
		Active:       m.IsActive,
		PANNumber:    m.PANNumber,
		Roles:        roles,
		CreatedAt:    m.CreatedAt,
	}
}
