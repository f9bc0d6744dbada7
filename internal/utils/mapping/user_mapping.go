package mapping

import (
	"github.com/zenapticlabs/expense-management-server/internal/core/domain"
	"github.com/zenapticlabs/expense-management-server/internal/models"
)

// ToModelUser converts a domain user to its persistence model.
func ToModelUser(u domain.User) models.User {
	return models.User{
		UserID:       u.UserID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Currency:     u.Currency,
		CompanyCode:  u.CompanyCode,
		IsStaff:      u.IsStaff,
		AuditFields:  ToModelAuditFields(u.AuditFields),
	}
}

// ToDomainUser converts a persistence model to the domain user.
func ToDomainUser(u models.User) domain.User {
	return domain.User{
		UserID:       u.UserID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Currency:     u.Currency,
		CompanyCode:  u.CompanyCode,
		IsStaff:      u.IsStaff,
		AuditFields:  ToDomainAuditFields(u.AuditFields),
	}
}
