package mapping

import (
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Name:        d.Name,
		BranchID:    d.BranchID,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Name:        m.Name,
		BranchID:    m.BranchID,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBalance converts a model AccountBalance to a domain Balance
func ToDomainBalance(m models.AccountBalance) domain.Balance {
	return domain.Balance{
		AccountID:    m.AccountID,
		CurrencyCode: m.CurrencyCode,
		Amount:       m.Amount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBranch converts a model Branch to a domain Branch
func ToDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:    m.BranchID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
