package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a company money account (cash desk, bank account, card).
// An account supports a currency iff a Balance row exists for it.
type Account struct {
	AccountID   string  `json:"accountID"`
	Name        string  `json:"name"`
	BranchID    *string `json:"branchID"` // Nullable; accounts without a branch are unrestricted
	Description string  `json:"description"`
	IsActive    bool    `json:"isActive"`
	AuditFields
}

// Balance is one (account, currency) ledger entry. Rows are mutated only by
// atomic add/subtract inside the persistence layer; amounts may go negative
// (overdraft is allowed).
type Balance struct {
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
	AuditFields
}

// Branch is an organizational unit accounts can belong to. Mutating an account
// that belongs to a branch requires operate permission on that branch.
type Branch struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	AuditFields
}
