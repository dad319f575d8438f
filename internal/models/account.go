package models

import "github.com/shopspring/decimal"

// Account mirrors a row of the accounts table.
type Account struct {
	AccountID   string  `json:"accountID"` // Primary Key (UUID)
	Name        string  `json:"name"`
	BranchID    *string `json:"branchID"` // FK -> branches.branch_id, nullable
	Description string  `json:"description"`
	IsActive    bool    `json:"isActive"`
	AuditFields
}

// AccountBalance mirrors a row of the account_balances table. The composite
// key (account_id, currency_code) doubles as the supported-currency set.
type AccountBalance struct {
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
	AuditFields
}

// Branch mirrors a row of the branches table.
type Branch struct {
	BranchID string `json:"branchID"` // Primary Key (UUID)
	Name     string `json:"name"`
	AuditFields
}
