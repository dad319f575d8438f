package dto

import (
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating an account.
type CreateAccountRequest struct {
	Name        string   `json:"name" binding:"required"`
	BranchID    *string  `json:"branchID"`
	Description string   `json:"description"`
	Currencies  []string `json:"currencies" binding:"required,min=1,dive,len=3"`
}

// UpdateAccountRequest carries mutable account fields; nil leaves a field unchanged.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// EnableCurrencyRequest enables one more currency on an account.
type EnableCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
}

// BalanceResponse is one (currency, amount) entry of an account.
type BalanceResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID   string            `json:"accountID"`
	Name        string            `json:"name"`
	BranchID    *string           `json:"branchID,omitempty"`
	Description string            `json:"description"`
	IsActive    bool              `json:"isActive"`
	Balances    []BalanceResponse `json:"balances,omitempty"`
}

// ToAccountResponse converts a domain.Account plus its balances.
func ToAccountResponse(account *domain.Account, balances []domain.Balance) AccountResponse {
	resp := AccountResponse{
		AccountID:   account.AccountID,
		Name:        account.Name,
		BranchID:    account.BranchID,
		Description: account.Description,
		IsActive:    account.IsActive,
	}
	for _, b := range balances {
		resp.Balances = append(resp.Balances, BalanceResponse{CurrencyCode: b.CurrencyCode, Amount: b.Amount})
	}
	return resp
}
