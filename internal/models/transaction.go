package models

import "github.com/shopspring/decimal"

// Transaction mirrors a row of the transactions table.
// All money columns use NUMERIC and must round-trip through decimal.Decimal.
type Transaction struct {
	TransactionID         string          `json:"transactionID"` // Primary Key (UUID)
	Type                  string          `json:"type"`
	FromAccountID         *string         `json:"fromAccountID"` // Nullable
	ToAccountID           *string         `json:"toAccountID"`   // Nullable
	Amount                decimal.Decimal `json:"amount"`
	CurrencyCode          string          `json:"currencyCode"`
	Commission            decimal.Decimal `json:"commission"`
	ExchangeRate          decimal.Decimal `json:"exchangeRate"`
	ConvertedAmount       decimal.Decimal `json:"convertedAmount"`
	ConvertedCurrencyCode string          `json:"convertedCurrencyCode"`
	ClientID              *string         `json:"clientID"`
	VehicleID             *string         `json:"vehicleID"`
	CategoryID            *string         `json:"categoryID"`
	CounterpartyID        *string         `json:"counterpartyID"`
	Description           string          `json:"description"`
	ExecutorUserID        string          `json:"executorUserID"`
	AuditFields
}
