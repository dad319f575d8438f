package dto

import (
	"time"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload for creating a ledger transaction.
// Which references are required depends on Type.
type CreateTransactionRequest struct {
	Type                  domain.TransactionType `json:"type" binding:"required,txn_type"`
	FromAccountID         *string                `json:"fromAccountID"`
	ToAccountID           *string                `json:"toAccountID"`
	Amount                decimal.Decimal        `json:"amount" binding:"required,positive_decimal"`
	CurrencyCode          string                 `json:"currencyCode" binding:"required,len=3"`
	Commission            *decimal.Decimal       `json:"commission"`
	ExchangeRate          *decimal.Decimal       `json:"exchangeRate"`
	ConvertedAmount       *decimal.Decimal       `json:"convertedAmount"`
	ConvertedCurrencyCode string                 `json:"convertedCurrencyCode" binding:"omitempty,len=3"`
	ClientID              *string                `json:"clientID"`
	VehicleID             *string                `json:"vehicleID"`
	CategoryID            *string                `json:"categoryID"`
	CounterpartyID        *string                `json:"counterpartyID"`
	Description           string                 `json:"description"`
}

// UpdateTransactionRequest carries the mutable fields of a transaction. Nil
// means "leave unchanged"; the type itself is immutable. Changing any of
// Amount, Commission, ExchangeRate or ConvertedAmount makes the engine revert
// the old recorded effect and reapply the new one.
type UpdateTransactionRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	Commission      *decimal.Decimal `json:"commission"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount"`
	CategoryID      *string          `json:"categoryID"`
	Description     *string          `json:"description"`
	CounterpartyID  *string          `json:"counterpartyID"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	TransactionID         string                 `json:"transactionID"`
	Type                  domain.TransactionType `json:"type"`
	FromAccountID         *string                `json:"fromAccountID,omitempty"`
	ToAccountID           *string                `json:"toAccountID,omitempty"`
	Amount                decimal.Decimal        `json:"amount"`
	CurrencyCode          string                 `json:"currencyCode"`
	Commission            decimal.Decimal        `json:"commission"`
	ExchangeRate          decimal.Decimal        `json:"exchangeRate"`
	ConvertedAmount       decimal.Decimal        `json:"convertedAmount"`
	ConvertedCurrencyCode string                 `json:"convertedCurrencyCode,omitempty"`
	ClientID              *string                `json:"clientID,omitempty"`
	VehicleID             *string                `json:"vehicleID,omitempty"`
	CategoryID            *string                `json:"categoryID,omitempty"`
	CounterpartyID        *string                `json:"counterpartyID,omitempty"`
	Description           string                 `json:"description"`
	ExecutorUserID        string                 `json:"executorUserID"`
	CreatedAt             time.Time              `json:"createdAt"`
}

// ListTransactionsParams are the query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID *string                 `form:"accountID"`
	VehicleID *string                 `form:"vehicleID"`
	ClientID  *string                 `form:"clientID"`
	Type      *domain.TransactionType `form:"type"`
	Limit     int                     `form:"limit"`
	NextToken *string                 `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its API shape.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:         txn.TransactionID,
		Type:                  txn.Type,
		FromAccountID:         txn.FromAccountID,
		ToAccountID:           txn.ToAccountID,
		Amount:                txn.Amount,
		CurrencyCode:          txn.CurrencyCode,
		Commission:            txn.Commission,
		ExchangeRate:          txn.ExchangeRate,
		ConvertedAmount:       txn.ConvertedAmount,
		ConvertedCurrencyCode: txn.ConvertedCurrencyCode,
		ClientID:              txn.ClientID,
		VehicleID:             txn.VehicleID,
		CategoryID:            txn.CategoryID,
		CounterpartyID:        txn.CounterpartyID,
		Description:           txn.Description,
		ExecutorUserID:        txn.ExecutorUserID,
		CreatedAt:             txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
