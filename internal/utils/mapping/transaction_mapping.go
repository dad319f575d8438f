package mapping

import (
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:         d.TransactionID,
		Type:                  string(d.Type),
		FromAccountID:         d.FromAccountID,
		ToAccountID:           d.ToAccountID,
		Amount:                d.Amount,
		CurrencyCode:          d.CurrencyCode,
		Commission:            d.Commission,
		ExchangeRate:          d.ExchangeRate,
		ConvertedAmount:       d.ConvertedAmount,
		ConvertedCurrencyCode: d.ConvertedCurrencyCode,
		ClientID:              d.ClientID,
		VehicleID:             d.VehicleID,
		CategoryID:            d.CategoryID,
		CounterpartyID:        d.CounterpartyID,
		Description:           d.Description,
		ExecutorUserID:        d.ExecutorUserID,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:         m.TransactionID,
		Type:                  domain.TransactionType(m.Type),
		FromAccountID:         m.FromAccountID,
		ToAccountID:           m.ToAccountID,
		Amount:                m.Amount,
		CurrencyCode:          m.CurrencyCode,
		Commission:            m.Commission,
		ExchangeRate:          m.ExchangeRate,
		ConvertedAmount:       m.ConvertedAmount,
		ConvertedCurrencyCode: m.ConvertedCurrencyCode,
		ClientID:              m.ClientID,
		VehicleID:             m.VehicleID,
		CategoryID:            m.CategoryID,
		CounterpartyID:        m.CounterpartyID,
		Description:           m.Description,
		ExecutorUserID:        m.ExecutorUserID,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
