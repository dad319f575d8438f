package services

import (
	"context"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction by id.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, paginated transaction list.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines the mutating operations of the ledger engine.
// Every call runs as one atomic unit of work: balance mutations, vehicle-cost
// gateway calls and the transaction row change commit together or not at all.
type TransactionWriterSvc interface {
	// CreateTransaction validates the request for its type, applies the
	// forward balance effect and persists the record.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, executorUserID string) (*domain.Transaction, error)

	// UpdateTransaction applies field updates; when an effect-bearing field
	// changes it reverts the old recorded effect and reapplies the new one.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, executorUserID string) (*domain.Transaction, error)

	// DeleteTransaction reverts the transaction's effect and removes it.
	DeleteTransaction(ctx context.Context, transactionID string, executorUserID string) error

	// DeleteTransactionsByVehicle reverts and removes every transaction tied
	// to the vehicle, applying the aggregated revert adjustments once.
	DeleteTransactionsByVehicle(ctx context.Context, vehicleID string, executorUserID string) error
}

// TransactionSvcFacade combines all transaction service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
