package repositories

import (
	"context"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
)

// ListTransactionsFilter narrows a transaction listing.
type ListTransactionsFilter struct {
	AccountID *string
	VehicleID *string
	ClientID  *string
	Type      *domain.TransactionType
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByVehicleID retrieves every transaction tied to a vehicle.
	FindTransactionsByVehicleID(ctx context.Context, vehicleID string) ([]domain.Transaction, error)

	// ListTransactions retrieves a filtered, token-paginated list of transactions.
	ListTransactions(ctx context.Context, filter ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data. Every
// method applies the given balance adjustments and the row mutation within the
// repository's current transactional scope: all of it commits or none of it.
// An adjustment against a missing (account, currency) balance row fails with
// ErrCurrencyNotSupported; results below zero are not rejected.
type TransactionWriter interface {
	// SaveTransaction inserts the transaction and applies its forward effect.
	SaveTransaction(ctx context.Context, txn domain.Transaction, adjustments []domain.BalanceAdjustment) error

	// UpdateTransaction rewrites the transaction's mutable fields and applies
	// the combined revert-old/apply-new adjustments.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, adjustments []domain.BalanceAdjustment) error

	// DeleteTransactions removes the given transaction rows and applies the
	// (typically aggregated) revert adjustments.
	DeleteTransactions(ctx context.Context, transactionIDs []string, adjustments []domain.BalanceAdjustment) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionManager runs a function inside a single database transaction.
// The repository passed to fn is bound to that transaction; returning an error
// rolls everything back, including remote-gateway work performed between
// repository calls.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(txRepo TransactionRepositoryFacade) error) error
}

// TransactionRepositoryWithTx extends the facade with transaction scoping.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
