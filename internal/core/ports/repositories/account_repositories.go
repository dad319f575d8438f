package repositories

import (
	"context"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by id, ErrAccountNotFound otherwise.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the given accounts keyed by id. Missing ids
	// are simply absent from the result map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts, active first.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// BalanceReader defines read operations on the balance store.
type BalanceReader interface {
	// GetBalance returns the amount for (account, currency). A missing row
	// fails with ErrCurrencyNotSupported; it is never reported as zero.
	GetBalance(ctx context.Context, accountID, currencyCode string) (decimal.Decimal, error)

	// ListBalancesByAccountID returns every balance row of the account.
	ListBalancesByAccountID(ctx context.Context, accountID string) ([]domain.Balance, error)
}

// BalanceWriter defines write operations on the balance store outside the
// engine's unit of work. Engine adjustments go through TransactionWriter.
type BalanceWriter interface {
	// EnableCurrency creates a zeroed balance row, making the currency
	// supported on the account.
	EnableCurrency(ctx context.Context, accountID, currencyCode, userID string) error
}

// BalanceRepositoryFacade combines the balance store interfaces.
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceWriter
}
