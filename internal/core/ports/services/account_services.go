package services

import (
	"context"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/dto"
)

// AccountSvcFacade exposes account management operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	EnableCurrency(ctx context.Context, accountID, currencyCode, userID string) error
	ListBalances(ctx context.Context, accountID string) ([]domain.Balance, error)
}
