package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	portssvc "github.com/caravel-trade/caravel-backend/internal/core/ports/services"
	"github.com/caravel-trade/caravel-backend/internal/dto"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
)

// accountService manages company accounts and their supported currencies.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	balanceRepo portsrepo.BalanceRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, balanceRepo portsrepo.BalanceRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, balanceRepo: balanceRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates an account and enables its initial currencies as
// zeroed balance rows.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        req.Name,
		BranchID:    req.BranchID,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", "error", err)
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	for _, currencyCode := range req.Currencies {
		if err := s.balanceRepo.EnableCurrency(ctx, account.AccountID, currencyCode, creatorUserID); err != nil {
			return nil, fmt.Errorf("failed to enable currency %s: %w", currencyCode, err)
		}
	}

	logger.Info("Account created", "account_id", account.AccountID, "name", account.Name)
	return &account, nil
}

// GetAccountByID retrieves one account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts retrieves all accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

// UpdateAccount applies the mutable account fields.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// EnableCurrency makes one more currency available on the account.
func (s *accountService) EnableCurrency(ctx context.Context, accountID, currencyCode, userID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}
	return s.balanceRepo.EnableCurrency(ctx, accountID, currencyCode, userID)
}

// ListBalances returns every balance row of the account.
func (s *accountService) ListBalances(ctx context.Context, accountID string) ([]domain.Balance, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.balanceRepo.ListBalancesByAccountID(ctx, accountID)
}
