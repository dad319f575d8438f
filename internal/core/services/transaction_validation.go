package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// All validation runs before any balance mutation: a transaction either passes
// every check for its type or leaves no trace.

// validateAccount confirms the account exists and returns it.
func (s *transactionService) validateAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to load account %s: %w", accountID, err)
	}
	return account, nil
}

// validateAccounts confirms both accounts of a transfer exist.
func (s *transactionService) validateAccounts(ctx context.Context, fromAccountID, toAccountID string) error {
	if _, err := s.validateAccount(ctx, fromAccountID); err != nil {
		return err
	}
	_, err := s.validateAccount(ctx, toAccountID)
	return err
}

// validateCurrency confirms the account has a balance entry for the currency.
// A currency is supported iff the balance store can return a balance for it.
func (s *transactionService) validateCurrency(ctx context.Context, accountID, currencyCode string) error {
	if _, err := s.balanceRepo.GetBalance(ctx, accountID, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrCurrencyNotSupported) {
			return fmt.Errorf("%w: account %s has no %s balance", apperrors.ErrCurrencyNotSupported, accountID, currencyCode)
		}
		return fmt.Errorf("failed to read balance for account %s: %w", accountID, err)
	}
	return nil
}

// validateCommission enforces 0 <= commission < amount.
func validateCommission(commission, amount decimal.Decimal) error {
	if commission.IsNegative() || commission.GreaterThanOrEqual(amount) {
		return fmt.Errorf("%w: commission %s, amount %s", apperrors.ErrInvalidCommission, commission, amount)
	}
	return nil
}

// validateSameAccounts rejects internal transfers within one account.
func validateSameAccounts(fromAccountID, toAccountID string) error {
	if fromAccountID == toAccountID {
		return fmt.Errorf("%w: %s", apperrors.ErrSameAccounts, fromAccountID)
	}
	return nil
}

// checkAccountPermissions verifies branch-operate permission for every account
// the transaction's type-specific roles reference. Accounts without a branch
// are unrestricted.
func (s *transactionService) checkAccountPermissions(ctx context.Context, userID string, txn domain.Transaction) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, accountID := range txn.ReferencedAccountIDs() {
		account, err := s.validateAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if account.BranchID == nil {
			continue
		}
		allowed, err := s.branchRepo.HasOperatePermission(ctx, userID, *account.BranchID)
		if err != nil {
			return fmt.Errorf("failed to check branch permission: %w", err)
		}
		if !allowed {
			logger.Warn("Branch operate permission denied",
				"user_id", userID, "account_id", accountID, "branch_id", *account.BranchID)
			return fmt.Errorf("%w: account %s", apperrors.ErrAccessDenied, accountID)
		}
	}
	return nil
}

// validateCategory confirms the category exists when one is referenced.
func (s *transactionService) validateCategory(ctx context.Context, categoryID string) error {
	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrCategoryNotFound, categoryID)
		}
		return fmt.Errorf("failed to load category %s: %w", categoryID, err)
	}
	return nil
}
