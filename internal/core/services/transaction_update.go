package services

import (
	"context"
	"fmt"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	"github.com/caravel-trade/caravel-backend/internal/dto"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
	"github.com/caravel-trade/caravel-backend/internal/utils/ledger"
)

// effectChanges records which effect-bearing fields an update touched.
type effectChanges struct {
	amount          bool
	commission      bool
	exchangeRate    bool
	convertedAmount bool
}

func (c effectChanges) any() bool {
	return c.amount || c.commission || c.exchangeRate || c.convertedAmount
}

// UpdateTransaction applies an update as revert-old-effect, mutate fields,
// apply-new-effect. Both plans come from the same per-type effect function;
// there is no per-field delta arithmetic. When no effect-bearing field
// changes, only descriptive fields are persisted and no balance moves.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, executorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedTransactionType, txn.Type)
	}

	// Snapshot carrying the pre-change effect; the revert plan is computed
	// from these values, never from the mutated ones.
	oldTxn := *txn

	if err := s.applyDescriptiveUpdates(ctx, txn, req); err != nil {
		return nil, err
	}
	changes, err := s.stageEffectChanges(txn, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccountPermissions(ctx, executorUserID, *txn); err != nil {
		return nil, err
	}

	txn.LastUpdatedBy = executorUserID

	if !changes.any() {
		err = s.txnRepo.WithTransaction(ctx, func(txRepo portsrepo.TransactionRepositoryFacade) error {
			return txRepo.UpdateTransaction(ctx, *txn, nil)
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("Transaction updated without balance effect", "transaction_id", transactionID)
		return txn, nil
	}

	revertPlan, err := ledger.Revert(oldTxn)
	if err != nil {
		return nil, err
	}
	applyPlan, err := ledger.Effect(*txn)
	if err != nil {
		return nil, err
	}

	adjustments := append(revertPlan.Balance, applyPlan.Balance...)
	vehicleAdjustments := append(revertPlan.VehicleCost, applyPlan.VehicleCost...)

	err = s.txnRepo.WithTransaction(ctx, func(txRepo portsrepo.TransactionRepositoryFacade) error {
		if err := txRepo.UpdateTransaction(ctx, *txn, adjustments); err != nil {
			return err
		}
		return s.applyVehicleCostAdjustments(ctx, vehicleAdjustments)
	})
	if err != nil {
		logger.Error("Failed to update transaction", "error", err, "transaction_id", transactionID)
		return nil, err
	}

	logger.Info("Transaction updated with balance effect",
		"transaction_id", transactionID, "amount", txn.Amount.String())
	return txn, nil
}

// applyDescriptiveUpdates handles the fields with no balance effect. The
// counterparty is cleared automatically on external income/expense when the
// request does not supply one.
func (s *transactionService) applyDescriptiveUpdates(ctx context.Context, txn *domain.Transaction, req dto.UpdateTransactionRequest) error {
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, *req.CategoryID); err != nil {
			return err
		}
		txn.CategoryID = req.CategoryID
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.CounterpartyID != nil {
		txn.CounterpartyID = req.CounterpartyID
	} else if txn.Type == domain.ExternalIncome || txn.Type == domain.ExternalExpense {
		txn.CounterpartyID = nil
	}
	return nil
}

// stageEffectChanges validates and writes the new effect-bearing values onto
// txn, recording which of them actually changed.
func (s *transactionService) stageEffectChanges(txn *domain.Transaction, req dto.UpdateTransactionRequest) (effectChanges, error) {
	var changes effectChanges

	if req.Amount != nil && !req.Amount.Equal(txn.Amount) {
		if !req.Amount.IsPositive() {
			return changes, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		txn.Amount = *req.Amount
		changes.amount = true
	}

	if req.Commission != nil {
		if txn.Type != domain.InternalTransfer {
			return changes, fmt.Errorf("%w: commission applies to internal transfers only", apperrors.ErrValidation)
		}
		if !req.Commission.Equal(txn.Commission) {
			txn.Commission = *req.Commission
			changes.commission = true
		}
	}
	if txn.Type == domain.InternalTransfer && (changes.amount || changes.commission) {
		if err := validateCommission(txn.Commission, txn.Amount); err != nil {
			return changes, err
		}
	}

	if req.ExchangeRate != nil || req.ConvertedAmount != nil {
		if txn.Type != domain.CurrencyConversion && txn.Type != domain.VehicleExpense {
			return changes, fmt.Errorf("%w: exchange fields apply to conversions and vehicle expenses only", apperrors.ErrValidation)
		}
	}
	if req.ExchangeRate != nil && !req.ExchangeRate.Equal(txn.ExchangeRate) {
		if !req.ExchangeRate.IsPositive() {
			return changes, fmt.Errorf("%w: exchangeRate must be positive", apperrors.ErrValidation)
		}
		txn.ExchangeRate = *req.ExchangeRate
		changes.exchangeRate = true
	}
	if req.ConvertedAmount != nil && !req.ConvertedAmount.Equal(txn.ConvertedAmount) {
		if !req.ConvertedAmount.IsPositive() {
			return changes, fmt.Errorf("%w: convertedAmount must be positive", apperrors.ErrValidation)
		}
		txn.ConvertedAmount = *req.ConvertedAmount
		changes.convertedAmount = true
	}

	if txn.Type == domain.CurrencyConversion || txn.Type == domain.VehicleExpense {
		reconcileConversionUpdate(txn, changes)
	}

	return changes, nil
}

// reconcileConversionUpdate keeps amount, exchange rate and converted amount
// consistent after an update, following convertedAmount = amount * exchangeRate:
//   - an explicit new converted amount wins and recomputes the rate;
//   - an amount-only change keeps the old rate and recomputes the converted amount;
//   - a rate change (alone or with a new amount) recomputes the converted amount.
func reconcileConversionUpdate(txn *domain.Transaction, changes effectChanges) {
	switch {
	case changes.convertedAmount:
		txn.ExchangeRate = txn.ConvertedAmount.Div(txn.Amount)
	case changes.exchangeRate:
		txn.ConvertedAmount = txn.Amount.Mul(txn.ExchangeRate)
	case changes.amount && txn.ExchangeRate.IsPositive():
		txn.ConvertedAmount = txn.Amount.Mul(txn.ExchangeRate)
	}
}
