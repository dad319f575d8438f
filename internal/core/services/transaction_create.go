package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	"github.com/caravel-trade/caravel-backend/internal/dto"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
	"github.com/caravel-trade/caravel-backend/internal/utils/ledger"
)

// CreateTransaction validates the request for its type, applies the forward
// balance effect and persists the record, all within one unit of work. No
// balance is touched unless every validation for the type has passed.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, executorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:         uuid.NewString(),
		Type:                  req.Type,
		FromAccountID:         req.FromAccountID,
		ToAccountID:           req.ToAccountID,
		Amount:                req.Amount,
		CurrencyCode:          req.CurrencyCode,
		ConvertedCurrencyCode: req.ConvertedCurrencyCode,
		ClientID:              req.ClientID,
		VehicleID:             req.VehicleID,
		CategoryID:            req.CategoryID,
		CounterpartyID:        req.CounterpartyID,
		Description:           req.Description,
		ExecutorUserID:        executorUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     executorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: executorUserID,
		},
	}
	if req.Commission != nil {
		txn.Commission = *req.Commission
	}
	if req.ExchangeRate != nil {
		txn.ExchangeRate = *req.ExchangeRate
	}
	if req.ConvertedAmount != nil {
		txn.ConvertedAmount = *req.ConvertedAmount
	}

	var err error
	switch req.Type {
	case domain.InternalTransfer:
		err = s.prepareInternalTransfer(ctx, &txn)
	case domain.ExternalIncome:
		err = s.prepareExternalIncome(ctx, &txn)
	case domain.ExternalExpense:
		err = s.prepareExternalExpense(ctx, &txn)
	case domain.ClientPayment:
		err = s.prepareClientPayment(ctx, &txn)
	case domain.CurrencyConversion:
		err = s.prepareCurrencyConversion(ctx, &txn)
	case domain.VehicleExpense:
		err = s.prepareVehicleExpense(ctx, &txn)
	default:
		// DEPOSIT/WITHDRAWAL/PURCHASE are created by their own subsystems.
		err = fmt.Errorf("%w: %q", apperrors.ErrUnsupportedTransactionType, req.Type)
	}
	if err != nil {
		return nil, err
	}

	if txn.CategoryID != nil {
		if err := s.validateCategory(ctx, *txn.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := s.checkAccountPermissions(ctx, executorUserID, txn); err != nil {
		return nil, err
	}

	plan, err := ledger.Effect(txn)
	if err != nil {
		return nil, err
	}

	err = s.txnRepo.WithTransaction(ctx, func(txRepo portsrepo.TransactionRepositoryFacade) error {
		if err := txRepo.SaveTransaction(ctx, txn, plan.Balance); err != nil {
			return err
		}
		return s.applyVehicleCostAdjustments(ctx, plan.VehicleCost)
	})
	if err != nil {
		logger.Error("Failed to persist transaction", "error", err, "transaction_id", txn.TransactionID)
		return nil, err
	}

	logger.Info("Transaction created",
		"transaction_id", txn.TransactionID, "type", string(txn.Type), "amount", txn.Amount.String())
	return &txn, nil
}

func (s *transactionService) prepareInternalTransfer(ctx context.Context, txn *domain.Transaction) error {
	if txn.FromAccountID == nil || txn.ToAccountID == nil {
		return fmt.Errorf("%w: internal transfer requires fromAccountID and toAccountID", apperrors.ErrValidation)
	}
	if err := validateSameAccounts(*txn.FromAccountID, *txn.ToAccountID); err != nil {
		return err
	}
	if err := s.validateAccounts(ctx, *txn.FromAccountID, *txn.ToAccountID); err != nil {
		return err
	}
	if err := validateCommission(txn.Commission, txn.Amount); err != nil {
		return err
	}
	if err := s.validateCurrency(ctx, *txn.FromAccountID, txn.CurrencyCode); err != nil {
		return err
	}
	return s.validateCurrency(ctx, *txn.ToAccountID, txn.CurrencyCode)
}

func (s *transactionService) prepareExternalIncome(ctx context.Context, txn *domain.Transaction) error {
	if txn.ToAccountID == nil {
		return fmt.Errorf("%w: external income requires toAccountID", apperrors.ErrValidation)
	}
	if _, err := s.validateAccount(ctx, *txn.ToAccountID); err != nil {
		return err
	}
	return s.validateCurrency(ctx, *txn.ToAccountID, txn.CurrencyCode)
}

func (s *transactionService) prepareExternalExpense(ctx context.Context, txn *domain.Transaction) error {
	if txn.FromAccountID == nil {
		return fmt.Errorf("%w: external expense requires fromAccountID", apperrors.ErrValidation)
	}
	if _, err := s.validateAccount(ctx, *txn.FromAccountID); err != nil {
		return err
	}
	return s.validateCurrency(ctx, *txn.FromAccountID, txn.CurrencyCode)
}

func (s *transactionService) prepareClientPayment(ctx context.Context, txn *domain.Transaction) error {
	if txn.FromAccountID == nil {
		return fmt.Errorf("%w: client payment requires fromAccountID", apperrors.ErrValidation)
	}
	if txn.ClientID == nil {
		return apperrors.ErrClientIDRequired
	}
	// The payment leaves the ledger; a destination account makes no sense here.
	txn.ToAccountID = nil
	if _, err := s.validateAccount(ctx, *txn.FromAccountID); err != nil {
		return err
	}
	return s.validateCurrency(ctx, *txn.FromAccountID, txn.CurrencyCode)
}

func (s *transactionService) prepareCurrencyConversion(ctx context.Context, txn *domain.Transaction) error {
	if txn.FromAccountID == nil {
		return fmt.Errorf("%w: currency conversion requires fromAccountID", apperrors.ErrValidation)
	}
	// A conversion is a single-account event across two currencies.
	if txn.ToAccountID != nil && *txn.ToAccountID != *txn.FromAccountID {
		return fmt.Errorf("%w: conversion happens within one account", apperrors.ErrValidation)
	}
	txn.ToAccountID = txn.FromAccountID

	if txn.ConvertedCurrencyCode == "" {
		return fmt.Errorf("%w: convertedCurrencyCode is required", apperrors.ErrValidation)
	}
	if txn.ConvertedCurrencyCode == txn.CurrencyCode {
		return fmt.Errorf("%w: %s", apperrors.ErrSameCurrencies, txn.CurrencyCode)
	}
	if err := reconcileConversion(txn); err != nil {
		return err
	}
	if _, err := s.validateAccount(ctx, *txn.FromAccountID); err != nil {
		return err
	}
	if err := s.validateCurrency(ctx, *txn.FromAccountID, txn.CurrencyCode); err != nil {
		return err
	}
	return s.validateCurrency(ctx, *txn.FromAccountID, txn.ConvertedCurrencyCode)
}

func (s *transactionService) prepareVehicleExpense(ctx context.Context, txn *domain.Transaction) error {
	if txn.FromAccountID == nil {
		return fmt.Errorf("%w: vehicle expense requires fromAccountID", apperrors.ErrValidation)
	}
	if txn.VehicleID == nil {
		return fmt.Errorf("%w: vehicle expense requires vehicleID", apperrors.ErrValidation)
	}
	if txn.ConvertedAmount.IsPositive() || txn.ExchangeRate.IsPositive() {
		if err := reconcileConversion(txn); err != nil {
			return err
		}
	}
	if _, err := s.validateAccount(ctx, *txn.FromAccountID); err != nil {
		return err
	}
	return s.validateCurrency(ctx, *txn.FromAccountID, txn.CurrencyCode)
}

// reconcileConversion fills whichever of exchange rate / converted amount is
// missing from the other. The rate is units of converted currency per one unit
// of the source currency: convertedAmount = amount * exchangeRate.
func reconcileConversion(txn *domain.Transaction) error {
	switch {
	case txn.ConvertedAmount.IsPositive():
		txn.ExchangeRate = txn.ConvertedAmount.Div(txn.Amount)
	case txn.ExchangeRate.IsPositive():
		txn.ConvertedAmount = txn.Amount.Mul(txn.ExchangeRate)
	default:
		return fmt.Errorf("%w: either exchangeRate or convertedAmount is required", apperrors.ErrValidation)
	}
	return nil
}
