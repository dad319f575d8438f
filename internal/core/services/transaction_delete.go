package services

import (
	"context"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
	"github.com/caravel-trade/caravel-backend/internal/utils/ledger"
)

// DeleteTransaction reverts the transaction's recorded effect and removes the
// record, atomically.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, executorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.checkAccountPermissions(ctx, executorUserID, *txn); err != nil {
		return err
	}

	plan, err := ledger.Revert(*txn)
	if err != nil {
		return err
	}

	err = s.txnRepo.WithTransaction(ctx, func(txRepo portsrepo.TransactionRepositoryFacade) error {
		if err := txRepo.DeleteTransactions(ctx, []string{transactionID}, plan.Balance); err != nil {
			return err
		}
		return s.applyVehicleCostAdjustments(ctx, plan.VehicleCost)
	})
	if err != nil {
		logger.Error("Failed to delete transaction", "error", err, "transaction_id", transactionID)
		return err
	}

	logger.Info("Transaction deleted", "transaction_id", transactionID, "type", string(txn.Type))
	return nil
}

// DeleteTransactionsByVehicle reverts and removes every transaction tied to
// the vehicle. The revert plans are aggregated by (account, currency) and by
// vehicle before applying: balance mutations are commutative additions on
// independent keys, so the aggregate's net effect equals applying each plan
// individually, in any order.
func (s *transactionService) DeleteTransactionsByVehicle(ctx context.Context, vehicleID string, executorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	transactions, err := s.txnRepo.FindTransactionsByVehicleID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		return nil
	}

	plans := make([]domain.EffectPlan, 0, len(transactions))
	transactionIDs := make([]string, 0, len(transactions))
	for _, txn := range transactions {
		if err := s.checkAccountPermissions(ctx, executorUserID, txn); err != nil {
			return err
		}
		plan, err := ledger.Revert(txn)
		if err != nil {
			return err
		}
		plans = append(plans, plan)
		transactionIDs = append(transactionIDs, txn.TransactionID)
	}
	aggregated := ledger.Aggregate(plans...)

	err = s.txnRepo.WithTransaction(ctx, func(txRepo portsrepo.TransactionRepositoryFacade) error {
		if err := txRepo.DeleteTransactions(ctx, transactionIDs, aggregated.Balance); err != nil {
			return err
		}
		return s.applyVehicleCostAdjustments(ctx, aggregated.VehicleCost)
	})
	if err != nil {
		logger.Error("Failed to bulk delete vehicle transactions", "error", err, "vehicle_id", vehicleID)
		return err
	}

	logger.Info("Vehicle transactions deleted", "vehicle_id", vehicleID, "count", len(transactionIDs))
	return nil
}
