package services

import (
	"context"
	"fmt"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/core/ports/gateways"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	portssvc "github.com/caravel-trade/caravel-backend/internal/core/ports/services"
	"github.com/caravel-trade/caravel-backend/internal/dto"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
)

// transactionService implements the ledger engine: typed creation, update via
// revert-then-reapply, and single/bulk deletion of transactions.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryWithTx
	accountRepo  portsrepo.AccountRepositoryFacade
	balanceRepo  portsrepo.BalanceRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	branchRepo   portsrepo.BranchRepositoryFacade
	vehicleCost  gateways.VehicleCostGateway
}

// NewTransactionService creates the transaction engine service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	balanceRepo portsrepo.BalanceRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	branchRepo portsrepo.BranchRepositoryFacade,
	vehicleCost gateways.VehicleCostGateway,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		balanceRepo:  balanceRepo,
		categoryRepo: categoryRepo,
		branchRepo:   branchRepo,
		vehicleCost:  vehicleCost,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// GetTransactionByID retrieves a single transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactions retrieves a filtered, token-paginated transaction page.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := portsrepo.ListTransactionsFilter{
		AccountID: params.AccountID,
		VehicleID: params.VehicleID,
		ClientID:  params.ClientID,
		Type:      params.Type,
	}
	transactions, nextToken, err := s.txnRepo.ListTransactions(ctx, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}

// applyVehicleCostAdjustments pushes signed vehicle-cost deltas to the remote
// gateway. Called inside the enclosing unit of work: a failure here rolls the
// whole operation back.
func (s *transactionService) applyVehicleCostAdjustments(ctx context.Context, adjustments []domain.VehicleCostAdjustment) error {
	for _, adj := range adjustments {
		if adj.AmountEur.IsZero() {
			continue
		}
		operation := gateways.OperationAdd
		amount := adj.AmountEur
		if amount.IsNegative() {
			operation = gateways.OperationSubtract
			amount = amount.Neg()
		}
		if err := s.vehicleCost.UpdateVehicleCost(ctx, adj.VehicleID, amount, operation); err != nil {
			return fmt.Errorf("%w: vehicle %s: %v", apperrors.ErrVehicleCostUpdateFailed, adj.VehicleID, err)
		}
	}
	return nil
}
