// Package ledger holds the pure balance-effect arithmetic of the transaction
// engine. It is the single place that knows what adjustment set a transaction
// of each type represents, used by creation (forward), deletion (negated) and
// update (negated old + forward new).
package ledger

import (
	"fmt"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
)

// Effect computes the forward balance effect the transaction's current field
// values represent. It performs no I/O and never mutates its input.
//
// The switch is exhaustive over domain.TransactionType; an unknown type fails
// with ErrUnsupportedTransactionType so a new type cannot silently carry an
// empty effect.
func Effect(txn domain.Transaction) (domain.EffectPlan, error) {
	switch txn.Type {
	case domain.InternalTransfer:
		if txn.FromAccountID == nil || txn.ToAccountID == nil {
			return domain.EffectPlan{}, fmt.Errorf("%w: internal transfer requires both accounts", apperrors.ErrValidation)
		}
		// Destination receives amount minus commission; commission stays with
		// the company and leaves the ledger.
		transferAmount := txn.Amount.Sub(txn.Commission)
		return domain.EffectPlan{
			Balance: []domain.BalanceAdjustment{
				{AccountID: *txn.FromAccountID, CurrencyCode: txn.CurrencyCode, Amount: txn.Amount.Neg()},
				{AccountID: *txn.ToAccountID, CurrencyCode: txn.CurrencyCode, Amount: transferAmount},
			},
		}, nil

	case domain.ExternalIncome:
		if txn.ToAccountID == nil {
			return domain.EffectPlan{}, fmt.Errorf("%w: external income requires a destination account", apperrors.ErrValidation)
		}
		return domain.EffectPlan{
			Balance: []domain.BalanceAdjustment{
				{AccountID: *txn.ToAccountID, CurrencyCode: txn.CurrencyCode, Amount: txn.Amount},
			},
		}, nil

	case domain.ExternalExpense, domain.ClientPayment:
		if txn.FromAccountID == nil {
			return domain.EffectPlan{}, fmt.Errorf("%w: %s requires a source account", apperrors.ErrValidation, txn.Type)
		}
		return domain.EffectPlan{
			Balance: []domain.BalanceAdjustment{
				{AccountID: *txn.FromAccountID, CurrencyCode: txn.CurrencyCode, Amount: txn.Amount.Neg()},
			},
		}, nil

	case domain.CurrencyConversion:
		if txn.FromAccountID == nil {
			return domain.EffectPlan{}, fmt.Errorf("%w: currency conversion requires an account", apperrors.ErrValidation)
		}
		adjustments := []domain.BalanceAdjustment{
			{AccountID: *txn.FromAccountID, CurrencyCode: txn.CurrencyCode, Amount: txn.Amount.Neg()},
		}
		if txn.ConvertedAmount.IsPositive() {
			adjustments = append(adjustments, domain.BalanceAdjustment{
				AccountID:    *txn.FromAccountID,
				CurrencyCode: txn.ConvertedCurrencyCode,
				Amount:       txn.ConvertedAmount,
			})
		}
		return domain.EffectPlan{Balance: adjustments}, nil

	case domain.VehicleExpense:
		if txn.FromAccountID == nil {
			return domain.EffectPlan{}, fmt.Errorf("%w: vehicle expense requires a source account", apperrors.ErrValidation)
		}
		plan := domain.EffectPlan{
			Balance: []domain.BalanceAdjustment{
				{AccountID: *txn.FromAccountID, CurrencyCode: txn.CurrencyCode, Amount: txn.Amount.Neg()},
			},
		}
		if txn.ConvertedAmount.IsPositive() {
			if txn.VehicleID == nil {
				return domain.EffectPlan{}, fmt.Errorf("%w: vehicle expense requires a vehicle", apperrors.ErrValidation)
			}
			plan.VehicleCost = []domain.VehicleCostAdjustment{
				{VehicleID: *txn.VehicleID, AmountEur: txn.ConvertedAmount},
			}
		}
		return plan, nil

	case domain.Deposit, domain.Withdrawal, domain.Purchase:
		// These types belong to the container/warehouse subsystems and carry
		// no balance effect in this engine.
		return domain.EffectPlan{}, nil

	default:
		return domain.EffectPlan{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedTransactionType, txn.Type)
	}
}

// Revert computes the plan that exactly cancels the transaction's current
// recorded effect: the forward effect with every sign inverted.
func Revert(txn domain.Transaction) (domain.EffectPlan, error) {
	plan, err := Effect(txn)
	if err != nil {
		return domain.EffectPlan{}, err
	}
	return plan.Negated(), nil
}

// Aggregate sums the given plans into one, merging balance adjustments by
// (account, currency) and vehicle-cost adjustments by vehicle. Balance store
// operations are commutative additions on independent keys, so applying the
// aggregate equals applying the plans one by one in any order. Zero-sum keys
// are dropped. Output order follows first appearance, keeping it deterministic.
func Aggregate(plans ...domain.EffectPlan) domain.EffectPlan {
	type balanceKey struct {
		accountID    string
		currencyCode string
	}

	balanceOrder := make([]balanceKey, 0)
	balanceSums := make(map[balanceKey]domain.BalanceAdjustment)
	vehicleOrder := make([]string, 0)
	vehicleSums := make(map[string]domain.VehicleCostAdjustment)

	for _, plan := range plans {
		for _, adj := range plan.Balance {
			key := balanceKey{adj.AccountID, adj.CurrencyCode}
			current, ok := balanceSums[key]
			if !ok {
				balanceOrder = append(balanceOrder, key)
				current = domain.BalanceAdjustment{AccountID: adj.AccountID, CurrencyCode: adj.CurrencyCode}
			}
			current.Amount = current.Amount.Add(adj.Amount)
			balanceSums[key] = current
		}
		for _, adj := range plan.VehicleCost {
			current, ok := vehicleSums[adj.VehicleID]
			if !ok {
				vehicleOrder = append(vehicleOrder, adj.VehicleID)
				current = domain.VehicleCostAdjustment{VehicleID: adj.VehicleID}
			}
			current.AmountEur = current.AmountEur.Add(adj.AmountEur)
			vehicleSums[adj.VehicleID] = current
		}
	}

	out := domain.EffectPlan{}
	for _, key := range balanceOrder {
		if adj := balanceSums[key]; !adj.Amount.IsZero() {
			out.Balance = append(out.Balance, adj)
		}
	}
	for _, vehicleID := range vehicleOrder {
		if adj := vehicleSums[vehicleID]; !adj.AmountEur.IsZero() {
			out.VehicleCost = append(out.VehicleCost, adj)
		}
	}
	return out
}
