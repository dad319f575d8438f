package domain

import "github.com/shopspring/decimal"

// BalanceAdjustment is a signed change to one (account, currency) balance.
// Positive amounts credit the balance, negative amounts debit it.
type BalanceAdjustment struct {
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
}

// VehicleCostAdjustment is a signed change to a vehicle's accumulated cost,
// applied through the remote vehicle-cost service. Amounts are in EUR.
type VehicleCostAdjustment struct {
	VehicleID string          `json:"vehicleID"`
	AmountEur decimal.Decimal `json:"amountEur"`
}

// EffectPlan is the ordered set of adjustments a transaction represents.
// The forward plan is the transaction's recorded effect; its negation is the
// revert plan that cancels it. Plans are computed on demand and consumed
// immediately, never persisted.
type EffectPlan struct {
	Balance     []BalanceAdjustment
	VehicleCost []VehicleCostAdjustment
}

// Negated returns a copy of the plan with every adjustment sign-inverted.
func (p EffectPlan) Negated() EffectPlan {
	out := EffectPlan{
		Balance:     make([]BalanceAdjustment, len(p.Balance)),
		VehicleCost: make([]VehicleCostAdjustment, len(p.VehicleCost)),
	}
	for i, adj := range p.Balance {
		adj.Amount = adj.Amount.Neg()
		out.Balance[i] = adj
	}
	for i, adj := range p.VehicleCost {
		adj.AmountEur = adj.AmountEur.Neg()
		out.VehicleCost[i] = adj
	}
	return out
}

// IsEmpty reports whether the plan carries no adjustments at all.
func (p EffectPlan) IsEmpty() bool {
	return len(p.Balance) == 0 && len(p.VehicleCost) == 0
}
