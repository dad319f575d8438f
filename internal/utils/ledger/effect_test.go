package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// balanceBook applies plans to an in-memory (account, currency) -> amount map,
// mirroring what the persistence layer does to account_balances.
type balanceBook map[string]decimal.Decimal

func (b balanceBook) apply(plan domain.EffectPlan) {
	for _, adj := range plan.Balance {
		key := adj.AccountID + "/" + adj.CurrencyCode
		b[key] = b[key].Add(adj.Amount)
	}
}

func TestEffectInternalTransfer(t *testing.T) {
	txn := domain.Transaction{
		Type:          domain.InternalTransfer,
		FromAccountID: strPtr("acc-b"),
		ToAccountID:   strPtr("acc-a"),
		Amount:        dec("50"),
		Commission:    dec("5"),
		CurrencyCode:  "EUR",
	}

	plan, err := Effect(txn)
	require.NoError(t, err)
	require.Len(t, plan.Balance, 2)
	assert.Empty(t, plan.VehicleCost)

	assert.Equal(t, "acc-b", plan.Balance[0].AccountID)
	assert.True(t, plan.Balance[0].Amount.Equal(dec("-50")), "source loses the full amount")
	assert.Equal(t, "acc-a", plan.Balance[1].AccountID)
	assert.True(t, plan.Balance[1].Amount.Equal(dec("45")), "destination receives amount minus commission")
}

func TestEffectInternalTransferMissingAccounts(t *testing.T) {
	txn := domain.Transaction{
		Type:         domain.InternalTransfer,
		Amount:       dec("10"),
		CurrencyCode: "EUR",
	}
	_, err := Effect(txn)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEffectExternalIncome(t *testing.T) {
	txn := domain.Transaction{
		Type:         domain.ExternalIncome,
		ToAccountID:  strPtr("acc-a"),
		Amount:       dec("200"),
		CurrencyCode: "USD",
	}

	plan, err := Effect(txn)
	require.NoError(t, err)
	require.Len(t, plan.Balance, 1)
	assert.True(t, plan.Balance[0].Amount.Equal(dec("200")))
	assert.Equal(t, "USD", plan.Balance[0].CurrencyCode)
}

func TestEffectExternalExpenseAndClientPayment(t *testing.T) {
	for _, typ := range []domain.TransactionType{domain.ExternalExpense, domain.ClientPayment} {
		txn := domain.Transaction{
			Type:          typ,
			FromAccountID: strPtr("acc-a"),
			Amount:        dec("75.50"),
			CurrencyCode:  "EUR",
		}

		plan, err := Effect(txn)
		require.NoError(t, err, "type %s", typ)
		require.Len(t, plan.Balance, 1)
		assert.True(t, plan.Balance[0].Amount.Equal(dec("-75.50")), "type %s debits the source", typ)
	}
}

func TestEffectCurrencyConversion(t *testing.T) {
	txn := domain.Transaction{
		Type:                  domain.CurrencyConversion,
		FromAccountID:         strPtr("acc-a"),
		Amount:                dec("100"),
		CurrencyCode:          "EUR",
		ExchangeRate:          dec("1.1"),
		ConvertedAmount:       dec("110"),
		ConvertedCurrencyCode: "USD",
	}

	plan, err := Effect(txn)
	require.NoError(t, err)
	require.Len(t, plan.Balance, 2)

	assert.Equal(t, "EUR", plan.Balance[0].CurrencyCode)
	assert.True(t, plan.Balance[0].Amount.Equal(dec("-100")))
	assert.Equal(t, "USD", plan.Balance[1].CurrencyCode)
	assert.True(t, plan.Balance[1].Amount.Equal(dec("110")))
	// Both legs stay on the same account.
	assert.Equal(t, plan.Balance[0].AccountID, plan.Balance[1].AccountID)
}

func TestEffectVehicleExpense(t *testing.T) {
	txn := domain.Transaction{
		Type:                  domain.VehicleExpense,
		FromAccountID:         strPtr("acc-a"),
		VehicleID:             strPtr("veh-1"),
		Amount:                dec("540000"),
		CurrencyCode:          "HUF",
		ConvertedAmount:       dec("1400"),
		ConvertedCurrencyCode: "EUR",
	}

	plan, err := Effect(txn)
	require.NoError(t, err)
	require.Len(t, plan.Balance, 1)
	assert.True(t, plan.Balance[0].Amount.Equal(dec("-540000")))

	require.Len(t, plan.VehicleCost, 1)
	assert.Equal(t, "veh-1", plan.VehicleCost[0].VehicleID)
	assert.True(t, plan.VehicleCost[0].AmountEur.Equal(dec("1400")))
}

func TestEffectVehicleExpenseWithoutConversion(t *testing.T) {
	// A EUR-denominated expense carries no conversion leg and no cost update.
	txn := domain.Transaction{
		Type:          domain.VehicleExpense,
		FromAccountID: strPtr("acc-a"),
		VehicleID:     strPtr("veh-1"),
		Amount:        dec("300"),
		CurrencyCode:  "EUR",
	}

	plan, err := Effect(txn)
	require.NoError(t, err)
	assert.Len(t, plan.Balance, 1)
	assert.Empty(t, plan.VehicleCost)
}

func TestEffectNoOpTypes(t *testing.T) {
	for _, typ := range []domain.TransactionType{domain.Deposit, domain.Withdrawal, domain.Purchase} {
		plan, err := Effect(domain.Transaction{Type: typ, Amount: dec("10")})
		require.NoError(t, err, "type %s", typ)
		assert.True(t, plan.IsEmpty(), "type %s must have an empty effect", typ)
	}
}

func TestEffectUnknownType(t *testing.T) {
	_, err := Effect(domain.Transaction{Type: "LOAN"})
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedTransactionType)
}

// Applying a transaction's effect and then its revert restores every balance
// exactly, for every effect-bearing type.
func TestRevertRestoresBalances(t *testing.T) {
	txns := []domain.Transaction{
		{Type: domain.InternalTransfer, FromAccountID: strPtr("b"), ToAccountID: strPtr("a"), Amount: dec("50"), Commission: dec("5"), CurrencyCode: "EUR"},
		{Type: domain.ExternalIncome, ToAccountID: strPtr("a"), Amount: dec("200"), CurrencyCode: "USD"},
		{Type: domain.ExternalExpense, FromAccountID: strPtr("a"), Amount: dec("33.33"), CurrencyCode: "EUR"},
		{Type: domain.ClientPayment, FromAccountID: strPtr("b"), ClientID: strPtr("cl-1"), Amount: dec("120"), CurrencyCode: "EUR"},
		{Type: domain.CurrencyConversion, FromAccountID: strPtr("a"), Amount: dec("100"), CurrencyCode: "EUR", ConvertedAmount: dec("110"), ConvertedCurrencyCode: "USD"},
		{Type: domain.VehicleExpense, FromAccountID: strPtr("a"), VehicleID: strPtr("v1"), Amount: dec("1000"), CurrencyCode: "PLN", ConvertedAmount: dec("230"), ConvertedCurrencyCode: "EUR"},
	}

	for _, txn := range txns {
		book := balanceBook{
			"a/EUR": dec("1000"), "a/USD": dec("500"), "a/PLN": dec("2000"),
			"b/EUR": dec("100"),
		}
		want := balanceBook{}
		for k, v := range book {
			want[k] = v
		}

		forward, err := Effect(txn)
		require.NoError(t, err, "type %s", txn.Type)
		book.apply(forward)

		revert, err := Revert(txn)
		require.NoError(t, err, "type %s", txn.Type)
		book.apply(revert)

		for key, amount := range want {
			assert.True(t, book[key].Equal(amount), "type %s: balance %s changed from %s to %s", txn.Type, key, amount, book[key])
		}
	}
}

// The worked transfer example: B holds 100 EUR, transfers 50 with commission 5
// to A. After apply B=50 and A=45; after revert both are restored.
func TestTransferScenario(t *testing.T) {
	book := balanceBook{"B/EUR": dec("100"), "A/EUR": dec("0")}

	txn := domain.Transaction{
		Type:          domain.InternalTransfer,
		FromAccountID: strPtr("B"),
		ToAccountID:   strPtr("A"),
		Amount:        dec("50"),
		Commission:    dec("5"),
		CurrencyCode:  "EUR",
	}

	forward, err := Effect(txn)
	require.NoError(t, err)
	book.apply(forward)
	assert.True(t, book["B/EUR"].Equal(dec("50")))
	assert.True(t, book["A/EUR"].Equal(dec("45")))

	revert, err := Revert(txn)
	require.NoError(t, err)
	book.apply(revert)
	assert.True(t, book["B/EUR"].Equal(dec("100")))
	assert.True(t, book["A/EUR"].Equal(dec("0")))
}

func TestAggregateMergesByKey(t *testing.T) {
	p1 := domain.EffectPlan{
		Balance: []domain.BalanceAdjustment{
			{AccountID: "a", CurrencyCode: "EUR", Amount: dec("10")},
			{AccountID: "b", CurrencyCode: "EUR", Amount: dec("-3")},
		},
		VehicleCost: []domain.VehicleCostAdjustment{{VehicleID: "v1", AmountEur: dec("100")}},
	}
	p2 := domain.EffectPlan{
		Balance: []domain.BalanceAdjustment{
			{AccountID: "a", CurrencyCode: "EUR", Amount: dec("5")},
			{AccountID: "a", CurrencyCode: "USD", Amount: dec("7")},
		},
		VehicleCost: []domain.VehicleCostAdjustment{{VehicleID: "v1", AmountEur: dec("-40")}},
	}

	got := Aggregate(p1, p2)
	require.Len(t, got.Balance, 3)
	assert.True(t, got.Balance[0].Amount.Equal(dec("15")), "a/EUR merged")
	assert.True(t, got.Balance[1].Amount.Equal(dec("-3")))
	assert.True(t, got.Balance[2].Amount.Equal(dec("7")))

	require.Len(t, got.VehicleCost, 1)
	assert.True(t, got.VehicleCost[0].AmountEur.Equal(dec("60")))
}

func TestAggregateDropsZeroSums(t *testing.T) {
	p1 := domain.EffectPlan{Balance: []domain.BalanceAdjustment{{AccountID: "a", CurrencyCode: "EUR", Amount: dec("10")}}}
	p2 := domain.EffectPlan{Balance: []domain.BalanceAdjustment{{AccountID: "a", CurrencyCode: "EUR", Amount: dec("-10")}}}

	got := Aggregate(p1, p2)
	assert.True(t, got.IsEmpty())
}

// Aggregation order must not matter: applying the aggregate of plans in any
// order yields the same balances.
func TestAggregateCommutative(t *testing.T) {
	plans := []domain.EffectPlan{
		{Balance: []domain.BalanceAdjustment{{AccountID: "a", CurrencyCode: "EUR", Amount: dec("10")}}},
		{Balance: []domain.BalanceAdjustment{{AccountID: "b", CurrencyCode: "USD", Amount: dec("-4")}}},
		{Balance: []domain.BalanceAdjustment{{AccountID: "a", CurrencyCode: "EUR", Amount: dec("-2.5")}}},
	}

	forward := Aggregate(plans[0], plans[1], plans[2])
	reversed := Aggregate(plans[2], plans[1], plans[0])

	bookA, bookB := balanceBook{}, balanceBook{}
	bookA.apply(forward)
	bookB.apply(reversed)
	for key := range bookA {
		assert.True(t, bookA[key].Equal(bookB[key]), "key %s differs between orders", key)
	}
	assert.Len(t, bookB, len(bookA))
}

func TestNegatedIsInvolution(t *testing.T) {
	plan := domain.EffectPlan{
		Balance:     []domain.BalanceAdjustment{{AccountID: "a", CurrencyCode: "EUR", Amount: dec("12.34")}},
		VehicleCost: []domain.VehicleCostAdjustment{{VehicleID: "v", AmountEur: dec("-7")}},
	}

	twice := plan.Negated().Negated()
	require.Len(t, twice.Balance, 1)
	assert.True(t, twice.Balance[0].Amount.Equal(dec("12.34")))
	require.Len(t, twice.VehicleCost, 1)
	assert.True(t, twice.VehicleCost[0].AmountEur.Equal(dec("-7")))
}
