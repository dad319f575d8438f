package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionType enumerates the kinds of ledger events.
//
// The first six carry a balance effect in this engine. DEPOSIT, WITHDRAWAL and
// PURCHASE exist for the container/warehouse subsystems and have an empty
// effect here.
type TransactionType string

const (
	InternalTransfer   TransactionType = "INTERNAL_TRANSFER"
	ExternalIncome     TransactionType = "EXTERNAL_INCOME"
	ExternalExpense    TransactionType = "EXTERNAL_EXPENSE"
	ClientPayment      TransactionType = "CLIENT_PAYMENT"
	CurrencyConversion TransactionType = "CURRENCY_CONVERSION"
	VehicleExpense     TransactionType = "VEHICLE_EXPENSE"
	Deposit            TransactionType = "DEPOSIT"
	Withdrawal         TransactionType = "WITHDRAWAL"
	Purchase           TransactionType = "PURCHASE"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case InternalTransfer, ExternalIncome, ExternalExpense, ClientPayment,
		CurrencyConversion, VehicleExpense, Deposit, Withdrawal, Purchase:
		return true
	}
	return false
}

// Transaction is the ledger event record.
//
// Invariant: the balance effect a persisted transaction represents must always
// be recoverable from its current field values alone. Any mutation that changes
// the effect goes through the update service, which reverts the old effect and
// reapplies the new one; fields are never adjusted in place.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	Type          TransactionType `json:"type"`          // Immutable after creation
	FromAccountID *string         `json:"fromAccountID"` // Required/forbidden depending on Type
	ToAccountID   *string         `json:"toAccountID"`
	Amount        decimal.Decimal `json:"amount"`       // Primary quantity in CurrencyCode; > 0
	CurrencyCode  string          `json:"currencyCode"` // Must be enabled on the referenced account(s)

	// Commission applies to INTERNAL_TRANSFER only; 0 <= Commission < Amount.
	Commission decimal.Decimal `json:"commission"`

	// ExchangeRate is units of ConvertedCurrencyCode per one unit of
	// CurrencyCode. Used by CURRENCY_CONVERSION and VEHICLE_EXPENSE together
	// with ConvertedAmount = Amount * ExchangeRate.
	ExchangeRate          decimal.Decimal `json:"exchangeRate"`
	ConvertedAmount       decimal.Decimal `json:"convertedAmount"`
	ConvertedCurrencyCode string          `json:"convertedCurrencyCode"`

	// Descriptive metadata; no balance effect except VehicleID for VEHICLE_EXPENSE.
	ClientID       *string `json:"clientID"`
	VehicleID      *string `json:"vehicleID"`
	CategoryID     *string `json:"categoryID"`
	CounterpartyID *string `json:"counterpartyID"`
	Description    string  `json:"description"`
	ExecutorUserID string  `json:"executorUserID"`

	AuditFields
}

// ReferencedAccountIDs returns the account ids the transaction's type-specific
// roles point at, in from-then-to order. Used by permission checks.
func (t Transaction) ReferencedAccountIDs() []string {
	ids := make([]string, 0, 2)
	switch t.Type {
	case InternalTransfer:
		if t.FromAccountID != nil {
			ids = append(ids, *t.FromAccountID)
		}
		if t.ToAccountID != nil {
			ids = append(ids, *t.ToAccountID)
		}
	case ExternalIncome:
		if t.ToAccountID != nil {
			ids = append(ids, *t.ToAccountID)
		}
	case ExternalExpense, ClientPayment, CurrencyConversion, VehicleExpense:
		if t.FromAccountID != nil {
			ids = append(ids, *t.FromAccountID)
		}
	}
	return ids
}
