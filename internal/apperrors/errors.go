package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting user is not allowed to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Ledger engine error kinds. Each one maps to exactly one failure condition of
// the transaction engine so that handlers can translate them with errors.Is.
var (
	// ErrAccountNotFound is returned when a referenced account id does not exist.
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)

	// ErrCurrencyNotSupported is returned when an account has no balance entry
	// for the requested currency. Absence of a balance row means the currency
	// is not enabled on the account; it is never treated as a zero balance.
	ErrCurrencyNotSupported = fmt.Errorf("currency not supported on account: %w", ErrValidation)

	// ErrInvalidCommission is returned when a commission is negative or not
	// strictly less than the transfer amount.
	ErrInvalidCommission = fmt.Errorf("commission must satisfy 0 <= commission < amount: %w", ErrValidation)

	// ErrSameAccounts is returned for an internal transfer between one account.
	ErrSameAccounts = fmt.Errorf("source and destination accounts must differ: %w", ErrValidation)

	// ErrSameCurrencies is returned for a currency conversion whose source and
	// target currencies are identical.
	ErrSameCurrencies = fmt.Errorf("source and target currencies must differ: %w", ErrValidation)

	// ErrClientIDRequired is returned for a client payment without a client reference.
	ErrClientIDRequired = fmt.Errorf("client reference is required: %w", ErrValidation)

	// ErrUnsupportedTransactionType is returned when the engine does not know
	// how to compute a balance effect for the transaction's type.
	ErrUnsupportedTransactionType = fmt.Errorf("unsupported transaction type: %w", ErrValidation)

	// ErrAccessDenied is returned when the acting user lacks operate permission
	// on the branch of a referenced account.
	ErrAccessDenied = fmt.Errorf("branch operate permission %w", ErrForbidden)

	// ErrVehicleCostUpdateFailed is returned when the remote vehicle-cost call
	// fails; the enclosing unit of work must be aborted.
	ErrVehicleCostUpdateFailed = errors.New("vehicle cost update failed")

	// ErrCategoryNotFound is returned when an update references a nonexistent category.
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
)

// AppError wraps a lower-level error with an HTTP-ish status code and a message.
// It is used by the repository layer to surface infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
