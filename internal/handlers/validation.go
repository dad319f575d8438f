package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/caravel-trade/caravel-backend/internal/core/domain"
)

// registerCustomValidators installs the binding rules request DTO tags rely on.
// Not registering a custom type function for decimal.Decimal is deliberate:
// returning the same type loops the validator, so rules read the field directly.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("txn_type", func(fl validator.FieldLevel) bool {
		return domain.TransactionType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return value.IsPositive()
	})
}
