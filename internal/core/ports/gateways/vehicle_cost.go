package gateways

import (
	"context"

	"github.com/shopspring/decimal"
)

// VehicleCostOperation selects the direction of a vehicle-cost mutation.
type VehicleCostOperation string

const (
	OperationAdd      VehicleCostOperation = "add"
	OperationSubtract VehicleCostOperation = "subtract"
)

// VehicleCostGateway is the remote service tracking a vehicle's accumulated
// cost. The call is synchronous; a failure surfaces as
// apperrors.ErrVehicleCostUpdateFailed and must abort the enclosing operation.
type VehicleCostGateway interface {
	UpdateVehicleCost(ctx context.Context, vehicleID string, amountEur decimal.Decimal, operation VehicleCostOperation) error
}
