package vehiclecost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/ports/gateways"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
)

// Client talks to the vehicle-cost service over HTTP. It implements
// gateways.VehicleCostGateway; every error it returns wraps
// apperrors.ErrVehicleCostUpdateFailed so callers can abort uniformly.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a vehicle-cost service client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ gateways.VehicleCostGateway = (*Client)(nil)

type updateCostRequest struct {
	AmountEur decimal.Decimal `json:"amountEur"`
	Operation string          `json:"operation"`
}

// UpdateVehicleCost posts a cost mutation for the vehicle. Any transport or
// non-2xx failure is wrapped in ErrVehicleCostUpdateFailed.
func (c *Client) UpdateVehicleCost(ctx context.Context, vehicleID string, amountEur decimal.Decimal, operation gateways.VehicleCostOperation) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	body, err := json.Marshal(updateCostRequest{
		AmountEur: amountEur,
		Operation: string(operation),
	})
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", apperrors.ErrVehicleCostUpdateFailed, err)
	}

	endpoint := fmt.Sprintf("%s/vehicles/%s/cost", c.baseURL, url.PathEscape(vehicleID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", apperrors.ErrVehicleCostUpdateFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Vehicle cost service call failed", "vehicle_id", vehicleID, "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrVehicleCostUpdateFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error("Vehicle cost service rejected update", "vehicle_id", vehicleID, "status", resp.StatusCode)
		return fmt.Errorf("%w: unexpected status %d", apperrors.ErrVehicleCostUpdateFailed, resp.StatusCode)
	}
	return nil
}
