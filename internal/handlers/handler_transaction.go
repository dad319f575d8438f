package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	portssvc "github.com/caravel-trade/caravel-backend/internal/core/ports/services"
	"github.com/caravel-trade/caravel-backend/internal/dto"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
)

// transactionHandler handles HTTP requests related to ledger transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("/:id", h.getTransaction)
		transactions.GET("", h.listTransactions)
		transactions.PATCH("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}

	// Bulk removal of every transaction tied to a vehicle.
	rg.DELETE("/vehicles/:id/transactions", h.deleteTransactionsByVehicle)
}

// respondTransactionError maps engine errors onto HTTP statuses.
func respondTransactionError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAccessDenied):
		logger.Warn("Branch permission denied", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrCategoryNotFound):
		logger.Warn("Referenced entity not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Transaction not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrVehicleCostUpdateFailed):
		logger.Error("Vehicle cost service failure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		// Covers currency, commission, same-accounts, same-currencies,
		// client-required and unsupported-type failures.
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Transaction operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// createTransaction godoc
// @Summary Create a new transaction
// @Description Validates the request for its type, applies the balance effect and persists the record
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "No operate permission on the account's branch"
// @Failure 502 {object} map[string]string "Vehicle cost service unavailable"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	executorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Executor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("executor_user_id", executorUserID), slog.String("type", string(req.Type)))
	logger.Info("Received request to create transaction")

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), req, executorUserID)
	if err != nil {
		respondTransactionError(c, logger, err)
		return
	}

	logger.Info("Transaction created successfully", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		respondTransactionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists transactions filtered by account, vehicle, client or type, newest first
// @Tags transactions
// @Produce  json
// @Param   accountID query string false "Filter by account"
// @Param   vehicleID query string false "Filter by vehicle"
// @Param   clientID query string false "Filter by client"
// @Param   type query string false "Filter by transaction type"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondTransactionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Updates descriptive fields in place; changing an effect-bearing field reverts the old balance effect and applies the new one
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "No operate permission on the account's branch"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 502 {object} map[string]string "Vehicle cost service unavailable"
// @Security BearerAuth
// @Router /transactions/{id} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	executorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Executor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID), slog.String("executor_user_id", executorUserID))
	logger.Info("Received request to update transaction")

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req, executorUserID)
	if err != nil {
		respondTransactionError(c, logger, err)
		return
	}

	logger.Info("Transaction updated successfully")
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Reverts the transaction's balance effect and removes the record
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "No operate permission on the account's branch"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 502 {object} map[string]string "Vehicle cost service unavailable"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	executorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Executor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID), slog.String("executor_user_id", executorUserID))
	logger.Info("Received request to delete transaction")

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID, executorUserID); err != nil {
		respondTransactionError(c, logger, err)
		return
	}

	logger.Info("Transaction deleted successfully")
	c.Status(http.StatusNoContent)
}

// deleteTransactionsByVehicle godoc
// @Summary Delete all transactions of a vehicle
// @Description Reverts and removes every transaction tied to the vehicle in one atomic unit of work
// @Tags transactions
// @Produce  json
// @Param   id path string true "Vehicle ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "No operate permission on an affected branch"
// @Failure 502 {object} map[string]string "Vehicle cost service unavailable"
// @Security BearerAuth
// @Router /vehicles/{id}/transactions [delete]
func (h *transactionHandler) deleteTransactionsByVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vehicleID := c.Param("id")

	executorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Executor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("vehicle_id", vehicleID), slog.String("executor_user_id", executorUserID))
	logger.Info("Received request to delete vehicle transactions")

	if err := h.transactionService.DeleteTransactionsByVehicle(c.Request.Context(), vehicleID, executorUserID); err != nil {
		respondTransactionError(c, logger, err)
		return
	}

	logger.Info("Vehicle transactions deleted successfully")
	c.Status(http.StatusNoContent)
}
