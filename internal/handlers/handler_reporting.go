package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	portssvc "github.com/caravel-trade/caravel-backend/internal/core/ports/services"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportingHandler handles report export requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes registers report export routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	rg.GET("/accounts/:id/statement", h.getAccountStatement)
}

// getAccountStatement godoc
// @Summary Download an account statement
// @Description Renders the account's balances and transaction history as an .xlsx workbook
// @Tags reporting
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   id path string true "Account ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/statement [get]
func (h *reportingHandler) getAccountStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	workbook, err := h.reportingService.BuildAccountStatement(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build account statement", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statement"})
		}
		return
	}

	fileName := fmt.Sprintf("statement_%s_%s.xlsx", accountID, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
