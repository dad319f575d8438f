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

// referenceHandler handles HTTP requests for the reference entities the
// ledger links to: categories, counterparties, clients and vehicles.
type referenceHandler struct {
	categoryService     portssvc.CategorySvcFacade
	counterpartyService portssvc.CounterpartySvcFacade
	clientService       portssvc.ClientSvcFacade
	vehicleService      portssvc.VehicleSvcFacade
}

// registerReferenceRoutes registers routes for the reference entities.
func registerReferenceRoutes(
	rg *gin.RouterGroup,
	categoryService portssvc.CategorySvcFacade,
	counterpartyService portssvc.CounterpartySvcFacade,
	clientService portssvc.ClientSvcFacade,
	vehicleService portssvc.VehicleSvcFacade,
) {
	h := &referenceHandler{
		categoryService:     categoryService,
		counterpartyService: counterpartyService,
		clientService:       clientService,
		vehicleService:      vehicleService,
	}

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("/:id", h.getCategory)
		categories.GET("", h.listCategories)
		categories.DELETE("/:id", h.deleteCategory)
	}

	counterparties := rg.Group("/counterparties")
	{
		counterparties.POST("", h.createCounterparty)
		counterparties.GET("/:id", h.getCounterparty)
		counterparties.GET("", h.listCounterparties)
	}

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.POST("/import", h.importClients)
		clients.GET("/:id", h.getClient)
		clients.GET("", h.listClients)
	}

	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.createVehicle)
		vehicles.GET("/:id", h.getVehicle)
		vehicles.GET("", h.listVehicles)
	}
}

func respondReferenceError(c *gin.Context, logger *slog.Logger, err error, what string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Reference operation failed", slog.String("entity", what), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process " + what})
	}
}

// createCategory godoc
// @Summary Create a category
// @Tags references
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} domain.Category
// @Security BearerAuth
// @Router /categories [post]
func (h *referenceHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req, userID)
	if err != nil {
		respondReferenceError(c, logger, err, "category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// getCategory godoc
// @Summary Get a category by ID
// @Tags references
// @Produce  json
// @Param   id path string true "Category ID"
// @Success 200 {object} domain.Category
// @Security BearerAuth
// @Router /categories/{id} [get]
func (h *referenceHandler) getCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReferenceError(c, logger, err, "category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// listCategories godoc
// @Summary List categories
// @Tags references
// @Produce  json
// @Success 200 {array} domain.Category
// @Security BearerAuth
// @Router /categories [get]
func (h *referenceHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondReferenceError(c, logger, err, "category")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// deleteCategory godoc
// @Summary Delete a category
// @Tags references
// @Produce  json
// @Param   id path string true "Category ID"
// @Success 204 "Deleted"
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *referenceHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondReferenceError(c, logger, err, "category")
		return
	}
	c.Status(http.StatusNoContent)
}

// createCounterparty godoc
// @Summary Create a counterparty
// @Tags references
// @Accept  json
// @Produce  json
// @Param   counterparty body dto.CreateCounterpartyRequest true "Counterparty details"
// @Success 201 {object} domain.Counterparty
// @Security BearerAuth
// @Router /counterparties [post]
func (h *referenceHandler) createCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	counterparty, err := h.counterpartyService.CreateCounterparty(c.Request.Context(), req, userID)
	if err != nil {
		respondReferenceError(c, logger, err, "counterparty")
		return
	}
	c.JSON(http.StatusCreated, counterparty)
}

// getCounterparty godoc
// @Summary Get a counterparty by ID
// @Tags references
// @Produce  json
// @Param   id path string true "Counterparty ID"
// @Success 200 {object} domain.Counterparty
// @Security BearerAuth
// @Router /counterparties/{id} [get]
func (h *referenceHandler) getCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	counterparty, err := h.counterpartyService.GetCounterpartyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReferenceError(c, logger, err, "counterparty")
		return
	}
	c.JSON(http.StatusOK, counterparty)
}

// listCounterparties godoc
// @Summary List counterparties
// @Tags references
// @Produce  json
// @Success 200 {array} domain.Counterparty
// @Security BearerAuth
// @Router /counterparties [get]
func (h *referenceHandler) listCounterparties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	counterparties, err := h.counterpartyService.ListCounterparties(c.Request.Context())
	if err != nil {
		respondReferenceError(c, logger, err, "counterparty")
		return
	}
	c.JSON(http.StatusOK, counterparties)
}

// createClient godoc
// @Summary Create a client
// @Tags references
// @Accept  json
// @Produce  json
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} domain.Client
// @Security BearerAuth
// @Router /clients [post]
func (h *referenceHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, userID)
	if err != nil {
		respondReferenceError(c, logger, err, "client")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// importClients godoc
// @Summary Import clients from an Excel workbook
// @Description Creates one client per data row of the uploaded .xlsx file (column A name, column B phone)
// @Tags references
// @Accept  mpfd
// @Produce  json
// @Param   file formData file true "Workbook (.xlsx)"
// @Success 200 {object} map[string]int
// @Failure 400 {object} map[string]string "Missing or unreadable workbook"
// @Security BearerAuth
// @Router /clients/import [post]
func (h *referenceHandler) importClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Workbook file is required"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	imported, err := h.clientService.ImportClientsFromExcel(c.Request.Context(), file, userID)
	if err != nil {
		respondReferenceError(c, logger, err, "client import")
		return
	}

	logger.Info("Client import finished", slog.Int("imported", imported))
	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// getClient godoc
// @Summary Get a client by ID
// @Tags references
// @Produce  json
// @Param   id path string true "Client ID"
// @Success 200 {object} domain.Client
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *referenceHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReferenceError(c, logger, err, "client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// listClients godoc
// @Summary List clients
// @Tags references
// @Produce  json
// @Success 200 {array} domain.Client
// @Security BearerAuth
// @Router /clients [get]
func (h *referenceHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		respondReferenceError(c, logger, err, "client")
		return
	}
	c.JSON(http.StatusOK, clients)
}

// createVehicle godoc
// @Summary Create a vehicle
// @Tags references
// @Accept  json
// @Produce  json
// @Param   vehicle body dto.CreateVehicleRequest true "Vehicle details"
// @Success 201 {object} domain.Vehicle
// @Security BearerAuth
// @Router /vehicles [post]
func (h *referenceHandler) createVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), req, userID)
	if err != nil {
		respondReferenceError(c, logger, err, "vehicle")
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// getVehicle godoc
// @Summary Get a vehicle by ID
// @Tags references
// @Produce  json
// @Param   id path string true "Vehicle ID"
// @Success 200 {object} domain.Vehicle
// @Security BearerAuth
// @Router /vehicles/{id} [get]
func (h *referenceHandler) getVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vehicle, err := h.vehicleService.GetVehicleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReferenceError(c, logger, err, "vehicle")
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// listVehicles godoc
// @Summary List vehicles
// @Tags references
// @Produce  json
// @Success 200 {array} domain.Vehicle
// @Security BearerAuth
// @Router /vehicles [get]
func (h *referenceHandler) listVehicles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context())
	if err != nil {
		respondReferenceError(c, logger, err, "vehicle")
		return
	}
	c.JSON(http.StatusOK, vehicles)
}
