package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	portssvc "github.com/caravel-trade/caravel-backend/internal/core/ports/services"
	"github.com/caravel-trade/caravel-backend/internal/dto"
	"github.com/caravel-trade/caravel-backend/internal/middleware"
)

func newAuditFields(userID string) domain.AuditFields {
	now := time.Now().UTC()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// categoryService manages transaction categories.
type categoryService struct {
	repo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		AuditFields: newAuditFields(userID),
	}
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.repo.FindCategoryByID(ctx, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	return s.repo.DeleteCategory(ctx, categoryID)
}

// counterpartyService manages counterparties.
type counterpartyService struct {
	repo portsrepo.CounterpartyRepositoryFacade
}

// NewCounterpartyService creates a new counterparty service.
func NewCounterpartyService(repo portsrepo.CounterpartyRepositoryFacade) portssvc.CounterpartySvcFacade {
	return &counterpartyService{repo: repo}
}

func (s *counterpartyService) CreateCounterparty(ctx context.Context, req dto.CreateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	counterparty := domain.Counterparty{
		CounterpartyID: uuid.NewString(),
		Name:           req.Name,
		AuditFields:    newAuditFields(userID),
	}
	if err := s.repo.SaveCounterparty(ctx, counterparty); err != nil {
		return nil, err
	}
	return &counterparty, nil
}

func (s *counterpartyService) GetCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	return s.repo.FindCounterpartyByID(ctx, counterpartyID)
}

func (s *counterpartyService) ListCounterparties(ctx context.Context) ([]domain.Counterparty, error) {
	return s.repo.ListCounterparties(ctx)
}

// clientService manages clients.
type clientService struct {
	repo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service.
func NewClientService(repo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientService{repo: repo}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error) {
	client := domain.Client{
		ClientID:    uuid.NewString(),
		Name:        req.Name,
		Phone:       req.Phone,
		AuditFields: newAuditFields(userID),
	}
	if err := s.repo.SaveClient(ctx, client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.repo.FindClientByID(ctx, clientID)
}

// ImportClientsFromExcel reads the workbook's first sheet and creates a client
// per data row. Column A is the name, column B an optional phone; the first
// row is treated as a header and rows without a name are skipped.
func (s *clientService) ImportClientsFromExcel(ctx context.Context, r io.Reader, creatorUserID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("%w: not a readable Excel workbook", apperrors.ErrValidation)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	imported := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		client := domain.Client{
			ClientID:    uuid.NewString(),
			Name:        strings.TrimSpace(row[0]),
			AuditFields: newAuditFields(creatorUserID),
		}
		if len(row) > 1 {
			client.Phone = strings.TrimSpace(row[1])
		}
		if err := s.repo.SaveClient(ctx, client); err != nil {
			return imported, fmt.Errorf("row %d: %w", i+1, err)
		}
		imported++
	}

	logger.Info("Clients imported from workbook", "count", imported)
	return imported, nil
}

func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.repo.ListClients(ctx)
}

// vehicleService manages vehicles.
type vehicleService struct {
	repo portsrepo.VehicleRepositoryFacade
}

// NewVehicleService creates a new vehicle service.
func NewVehicleService(repo portsrepo.VehicleRepositoryFacade) portssvc.VehicleSvcFacade {
	return &vehicleService{repo: repo}
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req dto.CreateVehicleRequest, userID string) (*domain.Vehicle, error) {
	vehicle := domain.Vehicle{
		VehicleID:   uuid.NewString(),
		VIN:         req.VIN,
		Model:       req.Model,
		AuditFields: newAuditFields(userID),
	}
	if err := s.repo.SaveVehicle(ctx, vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (s *vehicleService) GetVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	return s.repo.FindVehicleByID(ctx, vehicleID)
}

func (s *vehicleService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.repo.ListVehicles(ctx)
}
