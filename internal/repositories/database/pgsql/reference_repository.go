package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caravel-trade/caravel-backend/internal/apperrors"
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	portsrepo "github.com/caravel-trade/caravel-backend/internal/core/ports/repositories"
	"github.com/caravel-trade/caravel-backend/internal/models"
	"github.com/caravel-trade/caravel-backend/internal/utils/mapping"
)

type PgxCounterpartyRepository struct {
	BaseRepository
}

// newPgxCounterpartyRepository creates a new repository for counterparty data.
func newPgxCounterpartyRepository(pool *pgxpool.Pool) portsrepo.CounterpartyRepositoryFacade {
	return &PgxCounterpartyRepository{BaseRepository: BaseRepository{db: pool}}
}

var _ portsrepo.CounterpartyRepositoryFacade = (*PgxCounterpartyRepository)(nil)

// SaveCounterparty inserts a new counterparty.
func (r *PgxCounterpartyRepository) SaveCounterparty(ctx context.Context, counterparty domain.Counterparty) error {
	m := mapping.ToModelCounterparty(counterparty)

	query := `
		INSERT INTO counterparties (counterparty_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query, m.CounterpartyID, m.Name, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: counterparty %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save counterparty %s: %w", m.CounterpartyID, err)
	}
	return nil
}

// FindCounterpartyByID retrieves a counterparty by its ID.
func (r *PgxCounterpartyRepository) FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	query := `
		SELECT counterparty_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM counterparties
		WHERE counterparty_id = $1;
	`
	var m models.Counterparty
	err := r.db.QueryRow(ctx, query, counterpartyID).Scan(
		&m.CounterpartyID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: counterparty %s", apperrors.ErrNotFound, counterpartyID)
		}
		return nil, fmt.Errorf("failed to find counterparty by ID %s: %w", counterpartyID, err)
	}

	d := mapping.ToDomainCounterparty(m)
	return &d, nil
}

// ListCounterparties retrieves all counterparties ordered by name.
func (r *PgxCounterpartyRepository) ListCounterparties(ctx context.Context) ([]domain.Counterparty, error) {
	query := `
		SELECT counterparty_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM counterparties
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query counterparties: %w", err)
	}
	defer rows.Close()

	counterparties := []domain.Counterparty{}
	for rows.Next() {
		var m models.Counterparty
		if err := rows.Scan(&m.CounterpartyID, &m.Name, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan counterparty row: %w", err)
		}
		counterparties = append(counterparties, mapping.ToDomainCounterparty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counterparty rows: %w", err)
	}
	return counterparties, nil
}

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository: BaseRepository{db: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)

	query := `
		INSERT INTO clients (client_id, name, phone, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query, m.ClientID, m.Name, m.Phone, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: client with ID %s already exists", apperrors.ErrDuplicate, m.ClientID)
		}
		return fmt.Errorf("failed to save client %s: %w", m.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT client_id, name, phone, created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		WHERE client_id = $1;
	`
	var m models.Client
	err := r.db.QueryRow(ctx, query, clientID).Scan(
		&m.ClientID, &m.Name, &m.Phone, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}

	d := mapping.ToDomainClient(m)
	return &d, nil
}

// ListClients retrieves all clients ordered by name.
func (r *PgxClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	query := `
		SELECT client_id, name, phone, created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		var m models.Client
		if err := rows.Scan(&m.ClientID, &m.Name, &m.Phone, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, mapping.ToDomainClient(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

type PgxVehicleRepository struct {
	BaseRepository
}

// newPgxVehicleRepository creates a new repository for vehicle data.
func newPgxVehicleRepository(pool *pgxpool.Pool) portsrepo.VehicleRepositoryFacade {
	return &PgxVehicleRepository{BaseRepository: BaseRepository{db: pool}}
}

var _ portsrepo.VehicleRepositoryFacade = (*PgxVehicleRepository)(nil)

// SaveVehicle inserts a new vehicle.
func (r *PgxVehicleRepository) SaveVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	m := mapping.ToModelVehicle(vehicle)

	query := `
		INSERT INTO vehicles (vehicle_id, vin, model, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query, m.VehicleID, m.VIN, m.Model, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: vehicle with VIN %s already exists", apperrors.ErrDuplicate, m.VIN)
		}
		return fmt.Errorf("failed to save vehicle %s: %w", m.VehicleID, err)
	}
	return nil
}

// FindVehicleByID retrieves a vehicle by its ID.
func (r *PgxVehicleRepository) FindVehicleByID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	query := `
		SELECT vehicle_id, vin, model, created_at, created_by, last_updated_at, last_updated_by
		FROM vehicles
		WHERE vehicle_id = $1;
	`
	var m models.Vehicle
	err := r.db.QueryRow(ctx, query, vehicleID).Scan(
		&m.VehicleID, &m.VIN, &m.Model, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: vehicle %s", apperrors.ErrNotFound, vehicleID)
		}
		return nil, fmt.Errorf("failed to find vehicle by ID %s: %w", vehicleID, err)
	}

	d := mapping.ToDomainVehicle(m)
	return &d, nil
}

// ListVehicles retrieves all vehicles, newest first.
func (r *PgxVehicleRepository) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	query := `
		SELECT vehicle_id, vin, model, created_at, created_by, last_updated_at, last_updated_by
		FROM vehicles
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		var m models.Vehicle
		if err := rows.Scan(&m.VehicleID, &m.VIN, &m.Model, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, mapping.ToDomainVehicle(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicle rows: %w", err)
	}
	return vehicles, nil
}
