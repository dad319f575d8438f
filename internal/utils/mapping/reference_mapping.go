package mapping

import (
	"github.com/caravel-trade/caravel-backend/internal/core/domain"
	"github.com/caravel-trade/caravel-backend/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCounterparty converts a domain Counterparty to a model Counterparty
func ToModelCounterparty(d domain.Counterparty) models.Counterparty {
	return models.Counterparty{
		CounterpartyID: d.CounterpartyID,
		Name:           d.Name,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCounterparty converts a model Counterparty to a domain Counterparty
func ToDomainCounterparty(m models.Counterparty) domain.Counterparty {
	return domain.Counterparty{
		CounterpartyID: m.CounterpartyID,
		Name:           m.Name,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		Name:        d.Name,
		Phone:       d.Phone,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		Name:        m.Name,
		Phone:       m.Phone,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelVehicle converts a domain Vehicle to a model Vehicle
func ToModelVehicle(d domain.Vehicle) models.Vehicle {
	return models.Vehicle{
		VehicleID:   d.VehicleID,
		VIN:         d.VIN,
		Model:       d.Model,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVehicle converts a model Vehicle to a domain Vehicle
func ToDomainVehicle(m models.Vehicle) domain.Vehicle {
	return domain.Vehicle{
		VehicleID:   m.VehicleID,
		VIN:         m.VIN,
		Model:       m.Model,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
