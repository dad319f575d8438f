package models

// Category mirrors a row of the categories table.
type Category struct {
	CategoryID string `json:"categoryID"` // Primary Key (UUID)
	Name       string `json:"name"`
	AuditFields
}

// Counterparty mirrors a row of the counterparties table.
type Counterparty struct {
	CounterpartyID string `json:"counterpartyID"` // Primary Key (UUID)
	Name           string `json:"name"`
	AuditFields
}

// Client mirrors a row of the clients table.
type Client struct {
	ClientID string `json:"clientID"` // Primary Key (UUID)
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	AuditFields
}

// Vehicle mirrors a row of the vehicles table.
type Vehicle struct {
	VehicleID string `json:"vehicleID"` // Primary Key (UUID)
	VIN       string `json:"vin"`
	Model     string `json:"model"`
	AuditFields
}
