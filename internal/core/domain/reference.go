package domain

// Category classifies transactions for reporting.
type Category struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	AuditFields
}

// Counterparty is an external party referenced by income/expense transactions.
type Counterparty struct {
	CounterpartyID string `json:"counterpartyID"`
	Name           string `json:"name"`
	AuditFields
}

// Client is a customer of the company.
type Client struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	AuditFields
}

// Vehicle identifies a traded vehicle. Its accumulated cost lives in the
// remote vehicle-cost service; the ledger only references it by id.
type Vehicle struct {
	VehicleID string `json:"vehicleID"`
	VIN       string `json:"vin"`
	Model     string `json:"model"`
	AuditFields
}
