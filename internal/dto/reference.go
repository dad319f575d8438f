package dto

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCounterpartyRequest is the payload for creating a counterparty.
type CreateCounterpartyRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateClientRequest is the payload for creating a client.
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// CreateVehicleRequest is the payload for creating a vehicle.
type CreateVehicleRequest struct {
	VIN   string `json:"vin" binding:"required"`
	Model string `json:"model"`
}
