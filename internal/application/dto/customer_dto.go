package dto

import "time"

// AddressRequest dirección enviada al crear o actualizar un cliente.
type AddressRequest struct {
	Street   string `json:"street" validate:"required"`
	Number   string `json:"number"`
	District string `json:"district"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
}

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name      string           `json:"name" validate:"required,max=200"`
	Document  string           `json:"document"`
	Email     string           `json:"email" validate:"omitempty,email"`
	Phone     string           `json:"phone"`
	Addresses []AddressRequest `json:"addresses" validate:"dive"`
}

// UpdateCustomerRequest actualización parcial; Addresses no nil reemplaza todas las direcciones.
type UpdateCustomerRequest struct {
	Name      *string           `json:"name" validate:"omitempty,min=1,max=200"`
	Document  *string           `json:"document"`
	Email     *string           `json:"email" validate:"omitempty,email"`
	Phone     *string           `json:"phone"`
	Addresses *[]AddressRequest `json:"addresses" validate:"omitempty,dive"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string            `json:"id"`
	CompanyID string            `json:"companyId"`
	Name      string            `json:"name"`
	Document  string            `json:"document"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Addresses []AddressResponse `json:"addresses"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"pagination"`
}
