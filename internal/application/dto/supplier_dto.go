package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name                 string `json:"name" validate:"required"`
	Code                 string `json:"code" validate:"required"`
	TradingName          string `json:"trading_name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone" validate:"required"`
	NationalRegisterCode string `json:"national_register_code" validate:"required"`
	Active               *bool  `json:"active" validate:"required"`
}

// UpdateSupplierRequest actualización parcial de un proveedor.
type UpdateSupplierRequest struct {
	Name                 *string `json:"name" validate:"omitempty,min=1"`
	Code                 *string `json:"code" validate:"omitempty,min=1"`
	TradingName          *string `json:"trading_name"`
	Email                *string `json:"email" validate:"omitempty,email"`
	Phone                *string `json:"phone"`
	NationalRegisterCode *string `json:"national_register_code"`
	Active               *bool   `json:"active"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID                   string    `json:"id"`
	CompanyID            string    `json:"companyId"`
	Name                 string    `json:"name"`
	Code                 string    `json:"code"`
	TradingName          string    `json:"trading_name"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	NationalRegisterCode string    `json:"national_register_code"`
	Active               bool      `json:"active"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"pagination"`
}
