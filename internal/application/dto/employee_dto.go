package dto

import "time"

// CreateEmployeeRequest entrada para crear un empleado.
type CreateEmployeeRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=60"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin bodeguero vendedor"`
	Status   string `json:"status" validate:"omitempty,oneof=active away inactive"`
	Access   string `json:"access"`
	Sector   string `json:"sector"`
}

// UpdateEmployeeRequest actualización parcial de un empleado.
type UpdateEmployeeRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin bodeguero vendedor"`
	Access   *string `json:"access"`
	Sector   *string `json:"sector"`
}

// UpdateEmployeeStatusRequest body para PUT /employees/:id/status.
type UpdateEmployeeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active away inactive"`
}

// EmployeeStatusResponse estado actual de un empleado.
type EmployeeStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Active bool   `json:"active"`
}

// EmployeeResponse salida de un empleado (sin password).
type EmployeeResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Active    bool      `json:"active"`
	Access    string    `json:"access"`
	Sector    string    `json:"sector"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EmployeeListResponse lista paginada de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"pagination"`
}
