package dto

import "time"

// CreateCompanyRequest body para POST /admin/create-company: empresa + primer administrador.
type CreateCompanyRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Logo          string `json:"logo" validate:"omitempty,url"`
	Icon          string `json:"icon" validate:"omitempty,url"`
	AdminName     string `json:"adminName" validate:"required"`
	AdminUsername string `json:"adminUsername" validate:"required,min=3,max=60"`
	AdminEmail    string `json:"adminEmail" validate:"omitempty,email"`
	AdminPassword string `json:"adminPassword" validate:"required,min=6"`
}

// UpdateCompanyRequest actualización parcial de la empresa del token.
type UpdateCompanyRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
	Logo *string `json:"logo" validate:"omitempty,url"`
	Icon *string `json:"icon" validate:"omitempty,url"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCompanyResponse empresa creada y su administrador.
type CreateCompanyResponse struct {
	Company CompanyResponse  `json:"company"`
	Admin   EmployeeResponse `json:"admin"`
}
