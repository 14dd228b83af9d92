package entity

import "time"

// Supplier proveedor de la empresa. Code es único por empresa.
type Supplier struct {
	ID                   string
	CompanyID            string
	Name                 string
	Code                 string
	TradingName          string
	Email                string
	Phone                string
	NationalRegisterCode string
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
