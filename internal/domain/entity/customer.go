package entity

import "time"

// Customer representa un cliente de la empresa.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Document  string
	Email     string
	Phone     string
	Addresses []Address
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address dirección de un cliente (envío o facturación).
type Address struct {
	ID         string
	CustomerID string
	Street     string
	Number     string
	District   string
	City       string
	State      string
	ZipCode    string
}
