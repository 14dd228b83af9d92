package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder cabecera de una orden de venta. Cada ítem genera una salida en el Kardex.
type SalesOrder struct {
	ID                string
	CompanyID         string
	OrderNumber       string
	Status            SalesOrderStatus
	CustomerID        string
	ShippingAddressID *string
	BillingAddressID  *string
	TotalAmount       decimal.Decimal
	Currency          string
	OrderDate         time.Time
	Salesperson       string
	Notes             string
	Items             []OrderItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderItem línea de una orden de venta.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Location  string

	ProductCode string
	ProductName string
}

// SalesOrderDetail proyección completa: orden + cliente + direcciones.
type SalesOrderDetail struct {
	Order           *SalesOrder
	Customer        *Customer
	ShippingAddress *Address
	BillingAddress  *Address
}
