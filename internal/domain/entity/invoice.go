package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estado por defecto de una factura de compra recién registrada.
const InvoiceStatusPending = "pending"

// Invoice factura recibida contra una orden de compra. Su creación da entrada
// al stock de todos los ítems de la orden.
type Invoice struct {
	ID              string
	CompanyID       string
	PurchaseOrderID string
	InvoiceNumber   string
	IssueDate       time.Time
	TotalValue      decimal.Decimal
	Status          string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
