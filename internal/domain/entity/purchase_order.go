package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder orden de compra a un proveedor. No mueve stock al crearse;
// el stock entra cuando se emite la factura.
type PurchaseOrder struct {
	ID                   string
	CompanyID            string
	OrderNumber          string
	Status               PurchaseOrderStatus
	SupplierID           string
	TotalCost            decimal.Decimal
	Currency             string
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	Buyer                string
	Notes                string
	Items                []PurchaseOrderItem
	CreatedAt            time.Time
	UpdatedAt            time.Time

	SupplierName string
}

// PurchaseOrderItem línea de una orden de compra.
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ProductID       string
	Quantity        int
	UnitCost        decimal.Decimal

	ProductCode string
	ProductName string
}
