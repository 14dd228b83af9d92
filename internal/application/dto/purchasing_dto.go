package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea de una orden de compra.
type PurchaseOrderItemRequest struct {
	ProductID string           `json:"productId" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0,lte=1000000000"`
	UnitCost  *decimal.Decimal `json:"unitCost" validate:"required"`
}

// CreatePurchaseOrderRequest body para POST /purchase/create.
type CreatePurchaseOrderRequest struct {
	OrderNumber          string                     `json:"orderNumber" validate:"required"`
	SupplierID           string                     `json:"supplierId" validate:"required"`
	TotalCost            *decimal.Decimal           `json:"totalCost" validate:"required"`
	Currency             string                     `json:"currency" validate:"required"`
	OrderDate            string                     `json:"orderDate" validate:"required,isodate"`
	ExpectedDeliveryDate string                     `json:"expectedDeliveryDate" validate:"omitempty,isodate"`
	Buyer                string                     `json:"buyer" validate:"required"`
	Notes                string                     `json:"notes"`
	OrderItems           []PurchaseOrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
}

// UpdatePurchaseOrderRequest solo estado y notas son modificables.
type UpdatePurchaseOrderRequest struct {
	Status *string `json:"orderStatus"`
	Notes  *string `json:"notes"`
}

// PurchaseOrderItemResponse línea con datos del producto.
type PurchaseOrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductCode string          `json:"productCode"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
}

// PurchaseOrderResponse orden de compra con ítems.
type PurchaseOrderResponse struct {
	ID                   string                      `json:"id"`
	OrderNumber          string                      `json:"orderNumber"`
	Status               string                      `json:"orderStatus"`
	SupplierID           string                      `json:"supplierId"`
	SupplierName         string                      `json:"supplierName,omitempty"`
	TotalCost            decimal.Decimal             `json:"totalCost"`
	Currency             string                      `json:"currency"`
	OrderDate            time.Time                   `json:"orderDate"`
	ExpectedDeliveryDate *time.Time                  `json:"expectedDeliveryDate,omitempty"`
	Buyer                string                      `json:"buyer"`
	Notes                string                      `json:"notes"`
	Items                []PurchaseOrderItemResponse `json:"orderItems"`
	CreatedAt            time.Time                   `json:"createdAt"`
	UpdatedAt            time.Time                   `json:"updatedAt"`
}

// PurchaseOrderListResponse lista paginada de órdenes de compra.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"orders"`
	Page  PageResponse            `json:"pagination"`
}

// CreateInvoiceRequest body para POST /invoice/create.
type CreateInvoiceRequest struct {
	PurchaseOrderID string           `json:"order_id" validate:"required"`
	InvoiceNumber   string           `json:"invoice_number" validate:"required"`
	IssueDate       string           `json:"issue_date" validate:"omitempty,isodate"`
	TotalValue      *decimal.Decimal `json:"total_value"`
	Status          string           `json:"status"`
	Notes           string           `json:"notes"`
}

// InvoiceResponse una factura.
type InvoiceResponse struct {
	ID              string          `json:"id"`
	PurchaseOrderID string          `json:"orderId"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	IssueDate       time.Time       `json:"issueDate"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// UpdatedProductStock stock de un producto antes y después de la factura.
type UpdatedProductStock struct {
	ProductID     string `json:"productId"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	PreviousStock int    `json:"previousStock"`
	NewStock      int    `json:"newStock"`
	Quantity      int    `json:"quantityAdded"`
}

// InvoiceSummary totales del procesamiento.
type InvoiceSummary struct {
	ItemsProcessed int `json:"itemsProcessed"`
	TotalQuantity  int `json:"totalQuantity"`
}

// IssueInvoiceResponse resultado de POST /invoice/create.
type IssueInvoiceResponse struct {
	Invoice         InvoiceResponse       `json:"invoice"`
	UpdatedProducts []UpdatedProductStock `json:"updatedProducts"`
	KardexMovements []KardexEntryResponse `json:"kardexMovements"`
	Summary         InvoiceSummary        `json:"summary"`
}
