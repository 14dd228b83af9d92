package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateKardexMovementRequest body para POST /kardex/create (movimiento manual).
type CreateKardexMovementRequest struct {
	ProductID    string          `json:"productId" validate:"required"`
	OrderID      *string         `json:"orderId" validate:"omitempty,uuid"`
	MovementType string          `json:"movementType" validate:"required,oneof=inbound outbound"`
	Quantity     int             `json:"quantity" validate:"gt=0,lte=1000000000"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Notes        string          `json:"notes"`
}

// KardexEntryResponse un registro del Kardex.
type KardexEntryResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductCode  string          `json:"productCode,omitempty"`
	ProductName  string          `json:"productName,omitempty"`
	OrderID      *string         `json:"orderId"`
	OrderNumber  string          `json:"orderNumber,omitempty"`
	MovementType string          `json:"movementType"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	StockBefore  int             `json:"stockBefore"`
	StockAfter   int             `json:"stockAfter"`
	MovementDate time.Time       `json:"movementDate"`
	Notes        string          `json:"notes,omitempty"`
}

// KardexMovementResponse resultado de un movimiento manual.
type KardexMovementResponse struct {
	Movement KardexEntryResponse `json:"movement"`
	Product  ProductResponse     `json:"product"`
}
