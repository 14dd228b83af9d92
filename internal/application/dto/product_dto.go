package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock entra por el Kardex.
type CreateProductRequest struct {
	Code         string          `json:"code" validate:"required,max=60"`
	Name         string          `json:"name" validate:"required,max=200"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	InitialStock int             `json:"stock" validate:"min=0,max=1000000000"`
	MinimumStock int             `json:"minimumStock" validate:"min=0,max=1000000000"`
	Unit         string          `json:"unit"`
	Barcode      string          `json:"barcode"`
	Brand        string          `json:"brand"`
	FiscalCode   string          `json:"fiscalCode"`
}

// UpdateProductRequest actualización parcial (sin stock; el stock cambia vía /stock o el Kardex).
type UpdateProductRequest struct {
	Code         *string          `json:"code" validate:"omitempty,min=1,max=60"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Cost         *decimal.Decimal `json:"cost"`
	MinimumStock *int             `json:"minimumStock" validate:"omitempty,min=0,max=1000000000"`
	Unit         *string          `json:"unit"`
	Barcode      *string          `json:"barcode"`
	Brand        *string          `json:"brand"`
	FiscalCode   *string          `json:"fiscalCode"`
}

// AdjustStockRequest ajuste directo de stock: Quantity con signo (positivo entrada, negativo salida).
type AdjustStockRequest struct {
	Quantity  int             `json:"quantity" validate:"required,min=-1000000000,max=1000000000"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Notes     string          `json:"notes"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"companyId"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Stock        int             `json:"stock"`
	MinimumStock int             `json:"minimumStock"`
	Unit         string          `json:"unit"`
	Barcode      string          `json:"barcode"`
	Brand        string          `json:"brand"`
	FiscalCode   string          `json:"fiscalCode"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"pagination"`
}

// StockAdjustmentResponse resultado de un ajuste de stock.
type StockAdjustmentResponse struct {
	Product ProductResponse     `json:"product"`
	Entry   KardexEntryResponse `json:"movement"`
}

// LowStockItem producto por debajo del stock mínimo.
type LowStockItem struct {
	ProductID    string `json:"productId"`
	CompanyID    string `json:"companyId"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	MinimumStock int    `json:"minimumStock"`
	Missing      int    `json:"missing"`
}
