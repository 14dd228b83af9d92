package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de una empresa.
// Stock solo cambia a través del motor de Kardex.
type Product struct {
	ID           string
	CompanyID    string
	Code         string // código único por empresa
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal
	Stock        int
	MinimumStock int
	Unit         string
	Barcode      string
	Brand        string
	FiscalCode   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BelowMinimum indica si el stock actual está por debajo del mínimo configurado.
func (p *Product) BelowMinimum() bool {
	return p.Stock < p.MinimumStock
}
