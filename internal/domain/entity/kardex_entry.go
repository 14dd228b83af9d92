package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType dirección de un movimiento de Kardex.
type MovementType string

// Tipos de movimiento.
const (
	MovementInbound  MovementType = "inbound"
	MovementOutbound MovementType = "outbound"
)

// Valid indica si el tipo es uno de los soportados.
func (t MovementType) Valid() bool {
	return t == MovementInbound || t == MovementOutbound
}

// Inverse devuelve la dirección contraria (usada para compensaciones).
func (t MovementType) Inverse() MovementType {
	if t == MovementInbound {
		return MovementOutbound
	}
	return MovementInbound
}

// MovementSource quién generó el movimiento. Solo los de origen "order" se revierten
// al editar, cancelar o borrar la orden; los manuales etiquetados con ella se conservan.
type MovementSource string

// Orígenes de movimiento.
const (
	SourceOrder  MovementSource = "order"
	SourceManual MovementSource = "manual"
)

// MaxStock tope de products.stock (columna INTEGER).
const MaxStock = 1<<31 - 1

// KardexEntry registro inmutable del libro de movimientos de stock.
type KardexEntry struct {
	ID           string
	CompanyID    string
	ProductID    string
	OrderID      *string // orden de venta, de compra o nil para movimientos manuales
	MovementType MovementType
	Source       MovementSource
	Quantity     int
	UnitPrice    decimal.Decimal
	StockBefore  int
	StockAfter   int
	MovementDate time.Time
	Notes        string

	// Proyección (solo lectura).
	OrderNumber string
	ProductCode string
	ProductName string
}
