package kardex

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

// Movement un cambio de stock solicitado al motor. Quantity siempre es positiva;
// el signo lo da Direction.
type Movement struct {
	CompanyID string
	ProductID string
	OrderID   *string
	Source    entity.MovementSource // vacío = manual
	Direction entity.MovementType
	Quantity  int
	UnitPrice decimal.Decimal
	Notes     string
}

// Result producto con el stock ya escrito y el registro de Kardex creado.
type Result struct {
	Product *entity.Product
	Entry   *entity.KardexEntry
}

// Engine único punto de escritura de products.stock. Todas las operaciones
// trabajan sobre el Store de la transacción del llamador.
type Engine struct {
	now func() time.Time
}

// NewEngine construye el motor de Kardex.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Apply bloquea la fila del producto (SELECT FOR UPDATE), calcula el stock resultante,
// lo escribe y agrega el registro de Kardex con los saldos recién escritos.
// Una salida que deje el stock negativo devuelve *domain.InsufficientStockError y no escribe nada.
func (e *Engine) Apply(ctx context.Context, store repository.Store, m Movement) (*Result, error) {
	if err := validateMovement(m); err != nil {
		return nil, err
	}

	product, err := store.Products().GetForUpdate(ctx, m.CompanyID, m.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	source := m.Source
	if source == "" {
		source = entity.SourceManual
	}

	before := product.Stock
	after := before + m.Quantity
	if m.Direction == entity.MovementOutbound {
		after = before - m.Quantity
	}
	if after > entity.MaxStock {
		return nil, domain.NewValidationError("quantity")
	}
	if after < 0 {
		return nil, &domain.InsufficientStockError{
			ProductID: product.ID,
			Current:   before,
			Requested: m.Quantity,
			Shortage:  -after,
		}
	}

	if err := store.Products().SetStock(ctx, m.CompanyID, product.ID, after); err != nil {
		return nil, err
	}
	product.Stock = after

	entry := &entity.KardexEntry{
		ID:           uuid.New().String(),
		CompanyID:    m.CompanyID,
		ProductID:    product.ID,
		OrderID:      m.OrderID,
		MovementType: m.Direction,
		Source:       source,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		StockBefore:  before,
		StockAfter:   after,
		MovementDate: e.now(),
		Notes:        m.Notes,
		ProductCode:  product.Code,
		ProductName:  product.Name,
	}
	if err := store.Kardex().Create(ctx, entry); err != nil {
		return nil, err
	}
	return &Result{Product: product, Entry: entry}, nil
}

// ApplyAll aplica los movimientos ordenados por producto para que dos transacciones
// concurrentes bloqueen las filas en el mismo orden. Se detiene en el primer error.
func (e *Engine) ApplyAll(ctx context.Context, store repository.Store, movements []Movement) ([]*Result, error) {
	ordered := make([]Movement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ProductID < ordered[j].ProductID
	})

	results := make([]*Result, 0, len(ordered))
	for _, m := range ordered {
		res, err := e.Apply(ctx, store, m)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// ReverseOrder devuelve al stock el efecto de los movimientos que generó la orden
// (inverso de cada uno) y luego los borra. Los movimientos manuales etiquetados con la
// orden no se tocan. Los inversos pasan por ApplyAll, con el mismo orden de bloqueo que
// la creación. Cancelar, editar y borrar órdenes pasan por aquí.
func (e *Engine) ReverseOrder(ctx context.Context, store repository.Store, companyID, orderID string) ([]*Result, error) {
	entries, err := store.Kardex().ListOrderMovements(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}

	movements := make([]Movement, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		movements = append(movements, Movement{
			CompanyID: companyID,
			ProductID: entry.ProductID,
			OrderID:   &orderID,
			Source:    entity.SourceOrder,
			Direction: entry.MovementType.Inverse(),
			Quantity:  entry.Quantity,
			UnitPrice: entry.UnitPrice,
			Notes:     "reversión",
		})
	}
	results, err := e.ApplyAll(ctx, store, movements)
	if err != nil {
		return nil, fmt.Errorf("revertir movimientos de la orden %s: %w", orderID, err)
	}

	if _, err := store.Kardex().DeleteOrderMovements(ctx, companyID, orderID); err != nil {
		return nil, err
	}
	return results, nil
}

func validateMovement(m Movement) error {
	var fields []string
	if m.CompanyID == "" {
		fields = append(fields, "companyId")
	}
	if m.ProductID == "" {
		fields = append(fields, "productId")
	}
	if !m.Direction.Valid() {
		fields = append(fields, "movementType")
	}
	if m.Quantity <= 0 {
		fields = append(fields, "quantity")
	}
	if m.UnitPrice.IsNegative() {
		fields = append(fields, "unitPrice")
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}
