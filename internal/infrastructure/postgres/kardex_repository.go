package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

// order_number proviene de la orden de venta o de compra según a cuál apunte order_id.
const kardexSelect = `
	SELECT k.id, k.company_id, k.product_id, k.order_id, k.movement_type, k.source, k.quantity, k.unit_price,
	       k.stock_before, k.stock_after, k.movement_date, k.notes,
	       COALESCE(so.order_number, po.order_number, ''), p.code, p.name
	FROM kardex k
	JOIN products p ON p.id = k.product_id
	LEFT JOIN sales_orders so ON so.id = k.order_id
	LEFT JOIN purchase_orders po ON po.id = k.order_id`

// KardexRepo libro de movimientos sobre PostgreSQL. Solo INSERT y DELETE por orden.
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

// Create registra un movimiento.
func (r *KardexRepo) Create(ctx context.Context, e *entity.KardexEntry) error {
	query := `
		INSERT INTO kardex (id, company_id, product_id, order_id, movement_type, source, quantity, unit_price,
		                    stock_before, stock_after, movement_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.ProductID, e.OrderID, string(e.MovementType), string(e.Source), e.Quantity, e.UnitPrice,
		e.StockBefore, e.StockAfter, e.MovementDate, e.Notes,
	)
	return writeErr("insert kardex entry", err)
}

func (r *KardexRepo) list(ctx context.Context, query string, args ...any) ([]*entity.KardexEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list kardex: %w", err)
	}
	defer rows.Close()
	var list []*entity.KardexEntry
	for rows.Next() {
		var e entity.KardexEntry
		var movementType, source string
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.ProductID, &e.OrderID, &movementType, &source, &e.Quantity, &e.UnitPrice,
			&e.StockBefore, &e.StockAfter, &e.MovementDate, &e.Notes,
			&e.OrderNumber, &e.ProductCode, &e.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan kardex entry: %w", err)
		}
		e.MovementType = entity.MovementType(movementType)
		e.Source = entity.MovementSource(source)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListByProduct historial de un producto en orden de registro.
func (r *KardexRepo) ListByProduct(ctx context.Context, companyID, productID string) ([]*entity.KardexEntry, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	return r.list(ctx, kardexSelect+` WHERE k.company_id = $1 AND k.product_id = $2 ORDER BY k.seq`, companyID, productID)
}

// ListByOrder movimientos etiquetados con una orden.
func (r *KardexRepo) ListByOrder(ctx context.Context, companyID, orderID string) ([]*entity.KardexEntry, error) {
	if !isUUID(orderID) {
		return nil, nil
	}
	return r.list(ctx, kardexSelect+` WHERE k.company_id = $1 AND k.order_id = $2 ORDER BY k.seq`, companyID, orderID)
}

// ListOrderMovements movimientos generados por la orden, sin los manuales que la referencian.
func (r *KardexRepo) ListOrderMovements(ctx context.Context, companyID, orderID string) ([]*entity.KardexEntry, error) {
	if !isUUID(orderID) {
		return nil, nil
	}
	return r.list(ctx, kardexSelect+` WHERE k.company_id = $1 AND k.order_id = $2 AND k.source = 'order' ORDER BY k.seq`,
		companyID, orderID)
}

// DeleteOrderMovements borra los movimientos generados por la orden y devuelve cuántos eran.
func (r *KardexRepo) DeleteOrderMovements(ctx context.Context, companyID, orderID string) (int64, error) {
	if !isUUID(orderID) {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM kardex WHERE company_id = $1 AND order_id = $2 AND source = 'order'`,
		companyID, orderID)
	if err != nil {
		return 0, fmt.Errorf("delete kardex by order: %w", err)
	}
	return cmd.RowsAffected(), nil
}
