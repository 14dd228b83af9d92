package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderSelect = `
	SELECT po.id, po.company_id, po.order_number, po.status, po.supplier_id, po.total_cost, po.currency,
	       po.order_date, po.expected_delivery_date, po.buyer, po.notes, po.created_at, po.updated_at, s.name
	FROM purchase_orders po
	JOIN suppliers s ON s.id = po.supplier_id`

var purchaseOrderColumns = columns{
	"status": "status",
	"notes":  "notes",
}

// PurchaseOrderRepo órdenes de compra e ítems sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func scanPurchaseOrder(row scanner) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var status string
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.OrderNumber, &status, &o.SupplierID, &o.TotalCost, &o.Currency,
		&o.OrderDate, &o.ExpectedDeliveryDate, &o.Buyer, &o.Notes, &o.CreatedAt, &o.UpdatedAt, &o.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	o.Status = entity.PurchaseOrderStatus(status)
	return &o, nil
}

// Create inserta la cabecera de la orden de compra.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, company_id, order_number, status, supplier_id, total_cost, currency,
		                             order_date, expected_delivery_date, buyer, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.OrderNumber, string(o.Status), o.SupplierID, o.TotalCost, o.Currency,
		o.OrderDate, o.ExpectedDeliveryDate, o.Buyer, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	return writeErr("insert purchase order", err)
}

// CreateItem inserta una línea.
func (r *PurchaseOrderRepo) CreateItem(ctx context.Context, it *entity.PurchaseOrderItem) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO purchase_order_items (id, purchase_order_id, product_id, quantity, unit_cost) VALUES ($1, $2, $3, $4, $5)`,
		it.ID, it.PurchaseOrderID, it.ProductID, it.Quantity, it.UnitCost,
	)
	return writeErr("insert purchase order item", err)
}

func (r *PurchaseOrderRepo) items(ctx context.Context, orderID string) ([]entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.purchase_order_id, i.product_id, i.quantity, i.unit_cost, p.code, p.name
		FROM purchase_order_items i JOIN products p ON p.id = i.product_id
		WHERE i.purchase_order_id = $1 ORDER BY p.code`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ProductID, &it.Quantity, &it.UnitCost,
			&it.ProductCode, &it.ProductName); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query string, args ...any) (*entity.PurchaseOrder, error) {
	o, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID obtiene la orden con ítems y nombre del proveedor.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.PurchaseOrder, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.get(ctx, purchaseOrderSelect+` WHERE po.company_id = $1 AND po.id = $2`, companyID, id)
}

// GetForUpdate bloquea la cabecera de la orden.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.PurchaseOrder, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.get(ctx, purchaseOrderSelect+` WHERE po.company_id = $1 AND po.id = $2 FOR UPDATE OF po`, companyID, id)
}

// GetByOrderNumber busca por número dentro de la empresa.
func (r *PurchaseOrderRepo) GetByOrderNumber(ctx context.Context, companyID, orderNumber string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, purchaseOrderSelect+` WHERE po.company_id = $1 AND po.order_number = $2`, companyID, orderNumber)
}

// ExistsOrderNumber indica si el número ya está tomado en la empresa.
func (r *PurchaseOrderRepo) ExistsOrderNumber(ctx context.Context, companyID, orderNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM purchase_orders WHERE company_id = $1 AND order_number = $2)`,
		companyID, orderNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists purchase order number: %w", err)
	}
	return exists, nil
}

// List órdenes por número descendente.
func (r *PurchaseOrderRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM purchase_orders WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}
	rows, err := r.q.Query(ctx,
		purchaseOrderSelect+` WHERE po.company_id = $1 ORDER BY po.order_number DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, o := range list {
		if o.Items, err = r.items(ctx, o.ID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// Update aplica status y/o notes.
func (r *PurchaseOrderRepo) Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	query, args, err := buildUpdate("purchase_orders", purchaseOrderColumns, p, true, "company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		return false, err
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, writeErr("update purchase order", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// DeleteItems borra las líneas de la orden.
func (r *PurchaseOrderRepo) DeleteItems(ctx context.Context, purchaseOrderID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, purchaseOrderID); err != nil {
		return fmt.Errorf("delete purchase order items: %w", err)
	}
	return nil
}

// Delete con facturas asociadas la FK devuelve ErrConflict.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, companyID, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return false, writeErr("delete purchase order", err)
	}
	return cmd.RowsAffected() > 0, nil
}
