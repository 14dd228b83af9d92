package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesOrderSelect = `
	SELECT id, company_id, order_number, status, customer_id, shipping_address_id, billing_address_id,
	       total_amount, currency, order_date, salesperson, notes, created_at, updated_at
	FROM sales_orders`

// SalesOrderRepo órdenes de venta e ítems sobre PostgreSQL.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

func scanSalesOrder(row scanner) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	var status string
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.OrderNumber, &status, &o.CustomerID, &o.ShippingAddressID, &o.BillingAddressID,
		&o.TotalAmount, &o.Currency, &o.OrderDate, &o.Salesperson, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = entity.SalesOrderStatus(status)
	return &o, nil
}

// Create inserta la cabecera. El índice único (company_id, order_number) produce ErrDuplicate.
func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, company_id, order_number, status, customer_id, shipping_address_id,
		                          billing_address_id, total_amount, currency, order_date, salesperson, notes,
		                          created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.OrderNumber, string(o.Status), o.CustomerID, o.ShippingAddressID,
		o.BillingAddressID, o.TotalAmount, o.Currency, o.OrderDate, o.Salesperson, o.Notes,
		o.CreatedAt, o.UpdatedAt,
	)
	return writeErr("insert sales order", err)
}

// CreateItem inserta una línea de la orden.
func (r *SalesOrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, location) VALUES ($1, $2, $3, $4, $5, $6)`,
		it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.Location,
	)
	return writeErr("insert order item", err)
}

func (r *SalesOrderRepo) items(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_price, i.location, p.code, p.name
		FROM order_items i JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1 ORDER BY p.code`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Location,
			&it.ProductCode, &it.ProductName); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *SalesOrderRepo) get(ctx context.Context, query, companyID, id string) (*entity.SalesOrder, error) {
	if !isUUID(id) {
		return nil, nil
	}
	o, err := scanSalesOrder(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID obtiene la orden con sus ítems.
func (r *SalesOrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, salesOrderSelect+` WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetForUpdate como GetByID pero bloquea la cabecera.
func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, salesOrderSelect+` WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

// List órdenes más recientes primero, cada una con sus ítems.
func (r *SalesOrderRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.SalesOrder, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM sales_orders WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales orders: %w", err)
	}
	rows, err := r.q.Query(ctx,
		salesOrderSelect+` WHERE company_id = $1 ORDER BY created_at DESC, order_number DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales orders: %w", err)
	}
	var list []*entity.SalesOrder
	for rows.Next() {
		o, err := scanSalesOrder(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	// Los ítems se cargan después de cerrar el cursor: una tx no admite dos consultas abiertas.
	for _, o := range list {
		if o.Items, err = r.items(ctx, o.ID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// UpdateHeader reescribe la cabecera (no los ítems).
func (r *SalesOrderRepo) UpdateHeader(ctx context.Context, o *entity.SalesOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales_orders SET order_number = $3, status = $4, customer_id = $5, shipping_address_id = $6,
		       billing_address_id = $7, total_amount = $8, currency = $9, order_date = $10, salesperson = $11,
		       notes = $12, updated_at = $13
		WHERE company_id = $1 AND id = $2`,
		o.CompanyID, o.ID, o.OrderNumber, string(o.Status), o.CustomerID, o.ShippingAddressID,
		o.BillingAddressID, o.TotalAmount, o.Currency, o.OrderDate, o.Salesperson, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return writeErr("update sales order", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, companyID, id string, status entity.SalesOrderStatus) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales_orders SET status = $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, id, string(status))
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems borra las líneas de la orden.
func (r *SalesOrderRepo) DeleteItems(ctx context.Context, orderID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}

// Delete borra la cabecera; si aún tiene ítems la FK devuelve ErrConflict.
func (r *SalesOrderRepo) Delete(ctx context.Context, companyID, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales_orders WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return writeErr("delete sales order", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LastOrderNumber mayor número de orden puramente numérico ("" si no hay).
func (r *SalesOrderRepo) LastOrderNumber(ctx context.Context, companyID string) (string, error) {
	var last string
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(CASE WHEN order_number ~ '^[0-9]{1,18}$' THEN order_number::bigint END)::text, '')
		FROM sales_orders WHERE company_id = $1`, companyID).Scan(&last)
	if err != nil {
		return "", fmt.Errorf("last order number: %w", err)
	}
	return last, nil
}
