package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

const serviceOrderSelect = `
	SELECT id, company_id, order_number, status, customer_id, items, notes, message, created_at, updated_at
	FROM service_orders`

var serviceOrderColumns = columns{
	"status":  "status",
	"items":   "items",
	"notes":   "notes",
	"message": "message",
}

// ServiceOrderRepo órdenes de servicio sobre PostgreSQL.
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

func scanServiceOrder(row scanner) (*entity.ServiceOrder, error) {
	var o entity.ServiceOrder
	var status string
	err := row.Scan(&o.ID, &o.CompanyID, &o.OrderNumber, &status, &o.CustomerID, &o.Items, &o.Notes,
		&o.Message, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = entity.ServiceOrderStatus(status)
	return &o, nil
}

// Create persiste la orden; items vacío se guarda como arreglo JSON vacío.
func (r *ServiceOrderRepo) Create(ctx context.Context, o *entity.ServiceOrder) error {
	var items any
	if len(o.Items) > 0 {
		items = string(o.Items)
	}
	query := `
		INSERT INTO service_orders (id, company_id, order_number, status, customer_id, items, notes, message,
		                            created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6::jsonb, '[]'::jsonb), $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.OrderNumber, string(o.Status), o.CustomerID, items, o.Notes, o.Message,
		o.CreatedAt, o.UpdatedAt,
	)
	return writeErr("insert service order", err)
}

func (r *ServiceOrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.ServiceOrder, error) {
	if !isUUID(id) {
		return nil, nil
	}
	o, err := scanServiceOrder(r.q.QueryRow(ctx, serviceOrderSelect+` WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service order: %w", err)
	}
	return o, nil
}

func (r *ServiceOrderRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.ServiceOrder, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM service_orders WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count service orders: %w", err)
	}
	rows, err := r.q.Query(ctx,
		serviceOrderSelect+` WHERE company_id = $1 ORDER BY order_number DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list service orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceOrder
	for rows.Next() {
		o, err := scanServiceOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan service order: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// Update items llega como json.RawMessage y se envía como texto JSON.
func (r *ServiceOrderRepo) Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	if v, ok := p.Get("items"); ok {
		if raw, isRaw := v.(json.RawMessage); isRaw {
			p.Set("items", string(raw))
		}
	}
	query, args, err := buildUpdate("service_orders", serviceOrderColumns, p, true, "company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		return false, err
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, writeErr("update service order", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ServiceOrderRepo) Delete(ctx context.Context, companyID, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM service_orders WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return false, writeErr("delete service order", err)
	}
	return cmd.RowsAffected() > 0, nil
}
