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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierSelect = `
	SELECT id, company_id, name, code, trading_name, email, phone, national_register_code, active,
	       created_at, updated_at
	FROM suppliers`

var supplierColumns = columns{
	"name":                   "name",
	"code":                   "code",
	"trading_name":           "trading_name",
	"email":                  "email",
	"phone":                  "phone",
	"national_register_code": "national_register_code",
	"active":                 "active",
}

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(row scanner) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Code, &s.TradingName, &s.Email, &s.Phone,
		&s.NationalRegisterCode, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste el proveedor. Código repetido en la empresa devuelve ErrDuplicate.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, company_id, name, code, trading_name, email, phone, national_register_code,
		                       active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Name, s.Code, s.TradingName, s.Email, s.Phone, s.NationalRegisterCode,
		s.Active, s.CreatedAt, s.UpdatedAt,
	)
	return writeErr("insert supplier", err)
}

// GetByID obtiene un proveedor de la empresa.
func (r *SupplierRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Supplier, error) {
	if !isUUID(id) {
		return nil, nil
	}
	s, err := scanSupplier(r.q.QueryRow(ctx, supplierSelect+` WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// List proveedores por código.
func (r *SupplierRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM suppliers WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}
	rows, err := r.q.Query(ctx, supplierSelect+` WHERE company_id = $1 ORDER BY code LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

func (r *SupplierRepo) Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	query, args, err := buildUpdate("suppliers", supplierColumns, p, true, "company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		return false, err
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, writeErr("update supplier", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Delete con órdenes de compra asociadas devuelve ErrConflict.
func (r *SupplierRepo) Delete(ctx context.Context, companyID, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return false, writeErr("delete supplier", err)
	}
	return cmd.RowsAffected() > 0, nil
}
