package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
	SELECT id, company_id, code, name, description, price, cost, stock, minimum_stock,
	       unit, barcode, brand, fiscal_code, created_at, updated_at
	FROM products`

// stock no figura: solo SetStock lo escribe.
var productColumns = columns{
	"code":          "code",
	"name":          "name",
	"description":   "description",
	"price":         "price",
	"cost":          "cost",
	"minimum_stock": "minimum_stock",
	"unit":          "unit",
	"barcode":       "barcode",
	"brand":         "brand",
	"fiscal_code":   "fiscal_code",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row scanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Code, &p.Name, &p.Description, &p.Price, &p.Cost, &p.Stock,
		&p.MinimumStock, &p.Unit, &p.Barcode, &p.Brand, &p.FiscalCode, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste un nuevo producto. El stock inicial siempre es 0.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, code, name, description, price, cost, stock, minimum_stock,
		                      unit, barcode, brand, fiscal_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.CompanyID, product.Code, product.Name, product.Description,
		product.Price, product.Cost, product.MinimumStock, product.Unit, product.Barcode,
		product.Brand, product.FiscalCode, product.CreatedAt, product.UpdatedAt,
	)
	return writeErr("insert product", err)
}

// GetByID obtiene un producto de la empresa.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get product", productSelect+` WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get product for update", productSelect+` WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

// GetByCode obtiene un producto por empresa y código.
func (r *ProductRepo) GetByCode(ctx context.Context, companyID, code string) (*entity.Product, error) {
	return r.getOne(ctx, "get product by code", productSelect+` WHERE company_id = $1 AND code = $2`, companyID, code)
}

// FindMissing devuelve, en el orden recibido, los ids que no existen en la empresa.
func (r *ProductRepo) FindMissing(ctx context.Context, companyID string, ids []string) ([]string, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			valid = append(valid, id)
		}
	}
	found := make(map[string]bool, len(valid))
	if len(valid) > 0 {
		rows, err := r.q.Query(ctx,
			`SELECT id::text FROM products WHERE company_id = $1 AND id = ANY($2::uuid[])`, companyID, valid)
		if err != nil {
			return nil, fmt.Errorf("find missing products: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return nil, fmt.Errorf("scan product id: %w", err)
			}
			found[id] = true
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}
	var missing []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !found[id] && !seen[id] {
			missing = append(missing, id)
		}
		seen[id] = true
	}
	return missing, nil
}

// List lista productos por empresa con paginación, ordenados por código.
func (r *ProductRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	list, err := r.list(ctx, "list products",
		productSelect+` WHERE company_id = $1 ORDER BY code LIMIT $2 OFFSET $3`, companyID, limit, offset)
	return list, total, err
}

// Update aplica solo los campos presentes en el patch.
func (r *ProductRepo) Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	query, args, err := buildUpdate("products", productColumns, p, true, "company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		return false, err
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, writeErr("update product", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// SetStock escribe el stock calculado por el motor de Kardex.
func (r *ProductRepo) SetStock(ctx context.Context, companyID, id string, stock int) error {
	if stock < 0 {
		return fmt.Errorf("set stock: valor negativo %d: %w", stock, domain.ErrInvalidInput)
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, id, stock,
	)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("set stock: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete elimina un producto; con Kardex u órdenes que lo referencian devuelve ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, companyID, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return false, writeErr("delete product", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ListBelowMinimum productos con stock < minimum_stock. companyID vacío recorre todas las empresas.
func (r *ProductRepo) ListBelowMinimum(ctx context.Context, companyID string) ([]*entity.Product, error) {
	if companyID == "" {
		return r.list(ctx, "list low stock",
			productSelect+` WHERE stock < minimum_stock ORDER BY company_id, code`)
	}
	return r.list(ctx, "list low stock",
		productSelect+` WHERE company_id = $1 AND stock < minimum_stock ORDER BY code`, companyID)
}
