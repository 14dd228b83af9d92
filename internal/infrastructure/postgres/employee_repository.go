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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeSelect = `
	SELECT id, company_id, name, username, email, password_hash, role, status, active, access, sector,
	       created_at, updated_at
	FROM employees`

var employeeColumns = columns{
	"name":          "name",
	"email":         "email",
	"password_hash": "password_hash",
	"role":          "role",
	"status":        "status",
	"active":        "active",
	"access":        "access",
	"sector":        "sector",
}

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func scanEmployee(row scanner) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.CompanyID, &e.Name, &e.Username, &e.Email, &e.PasswordHash, &e.Role,
		&e.Status, &e.Active, &e.Access, &e.Sector, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// Create persiste un nuevo empleado. Username repetido (en cualquier empresa) devuelve ErrDuplicate.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (id, company_id, name, username, email, password_hash, role, status, active,
		                       access, sector, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.Name, e.Username, e.Email, e.PasswordHash, e.Role, e.Status, e.Active,
		e.Access, e.Sector, e.CreatedAt, e.UpdatedAt,
	)
	return writeErr("insert employee", err)
}

// GetByID obtiene un empleado de la empresa.
func (r *EmployeeRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, "get employee", employeeSelect+` WHERE company_id = $1 AND id = $2`, companyID, id)
}

// FindByLogin busca por username o email; si ambos coinciden gana el username.
func (r *EmployeeRepo) FindByLogin(ctx context.Context, login string) (*entity.Employee, error) {
	return r.getOne(ctx, "find employee by login",
		employeeSelect+` WHERE username = $1 OR (email <> '' AND email = $1) ORDER BY (username = $1) DESC, created_at LIMIT 1`,
		login)
}

// List empleados de la empresa por username.
func (r *EmployeeRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Employee, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM employees WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}
	rows, err := r.q.Query(ctx, employeeSelect+` WHERE company_id = $1 ORDER BY username LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

func (r *EmployeeRepo) Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	query, args, err := buildUpdate("employees", employeeColumns, p, true, "company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		return false, err
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, writeErr("update employee", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, companyID, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM employees WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return false, writeErr("delete employee", err)
	}
	return cmd.RowsAffected() > 0, nil
}
