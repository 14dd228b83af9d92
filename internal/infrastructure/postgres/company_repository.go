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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

var companyColumns = columns{
	"name": "name",
	"logo": "logo",
	"icon": "icon",
}

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO companies (id, name, logo, icon, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Logo, c.Icon, c.CreatedAt, c.UpdatedAt,
	)
	return writeErr("insert company", err)
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var c entity.Company
	err := r.q.QueryRow(ctx,
		`SELECT id, name, logo, icon, created_at, updated_at FROM companies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Logo, &c.Icon, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update aplica nombre, logo y/o icono.
func (r *CompanyRepo) Update(ctx context.Context, id string, p *patch.Patch) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	query, args, err := buildUpdate("companies", companyColumns, p, true, "id = $1", id)
	if err != nil {
		return false, err
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, writeErr("update company", err)
	}
	return cmd.RowsAffected() > 0, nil
}
