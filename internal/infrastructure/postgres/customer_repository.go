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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerSelect = `
	SELECT id, company_id, name, document, email, phone, created_at, updated_at
	FROM customers`

const addressSelect = `
	SELECT id, customer_id, street, number, district, city, state, zip_code
	FROM addresses`

var customerColumns = columns{
	"name":     "name",
	"document": "document",
	"email":    "email",
	"phone":    "phone",
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row scanner) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Document, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanAddress(row scanner) (*entity.Address, error) {
	var a entity.Address
	if err := row.Scan(&a.ID, &a.CustomerID, &a.Street, &a.Number, &a.District, &a.City, &a.State, &a.ZipCode); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste el cliente y sus direcciones. Llamar dentro de una transacción.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, company_id, name, document, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.CompanyID, customer.Name, customer.Document, customer.Email, customer.Phone,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert customer", err)
	}
	return r.insertAddresses(ctx, customer.ID, customer.Addresses)
}

func (r *CustomerRepo) insertAddresses(ctx context.Context, customerID string, addresses []entity.Address) error {
	for _, a := range addresses {
		_, err := r.q.Exec(ctx, `
			INSERT INTO addresses (id, customer_id, street, number, district, city, state, zip_code)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			a.ID, customerID, a.Street, a.Number, a.District, a.City, a.State, a.ZipCode,
		)
		if err != nil {
			return writeErr("insert address", err)
		}
	}
	return nil
}

func (r *CustomerRepo) addresses(ctx context.Context, customerID string) ([]entity.Address, error) {
	rows, err := r.q.Query(ctx, addressSelect+` WHERE customer_id = $1 ORDER BY city, street, id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()
	var list []entity.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

// GetByID obtiene un cliente de la empresa con sus direcciones.
func (r *CustomerRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	if !isUUID(id) {
		return nil, nil
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, customerSelect+` WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if c.Addresses, err = r.addresses(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

// GetAddress dirección del cliente; nil si no le pertenece.
func (r *CustomerRepo) GetAddress(ctx context.Context, customerID, addressID string) (*entity.Address, error) {
	if !isUUID(customerID, addressID) {
		return nil, nil
	}
	a, err := scanAddress(r.q.QueryRow(ctx, addressSelect+` WHERE customer_id = $1 AND id = $2`, customerID, addressID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

// List lista clientes de la empresa con paginación.
func (r *CustomerRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM customers WHERE company_id = $1`, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	rows, err := r.q.Query(ctx, customerSelect+` WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, c := range list {
		if c.Addresses, err = r.addresses(ctx, c.ID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// Update aplica solo los campos presentes.
func (r *CustomerRepo) Update(ctx context.Context, companyID, id string, p *patch.Patch) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	query, args, err := buildUpdate("customers", customerColumns, p, true, "company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		return false, err
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, writeErr("update customer", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ReplaceAddresses borra e inserta las direcciones. Una dirección usada por una orden
// de venta produce ErrConflict.
func (r *CustomerRepo) ReplaceAddresses(ctx context.Context, customerID string, addresses []entity.Address) error {
	if !isUUID(customerID) {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM addresses WHERE customer_id = $1`, customerID); err != nil {
		return writeErr("delete addresses", err)
	}
	return r.insertAddresses(ctx, customerID, addresses)
}

// Delete elimina un cliente; con órdenes asociadas devuelve ErrConflict.
func (r *CustomerRepo) Delete(ctx context.Context, companyID, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM customers WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return false, writeErr("delete customer", err)
	}
	return cmd.RowsAffected() > 0, nil
}
