package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceSelect = `
	SELECT id, company_id, purchase_order_id, invoice_number, issue_date, total_value, status, notes,
	       created_at, updated_at
	FROM invoices`

// InvoiceRepo facturas de compra sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func scanInvoice(row scanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.CompanyID, &inv.PurchaseOrderID, &inv.InvoiceNumber, &inv.IssueDate,
		&inv.TotalValue, &inv.Status, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persiste la factura. Número repetido en la empresa devuelve ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, company_id, purchase_order_id, invoice_number, issue_date, total_value,
		                      status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.PurchaseOrderID, inv.InvoiceNumber, inv.IssueDate, inv.TotalValue,
		inv.Status, inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	)
	return writeErr("insert invoice", err)
}

// GetByID obtiene una factura de la empresa.
func (r *InvoiceRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	if !isUUID(id) {
		return nil, nil
	}
	inv, err := scanInvoice(r.q.QueryRow(ctx, invoiceSelect+` WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// ListByPurchaseOrder facturas de una orden por fecha de emisión.
func (r *InvoiceRepo) ListByPurchaseOrder(ctx context.Context, companyID, purchaseOrderID string) ([]*entity.Invoice, error) {
	if !isUUID(purchaseOrderID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		invoiceSelect+` WHERE company_id = $1 AND purchase_order_id = $2 ORDER BY issue_date`,
		companyID, purchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
