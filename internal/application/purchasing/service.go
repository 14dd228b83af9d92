// Package purchasing órdenes de compra y emisión de facturas. Una orden de compra no
// mueve stock; el stock entra cuando se registra la factura de la orden.
package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/application/kardex"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

// Service coordinador de compras.
type Service struct {
	tx     repository.TxRunner
	store  repository.Store
	engine *kardex.Engine
	pdf    InvoicePDFGenerator
	now    func() time.Time
}

// NewService construye el coordinador. pdf puede ser nil si no se expone la descarga.
func NewService(tx repository.TxRunner, store repository.Store, engine *kardex.Engine, pdf InvoicePDFGenerator) *Service {
	return &Service{tx: tx, store: store, engine: engine, pdf: pdf, now: time.Now}
}

// Create registra la orden y sus ítems. Proveedor, número y productos se verifican
// dentro de la misma transacción.
func (s *Service) Create(ctx context.Context, companyID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var fields []string
	if in.TotalCost.IsNegative() {
		fields = append(fields, "totalCost")
	}
	for i, it := range in.OrderItems {
		if it.UnitCost.IsNegative() {
			fields = append(fields, fmt.Sprintf("orderItems[%d].unitCost", i))
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}
	orderDate, err := dto.ParseDate(in.OrderDate)
	if err != nil {
		return nil, domain.NewValidationError("orderDate")
	}
	var expected *time.Time
	if in.ExpectedDeliveryDate != "" {
		d, err := dto.ParseDate(in.ExpectedDeliveryDate)
		if err != nil {
			return nil, domain.NewValidationError("expectedDeliveryDate")
		}
		expected = &d
	}

	now := s.now()
	order := &entity.PurchaseOrder{
		ID:                   uuid.New().String(),
		CompanyID:            companyID,
		OrderNumber:          in.OrderNumber,
		Status:               entity.PurchaseOrderPending,
		SupplierID:           in.SupplierID,
		TotalCost:            *in.TotalCost,
		Currency:             in.Currency,
		OrderDate:            orderDate,
		ExpectedDeliveryDate: expected,
		Buyer:                in.Buyer,
		Notes:                in.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	var out *dto.PurchaseOrderResponse
	err = s.tx.Run(ctx, func(store repository.Store) error {
		supplier, err := store.Suppliers().GetByID(ctx, companyID, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrSupplierNotFound
		}
		exists, err := store.PurchaseOrders().ExistsOrderNumber(ctx, companyID, in.OrderNumber)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateOrderNumber
		}
		ids := make([]string, 0, len(in.OrderItems))
		for _, it := range in.OrderItems {
			ids = append(ids, it.ProductID)
		}
		missing, err := store.Products().FindMissing(ctx, companyID, ids)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return &domain.ProductNotFoundError{IDs: missing}
		}

		if err := store.PurchaseOrders().Create(ctx, order); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrDuplicateOrderNumber
			}
			return err
		}
		for _, it := range in.OrderItems {
			if err := store.PurchaseOrders().CreateItem(ctx, &entity.PurchaseOrderItem{
				ID:              uuid.New().String(),
				PurchaseOrderID: order.ID,
				ProductID:       it.ProductID,
				Quantity:        it.Quantity,
				UnitCost:        *it.UnitCost,
			}); err != nil {
				return err
			}
		}
		created, err := store.PurchaseOrders().GetByID(ctx, companyID, order.ID)
		if err != nil {
			return err
		}
		resp := dto.FromPurchaseOrder(created)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update solo cambia estado (según la tabla de transiciones) y notas.
// received no se acepta aquí: se alcanza al emitir la factura.
func (s *Service) Update(ctx context.Context, companyID, id string, in dto.UpdatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	var out *dto.PurchaseOrderResponse
	err := s.tx.Run(ctx, func(store repository.Store) error {
		current, err := store.PurchaseOrders().GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		p := patch.New()
		if in.Status != nil && entity.PurchaseOrderStatus(*in.Status) != current.Status {
			target := entity.PurchaseOrderStatus(*in.Status)
			if !target.Valid() {
				return domain.NewValidationError("orderStatus")
			}
			if target == entity.PurchaseOrderReceived || !current.Status.CanTransitionTo(target) {
				return fmt.Errorf("%s → %s: %w", current.Status, target, domain.ErrInvalidTransition)
			}
			p.Set("status", string(target))
		}
		patch.Optional(p, "notes", in.Notes)

		if !p.Empty() {
			if _, err := store.PurchaseOrders().Update(ctx, companyID, id, p); err != nil {
				return err
			}
		}
		updated, err := store.PurchaseOrders().GetByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		resp := dto.FromPurchaseOrder(updated)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List órdenes de compra de la empresa.
func (s *Service) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page.Normalize()
	list, total, err := s.store.PurchaseOrders().List(ctx, companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.FromPurchaseOrder(o))
	}
	return &dto.PurchaseOrderListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// GetByOrderNumber busca por número de orden dentro de la empresa.
func (s *Service) GetByOrderNumber(ctx context.Context, companyID, orderNumber string) (*dto.PurchaseOrderResponse, error) {
	o, err := s.store.PurchaseOrders().GetByOrderNumber(ctx, companyID, orderNumber)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromPurchaseOrder(o)
	return &resp, nil
}

// Delete borra ítems y cabecera. Una orden con facturas no se puede borrar.
func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	return s.tx.Run(ctx, func(store repository.Store) error {
		current, err := store.PurchaseOrders().GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		invoices, err := store.Invoices().ListByPurchaseOrder(ctx, companyID, id)
		if err != nil {
			return err
		}
		if len(invoices) > 0 {
			return fmt.Errorf("la orden tiene %d factura(s): %w", len(invoices), domain.ErrConflict)
		}
		if err := store.PurchaseOrders().DeleteItems(ctx, id); err != nil {
			return err
		}
		_, err = store.PurchaseOrders().Delete(ctx, companyID, id)
		return err
	})
}

// IssueInvoice registra la factura, da entrada al stock de cada ítem de la orden y
// marca la orden como received. Todo o nada.
func (s *Service) IssueInvoice(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.IssueInvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := s.now()
	issueDate := now
	if in.IssueDate != "" {
		d, err := dto.ParseDate(in.IssueDate)
		if err != nil {
			return nil, domain.NewValidationError("issue_date")
		}
		issueDate = d
	}
	if in.TotalValue != nil && in.TotalValue.IsNegative() {
		return nil, domain.NewValidationError("total_value")
	}
	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusPending
	}

	var out *dto.IssueInvoiceResponse
	err := s.tx.Run(ctx, func(store repository.Store) error {
		order, err := store.PurchaseOrders().GetForUpdate(ctx, companyID, in.PurchaseOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Status.CanTransitionTo(entity.PurchaseOrderReceived) {
			return fmt.Errorf("orden de compra en estado %s: %w", order.Status, domain.ErrConflict)
		}
		if len(order.Items) == 0 {
			return domain.ErrNoItemsFound
		}

		invoice := &entity.Invoice{
			ID:              uuid.New().String(),
			CompanyID:       companyID,
			PurchaseOrderID: order.ID,
			InvoiceNumber:   in.InvoiceNumber,
			IssueDate:       issueDate,
			TotalValue:      order.TotalCost,
			Status:          status,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if in.TotalValue != nil {
			invoice.TotalValue = *in.TotalValue
		}
		if err := store.Invoices().Create(ctx, invoice); err != nil {
			return err
		}

		orderID := order.ID
		movements := make([]kardex.Movement, 0, len(order.Items))
		totalQty := 0
		for _, it := range order.Items {
			movements = append(movements, kardex.Movement{
				CompanyID: companyID,
				ProductID: it.ProductID,
				OrderID:   &orderID,
				Source:    entity.SourceOrder,
				Direction: entity.MovementInbound,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitCost,
				Notes:     "factura " + in.InvoiceNumber,
			})
			totalQty += it.Quantity
		}
		results, err := s.engine.ApplyAll(ctx, store, movements)
		if err != nil {
			return err
		}

		if _, err := store.PurchaseOrders().Update(ctx, companyID, order.ID,
			patch.New().Set("status", string(entity.PurchaseOrderReceived))); err != nil {
			return err
		}

		resp := &dto.IssueInvoiceResponse{
			Invoice:         dto.FromInvoice(invoice),
			UpdatedProducts: make([]dto.UpdatedProductStock, 0, len(results)),
			KardexMovements: make([]dto.KardexEntryResponse, 0, len(results)),
			Summary:         dto.InvoiceSummary{ItemsProcessed: len(results), TotalQuantity: totalQty},
		}
		for _, r := range results {
			r.Entry.OrderNumber = order.OrderNumber
			resp.UpdatedProducts = append(resp.UpdatedProducts, dto.UpdatedProductStock{
				ProductID:     r.Product.ID,
				Code:          r.Product.Code,
				Name:          r.Product.Name,
				PreviousStock: r.Entry.StockBefore,
				NewStock:      r.Entry.StockAfter,
				Quantity:      r.Entry.Quantity,
			})
			resp.KardexMovements = append(resp.KardexMovements, dto.FromKardexEntry(r.Entry))
		}
		out = resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListInvoicesByOrder facturas de una orden de compra.
func (s *Service) ListInvoicesByOrder(ctx context.Context, companyID, orderID string) ([]dto.InvoiceResponse, error) {
	order, err := s.store.PurchaseOrders().GetByID(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	invoices, err := s.store.Invoices().ListByPurchaseOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, dto.FromInvoice(inv))
	}
	return out, nil
}

// GetInvoice una factura de la empresa.
func (s *Service) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.store.Invoices().GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromInvoice(inv)
	return &resp, nil
}

// InvoicePDF genera el PDF de la factura con los ítems de su orden de compra.
func (s *Service) InvoicePDF(ctx context.Context, companyID, id string) ([]byte, string, error) {
	if s.pdf == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	inv, err := s.store.Invoices().GetByID(ctx, companyID, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	order, err := s.store.PurchaseOrders().GetByID(ctx, companyID, inv.PurchaseOrderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	company, err := s.store.Companies().GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		company = &entity.Company{ID: companyID}
	}
	supplier, err := s.store.Suppliers().GetByID(ctx, companyID, order.SupplierID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener proveedor: %w", err)
	}

	data, err := s.pdf.GenerateInvoicePDF(ctx, InvoiceDocument{
		Invoice:  inv,
		Order:    order,
		Company:  company,
		Supplier: supplier,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	return data, fmt.Sprintf("factura-%s.pdf", inv.InvoiceNumber), nil
}
