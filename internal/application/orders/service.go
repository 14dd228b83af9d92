// Package orders coordina el ciclo de vida de las órdenes de venta. Cada operación que
// toca stock corre en una sola transacción y pasa por el motor de Kardex: crear descuenta,
// editar revierte y vuelve a descontar, cancelar y borrar revierten.
package orders

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
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

// DefaultLastOrderNumber se devuelve cuando la empresa aún no tiene órdenes.
const DefaultLastOrderNumber = "100"

// Service coordinador de órdenes de venta.
type Service struct {
	tx     repository.TxRunner
	store  repository.Store
	engine *kardex.Engine
	now    func() time.Time
}

// NewService construye el coordinador. store se usa solo para lecturas fuera de transacción.
func NewService(tx repository.TxRunner, store repository.Store, engine *kardex.Engine) *Service {
	return &Service{tx: tx, store: store, engine: engine, now: time.Now}
}

// Create inserta cabecera e ítems y descuenta el stock de cada ítem.
func (s *Service) Create(ctx context.Context, companyID string, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	order, err := s.orderFromRequest(companyID, in)
	if err != nil {
		return nil, err
	}
	order.ID = uuid.New().String()
	order.Status = entity.SalesOrderPending
	order.CreatedAt = s.now()
	order.UpdatedAt = order.CreatedAt

	var out *dto.SalesOrderResponse
	err = s.tx.Run(ctx, func(store repository.Store) error {
		if err := checkReferences(ctx, store, order); err != nil {
			return err
		}
		if err := store.SalesOrders().Create(ctx, order); err != nil {
			return orderNumberErr(err)
		}
		if err := s.insertItems(ctx, store, order); err != nil {
			return err
		}
		detail, err := loadDetail(ctx, store, companyID, order.ID)
		if err != nil {
			return err
		}
		resp := dto.FromSalesOrderDetail(detail)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update reemplaza cabecera e ítems de una orden editable. En la misma transacción se
// revierte el Kardex de la orden y se aplican las nuevas salidas, de modo que el efecto
// neto sobre el stock es cantidad anterior menos cantidad nueva.
func (s *Service) Update(ctx context.Context, companyID, id string, in dto.UpdateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	next, err := s.orderFromRequest(companyID, in)
	if err != nil {
		return nil, err
	}

	var out *dto.SalesOrderResponse
	err = s.tx.Run(ctx, func(store repository.Store) error {
		current, err := store.SalesOrders().GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if !current.Status.Editable() {
			return domain.ErrNotEditable
		}

		next.ID = current.ID
		next.Status = current.Status
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = s.now()
		if err := checkReferences(ctx, store, next); err != nil {
			return err
		}
		if err := store.SalesOrders().UpdateHeader(ctx, next); err != nil {
			return orderNumberErr(err)
		}
		if _, err := s.engine.ReverseOrder(ctx, store, companyID, id); err != nil {
			return err
		}
		if err := store.SalesOrders().DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := s.insertItems(ctx, store, next); err != nil {
			return err
		}
		detail, err := loadDetail(ctx, store, companyID, id)
		if err != nil {
			return err
		}
		resp := dto.FromSalesOrderDetail(detail)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus cambia el estado según la tabla de transiciones. Pasar a cancelled
// equivale a Cancel (revierte el stock).
func (s *Service) UpdateStatus(ctx context.Context, companyID, id string, in dto.UpdateOrderStatusRequest) (*dto.SalesOrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	target := entity.SalesOrderStatus(in.Status)
	if !target.Valid() {
		return nil, domain.NewValidationError("status")
	}
	if target == entity.SalesOrderCancelled {
		return s.Cancel(ctx, companyID, id)
	}

	var out *dto.SalesOrderResponse
	err := s.tx.Run(ctx, func(store repository.Store) error {
		current, err := store.SalesOrders().GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if !current.Status.CanTransitionTo(target) {
			return fmt.Errorf("%s → %s: %w", current.Status, target, domain.ErrInvalidTransition)
		}
		if err := store.SalesOrders().UpdateStatus(ctx, companyID, id, target); err != nil {
			return err
		}
		detail, err := loadDetail(ctx, store, companyID, id)
		if err != nil {
			return err
		}
		resp := dto.FromSalesOrderDetail(detail)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel revierte el Kardex de la orden y la marca cancelled.
func (s *Service) Cancel(ctx context.Context, companyID, id string) (*dto.SalesOrderResponse, error) {
	var out *dto.SalesOrderResponse
	err := s.tx.Run(ctx, func(store repository.Store) error {
		current, err := store.SalesOrders().GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.Status == entity.SalesOrderCancelled {
			return domain.ErrAlreadyCancelled
		}
		if len(current.Items) == 0 {
			return domain.ErrEmptyOrder
		}
		if !current.Status.CanTransitionTo(entity.SalesOrderCancelled) {
			return fmt.Errorf("%s → %s: %w", current.Status, entity.SalesOrderCancelled, domain.ErrInvalidTransition)
		}
		if _, err := s.engine.ReverseOrder(ctx, store, companyID, id); err != nil {
			return err
		}
		if err := store.SalesOrders().UpdateStatus(ctx, companyID, id, entity.SalesOrderCancelled); err != nil {
			return err
		}
		detail, err := loadDetail(ctx, store, companyID, id)
		if err != nil {
			return err
		}
		resp := dto.FromSalesOrderDetail(detail)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete devuelve al stock lo que quede en el Kardex de la orden y borra ítems y cabecera.
func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	return s.tx.Run(ctx, func(store repository.Store) error {
		current, err := store.SalesOrders().GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if _, err := s.engine.ReverseOrder(ctx, store, companyID, id); err != nil {
			return err
		}
		if err := store.SalesOrders().DeleteItems(ctx, id); err != nil {
			return err
		}
		return store.SalesOrders().Delete(ctx, companyID, id)
	})
}

// Get proyección completa de la orden.
func (s *Service) Get(ctx context.Context, companyID, id string) (*dto.SalesOrderResponse, error) {
	detail, err := loadDetail(ctx, s.store, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromSalesOrderDetail(detail)
	return &resp, nil
}

// GetForEdit igual que Get pero falla si la orden ya no es editable.
func (s *Service) GetForEdit(ctx context.Context, companyID, id string) (*dto.SalesOrderResponse, error) {
	detail, err := loadDetail(ctx, s.store, companyID, id)
	if err != nil {
		return nil, err
	}
	if !detail.Order.Status.Editable() {
		return nil, domain.ErrNotEditable
	}
	resp := dto.FromSalesOrderDetail(detail)
	return &resp, nil
}

// List órdenes de la empresa, más recientes primero.
func (s *Service) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.SalesOrderListResponse, error) {
	page.Normalize()
	list, total, err := s.store.SalesOrders().List(ctx, companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	customers := map[string]*entity.Customer{}
	items := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		c, ok := customers[o.CustomerID]
		if !ok {
			c, err = s.store.Customers().GetByID(ctx, companyID, o.CustomerID)
			if err != nil {
				return nil, err
			}
			customers[o.CustomerID] = c
		}
		detail := &entity.SalesOrderDetail{Order: o, Customer: c}
		if c != nil {
			detail.ShippingAddress = findAddress(c, o.ShippingAddressID)
			detail.BillingAddress = findAddress(c, o.BillingAddressID)
		}
		items = append(items, dto.FromSalesOrderDetail(detail))
	}
	return &dto.SalesOrderListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// LastOrderNumber mayor número de orden numérico de la empresa.
func (s *Service) LastOrderNumber(ctx context.Context, companyID string) (*dto.LastOrderNumberResponse, error) {
	n, err := s.store.SalesOrders().LastOrderNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if n == "" {
		n = DefaultLastOrderNumber
	}
	return &dto.LastOrderNumberResponse{LastOrderNumber: n}, nil
}

// Customers clientes con direcciones para el formulario de órdenes.
func (s *Service) Customers(ctx context.Context, companyID string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.Normalize()
	list, total, err := s.store.Customers().List(ctx, companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.FromCustomer(c))
	}
	return &dto.CustomerListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// orderFromRequest valida la petición y arma la entidad (sin ID ni estado).
func (s *Service) orderFromRequest(companyID string, in dto.CreateSalesOrderRequest) (*entity.SalesOrder, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var fields []string
	if in.TotalAmount.IsNegative() {
		fields = append(fields, "totalAmount")
	}
	for i, it := range in.OrderItems {
		if it.UnitPrice.IsNegative() {
			fields = append(fields, fmt.Sprintf("orderItems[%d].unitPrice", i))
		}
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}
	orderDate, err := dto.ParseDate(in.OrderDate)
	if err != nil {
		return nil, domain.NewValidationError("orderDate")
	}

	order := &entity.SalesOrder{
		CompanyID:         companyID,
		OrderNumber:       in.OrderNumber,
		CustomerID:        in.CustomerID,
		ShippingAddressID: emptyToNil(in.ShippingAddressID),
		BillingAddressID:  emptyToNil(in.BillingAddressID),
		TotalAmount:       *in.TotalAmount,
		Currency:          in.Currency,
		OrderDate:         orderDate,
		Salesperson:       in.Salesperson,
		Notes:             in.Notes,
	}
	for _, it := range in.OrderItems {
		order.Items = append(order.Items, entity.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Location:  it.Location,
		})
	}
	return order, nil
}

// insertItems inserta los ítems de order y aplica una salida por ítem etiquetada con la orden.
func (s *Service) insertItems(ctx context.Context, store repository.Store, order *entity.SalesOrder) error {
	orderID := order.ID
	movements := make([]kardex.Movement, 0, len(order.Items))
	for i := range order.Items {
		it := &order.Items[i]
		it.ID = uuid.New().String()
		it.OrderID = orderID
		if err := store.SalesOrders().CreateItem(ctx, it); err != nil {
			return err
		}
		movements = append(movements, kardex.Movement{
			CompanyID: order.CompanyID,
			ProductID: it.ProductID,
			OrderID:   &orderID,
			Source:    entity.SourceOrder,
			Direction: entity.MovementOutbound,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Notes:     "orden de venta " + order.OrderNumber,
		})
	}
	_, err := s.engine.ApplyAll(ctx, store, movements)
	return err
}

// checkReferences cliente, direcciones y productos deben pertenecer a la empresa.
func checkReferences(ctx context.Context, store repository.Store, order *entity.SalesOrder) error {
	customer, err := store.Customers().GetByID(ctx, order.CompanyID, order.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("cliente %s: %w", order.CustomerID, domain.ErrNotFound)
	}
	for _, addrID := range []*string{order.ShippingAddressID, order.BillingAddressID} {
		if addrID == nil {
			continue
		}
		if findAddress(customer, addrID) == nil {
			return fmt.Errorf("dirección %s: %w", *addrID, domain.ErrNotFound)
		}
	}

	ids := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		ids = append(ids, it.ProductID)
	}
	missing, err := store.Products().FindMissing(ctx, order.CompanyID, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &domain.ProductNotFoundError{IDs: missing}
	}
	return nil
}

// loadDetail arma la proyección orden + cliente + direcciones.
func loadDetail(ctx context.Context, store repository.Store, companyID, id string) (*entity.SalesOrderDetail, error) {
	order, err := store.SalesOrders().GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := store.Customers().GetByID(ctx, companyID, order.CustomerID)
	if err != nil {
		return nil, err
	}
	detail := &entity.SalesOrderDetail{Order: order, Customer: customer}
	if customer != nil {
		detail.ShippingAddress = findAddress(customer, order.ShippingAddressID)
		detail.BillingAddress = findAddress(customer, order.BillingAddressID)
	}
	return detail, nil
}

func findAddress(c *entity.Customer, id *string) *entity.Address {
	if id == nil {
		return nil
	}
	for i := range c.Addresses {
		if c.Addresses[i].ID == *id {
			return &c.Addresses[i]
		}
	}
	return nil
}

func orderNumberErr(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.ErrDuplicateOrderNumber
	}
	return err
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
