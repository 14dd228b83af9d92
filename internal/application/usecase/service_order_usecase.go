package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

// ServiceOrderUseCase órdenes de servicio. No mueven stock.
type ServiceOrderUseCase struct {
	tx    repository.TxRunner
	store repository.Store
}

// NewServiceOrderUseCase construye el caso de uso.
func NewServiceOrderUseCase(tx repository.TxRunner, store repository.Store) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{tx: tx, store: store}
}

func (uc *ServiceOrderUseCase) Create(ctx context.Context, companyID string, in dto.CreateServiceOrderRequest) (*dto.ServiceOrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	status := entity.ServiceOrderInitialized
	if in.Status != "" {
		status = entity.ServiceOrderStatus(in.Status)
	}
	now := time.Now()
	o := &entity.ServiceOrder{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		OrderNumber: in.OrderNumber,
		Status:      status,
		CustomerID:  in.CustomerID,
		Items:       in.Items,
		Notes:       in.Notes,
		Message:     in.Message,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(store repository.Store) error {
		if o.CustomerID != nil {
			c, err := store.Customers().GetByID(ctx, companyID, *o.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("cliente %s: %w", *o.CustomerID, domain.ErrNotFound)
			}
		}
		return store.ServiceOrders().Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromServiceOrder(o)
	return &resp, nil
}

func (uc *ServiceOrderUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ServiceOrderResponse, error) {
	o, err := uc.store.ServiceOrders().GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromServiceOrder(o)
	return &resp, nil
}

func (uc *ServiceOrderUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ServiceOrderListResponse, error) {
	page.Normalize()
	list, total, err := uc.store.ServiceOrders().List(ctx, companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.FromServiceOrder(o))
	}
	return &dto.ServiceOrderListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// Update cambios parciales; el estado pasa por la tabla de transiciones.
func (uc *ServiceOrderUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateServiceOrderRequest) (*dto.ServiceOrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(store repository.Store) error {
		current, err := store.ServiceOrders().GetByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		p := patch.New()
		if in.Status != nil {
			target := entity.ServiceOrderStatus(*in.Status)
			if target != current.Status {
				if !current.Status.CanTransitionTo(target) {
					return fmt.Errorf("%s → %s: %w", current.Status, target, domain.ErrInvalidTransition)
				}
				p.Set("status", string(target))
			}
		}
		if in.Items != nil {
			p.Set("items", in.Items)
		}
		patch.Optional(p, "notes", in.Notes)
		patch.Optional(p, "message", in.Message)
		if p.Empty() {
			return nil
		}
		_, err = store.ServiceOrders().Update(ctx, companyID, id, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, id)
}

// UpdateStatus atajo de Update solo con el estado.
func (uc *ServiceOrderUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.ServiceOrderResponse, error) {
	if !entity.ServiceOrderStatus(status).Valid() {
		return nil, domain.NewValidationError("status")
	}
	return uc.Update(ctx, companyID, id, dto.UpdateServiceOrderRequest{Status: &status})
}

func (uc *ServiceOrderUseCase) Delete(ctx context.Context, companyID, id string) error {
	found, err := uc.store.ServiceOrders().Delete(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}
