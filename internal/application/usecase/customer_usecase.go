package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes y sus direcciones.
type CustomerUseCase struct {
	tx    repository.TxRunner
	store repository.Store
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(tx repository.TxRunner, store repository.Store) *CustomerUseCase {
	return &CustomerUseCase{tx: tx, store: store}
}

// Create registra el cliente con sus direcciones.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Document:  in.Document,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	customer.Addresses = toAddresses(customer.ID, in.Addresses)
	err := uc.tx.Run(ctx, func(store repository.Store) error {
		return store.Customers().Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromCustomer(customer)
	return &resp, nil
}

// GetByID obtiene un cliente de la empresa.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.store.Customers().GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromCustomer(c)
	return &resp, nil
}

// List clientes de la empresa.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.Normalize()
	list, total, err := uc.store.Customers().List(ctx, companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.FromCustomer(c))
	}
	return &dto.CustomerListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// Update modifica los campos presentes; si Addresses viene, reemplaza todas las direcciones.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p := patch.New()
	patch.Optional(p, "name", in.Name)
	patch.Optional(p, "document", in.Document)
	patch.Optional(p, "email", in.Email)
	patch.Optional(p, "phone", in.Phone)

	err := uc.tx.Run(ctx, func(store repository.Store) error {
		current, err := store.Customers().GetByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if !p.Empty() {
			if _, err := store.Customers().Update(ctx, companyID, id, p); err != nil {
				return err
			}
		}
		if in.Addresses != nil {
			return store.Customers().ReplaceAddresses(ctx, id, toAddresses(id, *in.Addresses))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, id)
}

// Delete borra el cliente; ErrConflict si tiene órdenes.
func (uc *CustomerUseCase) Delete(ctx context.Context, companyID, id string) error {
	found, err := uc.store.Customers().Delete(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func toAddresses(customerID string, in []dto.AddressRequest) []entity.Address {
	out := make([]entity.Address, 0, len(in))
	for _, a := range in {
		out = append(out, entity.Address{
			ID:         uuid.New().String(),
			CustomerID: customerID,
			Street:     a.Street,
			Number:     a.Number,
			District:   a.District,
			City:       a.City,
			State:      a.State,
			ZipCode:    a.ZipCode,
		})
	}
	return out
}
