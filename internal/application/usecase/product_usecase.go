package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/application/kardex"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/patch"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía motor de Kardex.
type ProductUseCase struct {
	tx     repository.TxRunner
	store  repository.Store
	engine *kardex.Engine
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx repository.TxRunner, store repository.Store, engine *kardex.Engine) *ProductUseCase {
	return &ProductUseCase{tx: tx, store: store, engine: engine}
}

// Create crea un producto con stock 0; si la petición trae stock inicial entra como
// movimiento de entrada en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.NewValidationError(negativeFields(in)...)
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Code:         in.Code,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Cost:         in.Cost,
		MinimumStock: in.MinimumStock,
		Unit:         in.Unit,
		Barcode:      in.Barcode,
		Brand:        in.Brand,
		FiscalCode:   in.FiscalCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.tx.Run(ctx, func(store repository.Store) error {
		if err := store.Products().Create(ctx, product); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		res, err := uc.engine.Apply(ctx, store, kardex.Movement{
			CompanyID: companyID,
			ProductID: product.ID,
			Direction: entity.MovementInbound,
			Quantity:  in.InitialStock,
			UnitPrice: in.Cost,
			Notes:     "stock inicial",
		})
		if err != nil {
			return err
		}
		product = res.Product
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.store.Products().GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// Update modifica solo los campos presentes. Stock no es modificable aquí.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if (in.Price != nil && in.Price.IsNegative()) || (in.Cost != nil && in.Cost.IsNegative()) {
		return nil, domain.NewValidationError("price", "cost")
	}
	p := patch.New()
	patch.Optional(p, "code", in.Code)
	patch.Optional(p, "name", in.Name)
	patch.Optional(p, "description", in.Description)
	patch.Optional(p, "price", in.Price)
	patch.Optional(p, "cost", in.Cost)
	patch.Optional(p, "minimum_stock", in.MinimumStock)
	patch.Optional(p, "unit", in.Unit)
	patch.Optional(p, "barcode", in.Barcode)
	patch.Optional(p, "brand", in.Brand)
	patch.Optional(p, "fiscal_code", in.FiscalCode)

	if !p.Empty() {
		found, err := uc.store.Products().Update(ctx, companyID, id, p)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, domain.ErrNotFound
		}
	}
	return uc.GetByID(ctx, companyID, id)
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.Normalize()
	list, total, err := uc.store.Products().List(ctx, companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.NewPageResponse(page, total)}, nil
}

// Delete borra el producto; si tiene movimientos u órdenes asociadas devuelve ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	found, err := uc.store.Products().Delete(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock ajuste manual: cantidad positiva entra, negativa sale. Pasa por el Kardex.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, companyID, id string, in dto.AdjustStockRequest) (*dto.StockAdjustmentResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.NewValidationError("unitPrice")
	}
	m := kardex.Movement{
		CompanyID: companyID,
		ProductID: id,
		Direction: entity.MovementInbound,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Notes:     in.Notes,
	}
	if in.Quantity < 0 {
		m.Direction = entity.MovementOutbound
		m.Quantity = -in.Quantity
	}
	if m.Notes == "" {
		m.Notes = "ajuste manual"
	}

	var out *dto.StockAdjustmentResponse
	err := uc.tx.Run(ctx, func(store repository.Store) error {
		res, err := uc.engine.Apply(ctx, store, m)
		if err != nil {
			return err
		}
		out = &dto.StockAdjustmentResponse{
			Product: dto.FromProduct(res.Product),
			Entry:   dto.FromKardexEntry(res.Entry),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LowStock productos de la empresa con stock por debajo del mínimo.
func (uc *ProductUseCase) LowStock(ctx context.Context, companyID string) ([]dto.LowStockItem, error) {
	list, err := uc.store.Products().ListBelowMinimum(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItem, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ToLowStockItem(p))
	}
	return items, nil
}

// ScanLowStock igual que LowStock pero para todas las empresas (tarea programada).
func (uc *ProductUseCase) ScanLowStock(ctx context.Context) ([]dto.LowStockItem, error) {
	return uc.LowStock(ctx, "")
}

func negativeFields(in dto.CreateProductRequest) []string {
	var fields []string
	if in.Price.IsNegative() {
		fields = append(fields, "price")
	}
	if in.Cost.IsNegative() {
		fields = append(fields, "cost")
	}
	return fields
}
