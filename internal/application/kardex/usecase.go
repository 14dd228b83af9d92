package kardex

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

// UseCase movimientos manuales y consultas del Kardex.
type UseCase struct {
	tx       repository.TxRunner
	store    repository.Store
	engine   *Engine
	exporter SpreadsheetExporter
}

// NewUseCase construye el caso de uso. store es el acceso sin transacción (lecturas).
func NewUseCase(tx repository.TxRunner, store repository.Store, engine *Engine, exporter SpreadsheetExporter) *UseCase {
	return &UseCase{tx: tx, store: store, engine: engine, exporter: exporter}
}

// CreateMovement registra un movimiento manual en su propia transacción.
func (uc *UseCase) CreateMovement(ctx context.Context, companyID string, in dto.CreateKardexMovementRequest) (*dto.KardexMovementResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var out *dto.KardexMovementResponse
	err := uc.tx.Run(ctx, func(store repository.Store) error {
		orderNumber := ""
		if in.OrderID != nil {
			n, err := taggedOrderNumber(ctx, store, companyID, *in.OrderID)
			if err != nil {
				return err
			}
			orderNumber = n
		}
		res, err := uc.engine.Apply(ctx, store, Movement{
			CompanyID: companyID,
			ProductID: in.ProductID,
			OrderID:   in.OrderID,
			Source:    entity.SourceManual,
			Direction: entity.MovementType(in.MovementType),
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Notes:     in.Notes,
		})
		if err != nil {
			return err
		}
		res.Entry.OrderNumber = orderNumber
		out = &dto.KardexMovementResponse{
			Movement: dto.FromKardexEntry(res.Entry),
			Product:  dto.FromProduct(res.Product),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// taggedOrderNumber un movimiento manual solo puede referenciar una orden de venta o de
// compra de la misma empresa. Devuelve su número.
func taggedOrderNumber(ctx context.Context, store repository.Store, companyID, orderID string) (string, error) {
	so, err := store.SalesOrders().GetByID(ctx, companyID, orderID)
	if err != nil {
		return "", err
	}
	if so != nil {
		return so.OrderNumber, nil
	}
	po, err := store.PurchaseOrders().GetByID(ctx, companyID, orderID)
	if err != nil {
		return "", err
	}
	if po == nil {
		return "", fmt.Errorf("orden %s: %w", orderID, domain.ErrNotFound)
	}
	return po.OrderNumber, nil
}

// ListByProduct historial del producto, del más antiguo al más reciente.
func (uc *UseCase) ListByProduct(ctx context.Context, companyID, productID string) ([]dto.KardexEntryResponse, error) {
	product, err := uc.store.Products().GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	entries, err := uc.store.Kardex().ListByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	return dto.FromKardexEntries(entries), nil
}

// ListByOrder registros asociados a una orden (venta o compra).
func (uc *UseCase) ListByOrder(ctx context.Context, companyID, orderID string) ([]dto.KardexEntryResponse, error) {
	entries, err := uc.store.Kardex().ListByOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	return dto.FromKardexEntries(entries), nil
}

// ExportProduct genera la planilla XLSX del Kardex del producto.
func (uc *UseCase) ExportProduct(ctx context.Context, companyID, productID string) ([]byte, string, error) {
	product, err := uc.store.Products().GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, "", err
	}
	if product == nil {
		return nil, "", domain.ErrProductNotFound
	}
	entries, err := uc.store.Kardex().ListByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportProductKardex(ctx, product, entries)
	if err != nil {
		return nil, "", fmt.Errorf("exportar kardex: %w", err)
	}
	return data, fmt.Sprintf("kardex-%s.xlsx", product.Code), nil
}
