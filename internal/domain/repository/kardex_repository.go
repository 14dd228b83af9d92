package repository

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
)

// KardexRepository libro de movimientos. Solo inserción y borrado de los movimientos de una orden; nunca update.
type KardexRepository interface {
	Create(ctx context.Context, entry *entity.KardexEntry) error
	ListByProduct(ctx context.Context, companyID, productID string) ([]*entity.KardexEntry, error)
	ListByOrder(ctx context.Context, companyID, orderID string) ([]*entity.KardexEntry, error)
	// ListOrderMovements solo los movimientos generados por la orden (source = order).
	ListOrderMovements(ctx context.Context, companyID, orderID string) ([]*entity.KardexEntry, error)
	// DeleteOrderMovements borra los movimientos generados por la orden; los manuales quedan.
	DeleteOrderMovements(ctx context.Context, companyID, orderID string) (int64, error)
}
