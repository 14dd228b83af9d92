package kardex

import (
	"context"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
)

// SpreadsheetExporter genera la planilla del Kardex de un producto.
type SpreadsheetExporter interface {
	ExportProductKardex(ctx context.Context, product *entity.Product, entries []*entity.KardexEntry) ([]byte, error)
}
