// Package xlsx genera planillas Excel con excelize.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/erp-kardex/internal/application/kardex"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
)

var _ kardex.SpreadsheetExporter = (*KardexExporter)(nil)

const sheetName = "Kardex"

// Fila donde empieza la tabla; las anteriores llevan los datos del producto.
const headerRow = 4

var headings = []any{"Fecha", "Tipo", "Orden", "Cantidad", "Precio unitario", "Stock anterior", "Stock posterior", "Notas"}

// KardexExporter implementa kardex.SpreadsheetExporter.
type KardexExporter struct{}

// NewKardexExporter construye el exportador.
func NewKardexExporter() *KardexExporter { return &KardexExporter{} }

// ExportProductKardex una fila por registro del Kardex, en el orden recibido.
func (e *KardexExporter) ExportProductKardex(_ context.Context, product *entity.Product, entries []*entity.KardexEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}

	_ = f.SetCellValue(sheetName, "A1", "Producto")
	_ = f.SetCellValue(sheetName, "B1", product.Code+" - "+product.Name)
	_ = f.SetCellValue(sheetName, "A2", "Stock actual")
	_ = f.SetCellValue(sheetName, "B2", product.Stock)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("estilo: %w", err)
	}
	start, _ := excelize.CoordinatesToCellName(1, headerRow)
	end, _ := excelize.CoordinatesToCellName(len(headings), headerRow)
	if err := f.SetSheetRow(sheetName, start, &headings); err != nil {
		return nil, fmt.Errorf("encabezados: %w", err)
	}
	_ = f.SetCellStyle(sheetName, start, end, bold)
	_ = f.SetCellStyle(sheetName, "A1", "A2", bold)

	for i, k := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		row := []any{
			k.MovementDate.Format("2006-01-02 15:04"),
			movementLabel(k.MovementType),
			k.OrderNumber,
			k.Quantity,
			k.UnitPrice.InexactFloat64(),
			k.StockBefore,
			k.StockAfter,
			k.Notes,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+1, err)
		}
	}
	_ = f.SetColWidth(sheetName, "A", "A", 18)
	_ = f.SetColWidth(sheetName, "H", "H", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func movementLabel(t entity.MovementType) string {
	if t == entity.MovementInbound {
		return "Entrada"
	}
	return "Salida"
}
