package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/erp-kardex/internal/domain/entity"
)

func TestExportProductKardex_UnaFilaPorMovimiento(t *testing.T) {
	product := &entity.Product{Code: "P-1", Name: "Tornillo", Stock: 7}
	date := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	entries := []*entity.KardexEntry{
		{MovementType: entity.MovementInbound, Quantity: 10, UnitPrice: decimal.NewFromInt(5), StockBefore: 0, StockAfter: 10, MovementDate: date, Notes: "stock inicial"},
		{MovementType: entity.MovementOutbound, Quantity: 3, StockBefore: 10, StockAfter: 7, MovementDate: date, OrderNumber: "101"},
	}

	data, err := NewKardexExporter().ExportProductKardex(context.Background(), product, entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, headerRow+len(entries))

	assert.Equal(t, "P-1 - Tornillo", rows[0][1])
	assert.Equal(t, "Fecha", rows[headerRow-1][0])
	assert.Equal(t, []string{"2026-03-01 10:30", "Entrada", "", "10", "5", "0", "10", "stock inicial"}, rows[headerRow])
	assert.Equal(t, "Salida", rows[headerRow+1][1])
	assert.Equal(t, "101", rows[headerRow+1][2])
	assert.Equal(t, "7", rows[headerRow+1][6])
}

func TestExportProductKardex_SinMovimientos(t *testing.T) {
	data, err := NewKardexExporter().ExportProductKardex(context.Background(), &entity.Product{Code: "X"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, headerRow)
}
