package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-kardex/internal/application/purchasing"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
)

func TestMoney_FormatoEspanol(t *testing.T) {
	g := NewMarotoPDFGenerator()
	assert.Equal(t, "$1.234.567,89", g.money(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "$0,00", g.money(decimal.Zero))
}

func TestGenerateInvoicePDF(t *testing.T) {
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	doc := purchasing.InvoiceDocument{
		Invoice: &entity.Invoice{InvoiceNumber: "F-77", IssueDate: date, TotalValue: decimal.NewFromInt(380), Status: "pending"},
		Order: &entity.PurchaseOrder{
			OrderNumber: "OC-1", OrderDate: date, Currency: "COP", TotalCost: decimal.NewFromInt(380),
			Items: []entity.PurchaseOrderItem{
				{ProductCode: "A", ProductName: "Tornillo", Quantity: 5, UnitCost: decimal.NewFromInt(40)},
				{ProductCode: "B", ProductName: "Tuerca", Quantity: 3, UnitCost: decimal.NewFromInt(60)},
			},
		},
		Company:  &entity.Company{Name: "Ferretería"},
		Supplier: &entity.Supplier{Name: "Aceros SA", Code: "PR-1"},
	}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoicePDF_SinOrden(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), purchasing.InvoiceDocument{Invoice: &entity.Invoice{}})
	assert.Error(t, err)
}
