package dto_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/domain"
)

func TestValidate_OrdenDeVentaSinCamposRequeridos(t *testing.T) {
	err := dto.Validate(dto.CreateSalesOrderRequest{})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.ElementsMatch(t,
		[]string{"orderNumber", "customerId", "totalAmount", "currency", "orderDate", "salesperson", "orderItems"},
		verr.Fields)
}

func TestValidate_ItemConCantidadCero(t *testing.T) {
	total := decimal.NewFromInt(10)
	in := dto.CreateSalesOrderRequest{
		OrderNumber: "101",
		CustomerID:  "c1",
		TotalAmount: &total,
		Currency:    "BRL",
		OrderDate:   "2024-05-01",
		Salesperson: "Ana",
		OrderItems:  []dto.OrderItemRequest{{ProductID: "p1", Quantity: 0}},
	}
	err := dto.Validate(in)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"orderItems[0].quantity"}, verr.Fields)
}

func TestValidate_FechaInvalida(t *testing.T) {
	total := decimal.NewFromInt(10)
	in := dto.CreateSalesOrderRequest{
		OrderNumber: "101",
		CustomerID:  "c1",
		TotalAmount: &total,
		Currency:    "BRL",
		OrderDate:   "01/05/2024",
		Salesperson: "Ana",
		OrderItems:  []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	}
	err := dto.Validate(in)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"orderDate"}, verr.Fields)
}

func TestParseDate_AceptaAmbosFormatos(t *testing.T) {
	d1, err := dto.ParseDate("2024-05-01")
	require.NoError(t, err)
	d2, err := dto.ParseDate("2024-05-01T00:00:00Z")
	require.NoError(t, err)
	assert.True(t, d1.Equal(d2))
}

func TestPageResponse_Metadatos(t *testing.T) {
	p := dto.PageRequest{Page: 2, Limit: 10}
	p.Normalize()
	meta := dto.NewPageResponse(p, 35)

	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
	assert.Equal(t, 10, p.Offset())
}

func TestPageRequest_Defaults(t *testing.T) {
	p := dto.PageRequest{Limit: 500}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, dto.MaxLimit, p.Limit)
}

func TestValidate_CantidadesFueraDeRango(t *testing.T) {
	cases := []struct {
		name  string
		in    any
		field string
	}{
		{"ajuste de stock", dto.AdjustStockRequest{Quantity: 3_000_000_000}, "quantity"},
		{"ajuste negativo", dto.AdjustStockRequest{Quantity: -3_000_000_000}, "quantity"},
		{"movimiento manual", dto.CreateKardexMovementRequest{ProductID: "p1", MovementType: "inbound", Quantity: 3_000_000_000}, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr *domain.ValidationError
			require.True(t, errors.As(dto.Validate(tc.in), &verr))
			assert.Equal(t, []string{tc.field}, verr.Fields)
		})
	}
}
