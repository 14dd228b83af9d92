package kardex_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
	"github.com/jhoicas/erp-kardex/internal/application/kardex"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/infrastructure/memstore"
)

const purchaseOrderID = "6f1c1a52-8a3e-4a7e-9d0b-2f4c7e1b9a10"

func newLedger(t *testing.T) (*kardex.UseCase, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	seedProduct(t, store, companyA, "p1", 10)
	require.NoError(t, store.PurchaseOrders().Create(context.Background(), &entity.PurchaseOrder{
		ID: purchaseOrderID, CompanyID: companyA, OrderNumber: "PO-1", Status: entity.PurchaseOrderPending,
	}))
	return kardex.NewUseCase(store, store, kardex.NewEngine(), nil), store
}

func TestCreateMovement_EtiquetaOrdenDeLaEmpresa(t *testing.T) {
	uc, store := newLedger(t)
	orderID := purchaseOrderID

	out, err := uc.CreateMovement(context.Background(), companyA, dto.CreateKardexMovementRequest{
		ProductID: "p1", OrderID: &orderID, MovementType: "inbound", Quantity: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 13, out.Product.Stock)
	assert.Equal(t, "PO-1", out.Movement.OrderNumber)
	entries, err := store.Kardex().ListByOrder(context.Background(), companyA, orderID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.SourceManual, entries[0].Source)
}

func TestCreateMovement_OrdenInexistenteOAjena(t *testing.T) {
	cases := []struct {
		name      string
		companyID string
		orderID   string
	}{
		{"orden inexistente", companyA, "00000000-0000-4000-8000-000000000000"},
		{"orden de otra empresa", companyB, purchaseOrderID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, store := newLedger(t)
			seedProduct(t, store, companyB, "p2", 10)
			orderID := tc.orderID
			productID := "p1"
			if tc.companyID == companyB {
				productID = "p2"
			}

			_, err := uc.CreateMovement(context.Background(), tc.companyID, dto.CreateKardexMovementRequest{
				ProductID: productID, OrderID: &orderID, MovementType: "inbound", Quantity: 3,
			})
			assert.ErrorIs(t, err, domain.ErrNotFound)

			assert.Equal(t, 10, stockOf(t, store, tc.companyID, productID))
			entries, err := store.Kardex().ListByProduct(context.Background(), tc.companyID, productID)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestCreateMovement_CantidadFueraDeRango(t *testing.T) {
	uc, store := newLedger(t)

	_, err := uc.CreateMovement(context.Background(), companyA, dto.CreateKardexMovementRequest{
		ProductID: "p1", MovementType: "inbound", Quantity: 3_000_000_000,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, stockOf(t, store, companyA, "p1"))
}
