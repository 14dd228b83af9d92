package kardex_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-kardex/internal/application/kardex"
	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/entity"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
	"github.com/jhoicas/erp-kardex/internal/infrastructure/memstore"
)

const (
	companyA = "company-a"
	companyB = "company-b"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func seedProduct(t *testing.T, store *memstore.Store, companyID, id string, stock int) {
	t.Helper()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID:        id,
		CompanyID: companyID,
		Code:      "P-" + id,
		Name:      "Producto " + id,
		Price:     decimal.NewFromInt(10),
		Stock:     stock,
	}))
}

func stockOf(t *testing.T, store *memstore.Store, companyID, id string) int {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), companyID, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func apply(store *memstore.Store, engine *kardex.Engine, m kardex.Movement) (*kardex.Result, error) {
	var res *kardex.Result
	err := store.Run(context.Background(), func(tx repository.Store) error {
		var err error
		res, err = engine.Apply(context.Background(), tx, m)
		return err
	})
	return res, err
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_EntradaSumaStockYRegistraSaldos(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyA, "p1", 10)
	engine := kardex.NewEngine().WithClock(func() time.Time { return fixedNow })

	res, err := apply(store, engine, kardex.Movement{
		CompanyID: companyA, ProductID: "p1",
		Direction: entity.MovementInbound, Quantity: 5,
		UnitPrice: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	assert.Equal(t, 10, res.Entry.StockBefore)
	assert.Equal(t, 15, res.Entry.StockAfter)
	assert.Equal(t, fixedNow, res.Entry.MovementDate)
	assert.Equal(t, "P-p1", res.Entry.ProductCode)
	assert.Equal(t, 15, res.Product.Stock)
	assert.Equal(t, 15, stockOf(t, store, companyA, "p1"))
}

func TestApply_SalidaInsuficienteNoEscribe(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyA, "p1", 3)
	engine := kardex.NewEngine()

	_, err := apply(store, engine, kardex.Movement{
		CompanyID: companyA, ProductID: "p1",
		Direction: entity.MovementOutbound, Quantity: 5,
	})

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 3, stockErr.Current)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Shortage)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 3, stockOf(t, store, companyA, "p1"))
	entries, err := store.Kardex().ListByProduct(context.Background(), companyA, "p1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApply_SalidaExactaDejaCero(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyA, "p1", 4)

	res, err := apply(store, kardex.NewEngine(), kardex.Movement{
		CompanyID: companyA, ProductID: "p1",
		Direction: entity.MovementOutbound, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Entry.StockAfter)
}

func TestApply_ProductoDeOtraEmpresa(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyB, "p1", 10)

	_, err := apply(store, kardex.NewEngine(), kardex.Movement{
		CompanyID: companyA, ProductID: "p1",
		Direction: entity.MovementInbound, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 10, stockOf(t, store, companyB, "p1"))
}

func TestApply_Validacion(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyA, "p1", 10)

	_, err := apply(store, kardex.NewEngine(), kardex.Movement{
		CompanyID: companyA, ProductID: "p1",
		Direction: "sideways", Quantity: 0,
		UnitPrice: decimal.NewFromInt(-1),
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"movementType", "quantity", "unitPrice"}, verr.Fields)
}

func TestApply_EntradaSuperaStockMaximo(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyA, "p1", entity.MaxStock-1)

	_, err := apply(store, kardex.NewEngine(), kardex.Movement{
		CompanyID: companyA, ProductID: "p1",
		Direction: entity.MovementInbound, Quantity: 2,
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"quantity"}, verr.Fields)
	assert.Equal(t, entity.MaxStock-1, stockOf(t, store, companyA, "p1"))
}

// La cadena de saldos del Kardex es consistente: stockBefore de cada registro es
// el stockAfter del anterior, y el último coincide con el stock del producto.
func TestApply_CadenaDeSaldosConsistente(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyA, "p1", 0)
	engine := kardex.NewEngine()

	steps := []struct {
		dir entity.MovementType
		qty int
	}{
		{entity.MovementInbound, 10},
		{entity.MovementOutbound, 3},
		{entity.MovementInbound, 7},
		{entity.MovementOutbound, 14},
	}
	for _, s := range steps {
		_, err := apply(store, engine, kardex.Movement{CompanyID: companyA, ProductID: "p1", Direction: s.dir, Quantity: s.qty})
		require.NoError(t, err)
	}

	entries, err := store.Kardex().ListByProduct(context.Background(), companyA, "p1")
	require.NoError(t, err)
	require.Len(t, entries, len(steps))
	prev := 0
	for _, e := range entries {
		assert.Equal(t, prev, e.StockBefore)
		prev = e.StockAfter
	}
	assert.Equal(t, prev, stockOf(t, store, companyA, "p1"))
	assert.Equal(t, 0, prev)
}

// Salidas concurrentes sobre el mismo producto nunca dejan stock negativo.
func TestApply_SalidasConcurrentes(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyA, "p1", 10)
	engine := kardex.NewEngine()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		ok     int
		failed int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := apply(store, engine, kardex.Movement{
				CompanyID: companyA, ProductID: "p1",
				Direction: entity.MovementOutbound, Quantity: 1,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				failed++
				return
			}
			ok++
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 15, failed)
	assert.Equal(t, 0, stockOf(t, store, companyA, "p1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyAll / ReverseOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyAll_FallaUnoRevierteTodo(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyA, "a", 10)
	seedProduct(t, store, companyA, "b", 1)
	engine := kardex.NewEngine()

	err := store.Run(context.Background(), func(tx repository.Store) error {
		_, err := engine.ApplyAll(context.Background(), tx, []kardex.Movement{
			{CompanyID: companyA, ProductID: "a", Direction: entity.MovementOutbound, Quantity: 2},
			{CompanyID: companyA, ProductID: "b", Direction: entity.MovementOutbound, Quantity: 2},
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, stockOf(t, store, companyA, "a"))
	assert.Equal(t, 1, stockOf(t, store, companyA, "b"))
}

func TestReverseOrder_RestauraStockYBorraRegistros(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyA, "a", 10)
	seedProduct(t, store, companyA, "b", 5)
	engine := kardex.NewEngine()
	orderID := "order-1"
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, func(tx repository.Store) error {
		_, err := engine.ApplyAll(ctx, tx, []kardex.Movement{
			{CompanyID: companyA, ProductID: "a", OrderID: &orderID, Source: entity.SourceOrder, Direction: entity.MovementOutbound, Quantity: 4},
			{CompanyID: companyA, ProductID: "b", OrderID: &orderID, Source: entity.SourceOrder, Direction: entity.MovementOutbound, Quantity: 5},
		})
		return err
	}))
	assert.Equal(t, 6, stockOf(t, store, companyA, "a"))
	assert.Equal(t, 0, stockOf(t, store, companyA, "b"))

	require.NoError(t, store.Run(ctx, func(tx repository.Store) error {
		results, err := engine.ReverseOrder(ctx, tx, companyA, orderID)
		assert.Len(t, results, 2)
		return err
	}))

	assert.Equal(t, 10, stockOf(t, store, companyA, "a"))
	assert.Equal(t, 5, stockOf(t, store, companyA, "b"))
	entries, err := store.Kardex().ListByOrder(ctx, companyA, orderID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Los inversos se aplican en orden de producto, igual que la creación, aunque el
// registro más reciente sea del producto mayor.
func TestReverseOrder_BloqueaEnOrdenDeProducto(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyA, "a", 10)
	seedProduct(t, store, companyA, "b", 10)
	engine := kardex.NewEngine()
	orderID := "order-1"
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, func(tx repository.Store) error {
		_, err := engine.ApplyAll(ctx, tx, []kardex.Movement{
			{CompanyID: companyA, ProductID: "b", OrderID: &orderID, Source: entity.SourceOrder, Direction: entity.MovementOutbound, Quantity: 1},
			{CompanyID: companyA, ProductID: "a", OrderID: &orderID, Source: entity.SourceOrder, Direction: entity.MovementOutbound, Quantity: 2},
		})
		return err
	}))

	var results []*kardex.Result
	require.NoError(t, store.Run(ctx, func(tx repository.Store) error {
		var err error
		results, err = engine.ReverseOrder(ctx, tx, companyA, orderID)
		return err
	}))
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Product.ID)
	assert.Equal(t, "b", results[1].Product.ID)
	assert.Equal(t, 10, stockOf(t, store, companyA, "a"))
	assert.Equal(t, 10, stockOf(t, store, companyA, "b"))
}

func TestReverseOrder_IgnoraMovimientosManuales(t *testing.T) {
	store := memstore.New()
	seedProduct(t, store, companyA, "a", 10)
	engine := kardex.NewEngine()
	orderID := "order-1"
	ctx := context.Background()

	_, err := apply(store, engine, kardex.Movement{CompanyID: companyA, ProductID: "a", OrderID: &orderID, Source: entity.SourceOrder, Direction: entity.MovementOutbound, Quantity: 2})
	require.NoError(t, err)
	manual, err := apply(store, engine, kardex.Movement{CompanyID: companyA, ProductID: "a", OrderID: &orderID, Direction: entity.MovementInbound, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, entity.SourceManual, manual.Entry.Source)

	require.NoError(t, store.Run(ctx, func(tx repository.Store) error {
		results, err := engine.ReverseOrder(ctx, tx, companyA, orderID)
		assert.Len(t, results, 1)
		return err
	}))

	assert.Equal(t, 15, stockOf(t, store, companyA, "a"))
	entries, err := store.Kardex().ListByOrder(ctx, companyA, orderID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, manual.Entry.ID, entries[0].ID)
}

func TestReverseOrder_SinRegistros(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	require.NoError(t, store.Run(ctx, func(tx repository.Store) error {
		results, err := kardex.NewEngine().ReverseOrder(ctx, tx, companyA, "nada")
		assert.Empty(t, results)
		return err
	}))
}
