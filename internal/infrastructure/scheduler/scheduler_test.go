package scheduler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
)

type fakeScanner struct {
	items []dto.LowStockItem
	err   error
}

func (f fakeScanner) ScanLowStock(context.Context) ([]dto.LowStockItem, error) {
	return f.items, f.err
}

func TestCheckLowStock_UnaAdvertenciaPorProducto(t *testing.T) {
	var buf bytes.Buffer
	s := New("0 7 * * *", fakeScanner{items: []dto.LowStockItem{
		{ProductID: "p1", CompanyID: "c1", Code: "A", Stock: 1, MinimumStock: 5, Missing: 4},
		{ProductID: "p2", CompanyID: "c2", Code: "B", Stock: 0, MinimumStock: 2, Missing: 2},
	}}, zerolog.New(&buf))

	n, err := s.CheckLowStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, strings.Count(buf.String(), `"level":"warn"`))
	assert.Contains(t, buf.String(), `"product_id":"p2"`)
}

func TestCheckLowStock_PropagaError(t *testing.T) {
	s := New("0 7 * * *", fakeScanner{err: errors.New("db caída")}, zerolog.Nop())
	_, err := s.CheckLowStock(context.Background())
	assert.Error(t, err)
}

func TestStart_ExpresionInvalida(t *testing.T) {
	s := New("cada lunes", fakeScanner{}, zerolog.Nop())
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := New("*/5 * * * *", fakeScanner{}, zerolog.Nop())
	require.NoError(t, s.Start())
	s.Stop(context.Background())
}
