package patch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-kardex/internal/domain/patch"
)

func TestPatch_SetReemplazaValorYConservaOrden(t *testing.T) {
	p := patch.New().Set("name", "A").Set("price", 10).Set("name", "B")

	fields := p.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "name", fields[0].Name)
	assert.Equal(t, "B", fields[0].Value)
	assert.Equal(t, "price", fields[1].Name)
}

func TestPatch_OptionalIgnoraNil(t *testing.T) {
	name := "Tornillo"
	var desc *string

	p := patch.New()
	patch.Optional(p, "name", &name)
	patch.Optional(p, "description", desc)

	assert.Equal(t, 1, p.Len())
	assert.True(t, p.Has("name"))
	assert.False(t, p.Has("description"))
	v, ok := p.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Tornillo", v)
}

func TestPatch_Empty(t *testing.T) {
	assert.True(t, patch.New().Empty())
	assert.False(t, patch.New().Set("x", 1).Empty())
}
