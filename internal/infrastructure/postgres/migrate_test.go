package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-kardex/migrations"
)

func TestLoadMigrations_OrdenYChecksum(t *testing.T) {
	fsys := fstest.MapFS{
		"002_indices.sql": {Data: []byte("CREATE INDEX x ON t (a);")},
		"001_init.sql":    {Data: []byte("CREATE TABLE t (a int);")},
		"README.md":       {Data: []byte("ignorado")},
	}

	list, err := LoadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "001", list[0].Version)
	assert.Equal(t, "002_indices.sql", list[1].Filename)
	assert.Len(t, list[0].Checksum, 64)
}

func TestLoadMigrations_VersionRepetida(t *testing.T) {
	fsys := fstest.MapFS{
		"001_a.sql": {Data: []byte("SELECT 1;")},
		"001_b.sql": {Data: []byte("SELECT 2;")},
	}
	_, err := LoadMigrations(fsys)
	assert.Error(t, err)
}

func TestLoadMigrations_NombreInvalido(t *testing.T) {
	_, err := LoadMigrations(fstest.MapFS{"init.sql": {Data: []byte("SELECT 1;")}})
	assert.Error(t, err)
}

func TestLoadMigrations_Embebidas(t *testing.T) {
	list, err := LoadMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, "001", list[0].Version)
	assert.Contains(t, list[0].SQL, "ux_sales_orders_company_number")
}
