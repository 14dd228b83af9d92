package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-kardex/pkg/config"
)

func TestApplyPoolLimits(t *testing.T) {
	pc, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/erp?sslmode=disable")
	require.NoError(t, err)

	applyPoolLimits(pc, config.DBConfig{
		MaxConns:        7,
		ConnectTimeout:  3 * time.Second,
		IdleTimeout:     30 * time.Second,
		ApplicationName: "erp-kardex",
	})

	assert.EqualValues(t, 7, pc.MaxConns)
	assert.Equal(t, 30*time.Second, pc.MaxConnIdleTime)
	assert.Equal(t, 3*time.Second, pc.ConnConfig.ConnectTimeout)
	assert.Equal(t, "erp-kardex", pc.ConnConfig.RuntimeParams["application_name"])
}

func TestApplyPoolLimits_RespetaApplicationNameDelDSN(t *testing.T) {
	pc, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/erp?application_name=batch")
	require.NoError(t, err)

	applyPoolLimits(pc, config.DBConfig{MaxConns: 1, ApplicationName: "erp-kardex"})

	assert.Equal(t, "batch", pc.ConnConfig.RuntimeParams["application_name"])
}
