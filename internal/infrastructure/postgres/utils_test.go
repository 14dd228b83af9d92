package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-kardex/internal/domain"
)

func TestIsLockContention(t *testing.T) {
	wrapped := func(code string) error {
		return fmt.Errorf("get product for update: %w", &pgconn.PgError{Code: code})
	}
	assert.True(t, isLockContention(wrapped(codeLockNotAvailable)))
	assert.True(t, isLockContention(wrapped(codeDeadlockDetected)))
	assert.False(t, isLockContention(wrapped(codeUniqueViolation)))
	assert.False(t, isLockContention(errors.New("boom")))
}

func TestWriteErr_TraduceViolaciones(t *testing.T) {
	assert.ErrorIs(t, writeErr("insert", &pgconn.PgError{Code: codeUniqueViolation}), domain.ErrDuplicate)
	assert.ErrorIs(t, writeErr("insert", &pgconn.PgError{Code: codeForeignKeyViolation}), domain.ErrConflict)
	assert.NoError(t, writeErr("insert", nil))
}
