package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/erp-kardex/internal/domain"
	"github.com/jhoicas/erp-kardex/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks de escritura dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// TxOption ajusta el runner.
type TxOption func(*TxRunner)

// WithLockTimeout acota la espera por locks de fila (SELECT ... FOR UPDATE sobre productos).
// Cero deja el valor del servidor.
func WithLockTimeout(d time.Duration) TxOption {
	return func(r *TxRunner) { r.lockTimeout = d }
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, opts ...TxOption) *TxRunner {
	r := &TxRunner{pool: pool}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run abre la transacción, entrega a fn un Store atado a ella y hace Commit solo si fn
// devuelve nil. El Rollback diferido es no-op tras el Commit, así que la conexión vuelve
// al pool en todos los caminos.
func (r *TxRunner) Run(ctx context.Context, fn func(store repository.Store) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		// SET LOCAL no acepta parámetros; el valor es un entero en milisegundos.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("lock_timeout: %w", err)
		}
	}

	if err := fn(NewStore(tx)); err != nil {
		if isLockContention(err) {
			return fmt.Errorf("%w: recurso bloqueado por otra operación, reintente", domain.ErrConflict)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
