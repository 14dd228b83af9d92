package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/erp-kardex/internal/application/dto"
)

// LowStockScanner fuente de productos bajo mínimo de todas las empresas.
type LowStockScanner interface {
	ScanLowStock(ctx context.Context) ([]dto.LowStockItem, error)
}

// Scheduler ejecuta las tareas periódicas del servidor.
type Scheduler struct {
	cron    *cron.Cron
	scanner LowStockScanner
	spec    string
	timeout time.Duration
	log     zerolog.Logger
}

// New crea el scheduler. spec es una expresión cron de 5 campos (min hora dom mes dow).
func New(spec string, scanner LowStockScanner, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		scanner: scanner,
		spec:    spec,
		timeout: 2 * time.Minute,
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registra la revisión de stock bajo y arranca el cron.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runLowStock); err != nil {
		return fmt.Errorf("scheduler: expresión cron %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info().Str("cron", s.spec).Msg("scheduler iniciado")
	return nil
}

// Stop detiene el cron y espera a que termine la tarea en curso o a que venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler detenido con tarea en curso")
		return
	}
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) runLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.CheckLowStock(ctx); err != nil {
		s.log.Error().Err(err).Msg("revisión de stock bajo falló")
	}
}

// CheckLowStock registra una advertencia por cada producto bajo mínimo y devuelve cuántos hay.
func (s *Scheduler) CheckLowStock(ctx context.Context) (int, error) {
	items, err := s.scanner.ScanLowStock(ctx)
	if err != nil {
		return 0, err
	}
	for _, it := range items {
		s.log.Warn().
			Str("company_id", it.CompanyID).
			Str("product_id", it.ProductID).
			Str("code", it.Code).
			Int("stock", it.Stock).
			Int("minimum_stock", it.MinimumStock).
			Int("missing", it.Missing).
			Msg("stock por debajo del mínimo")
	}
	s.log.Info().Int("products", len(items)).Msg("revisión de stock bajo completada")
	return len(items), nil
}
