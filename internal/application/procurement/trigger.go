package procurement

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DailyReport resultado de la pasada diaria de una sucursal.
type DailyReport struct {
	BranchID int
	Shortage RunReport
	Periodic RunReport
}

// Trigger es el disparador externo del scheduler: calcula faltantes, respeta la marca diaria
// y corre ambas rutas de reposición. Sucursales distintas se procesan en paralelo.
type Trigger struct {
	shortages   ShortageSource
	scheduler   *Scheduler
	log         zerolog.Logger
	maxParallel int
}

// NewTrigger construye el disparador. maxParallel <= 0 significa una sucursal a la vez.
func NewTrigger(shortages ShortageSource, scheduler *Scheduler, log zerolog.Logger, maxParallel int) *Trigger {
	if maxParallel <= 0 {
		maxParallel = 1
	}
	return &Trigger{
		shortages:   shortages,
		scheduler:   scheduler,
		log:         log.With().Str("component", "replenishment_trigger").Logger(),
		maxParallel: maxParallel,
	}
}

// RunDaily ejecuta la pasada de faltantes (si la sucursal no fue procesada hoy) y luego la periódica.
func (t *Trigger) RunDaily(ctx context.Context, branchID int) DailyReport {
	out := DailyReport{BranchID: branchID}
	out.Shortage = t.shortagePass(ctx, branchID)
	out.Periodic = t.scheduler.RunPeriodic(ctx, branchID)
	return out
}

// RunShortage ejecuta solo la pasada de faltantes de la sucursal.
func (t *Trigger) RunShortage(ctx context.Context, branchID int) RunReport {
	return t.shortagePass(ctx, branchID)
}

// RunPeriodic ejecuta solo la pasada periódica de la sucursal.
func (t *Trigger) RunPeriodic(ctx context.Context, branchID int) RunReport {
	return t.scheduler.RunPeriodic(ctx, branchID)
}

func (t *Trigger) shortagePass(ctx context.Context, branchID int) RunReport {
	report := newReport(KindShortage, branchID)
	processed, err := t.scheduler.HasBeenProcessedToday(ctx, branchID)
	if err != nil {
		report.Status = RunAborted
		report.Err = fmt.Errorf("consultar marca diaria: %w", err)
		t.log.Error().Err(err).Int("branch_id", branchID).Msg("no se pudo consultar la marca diaria")
		return report
	}
	if processed {
		report.Status = RunAlreadyProcessed
		return report
	}
	shortageMap, err := t.shortages.ShortageMap(ctx, branchID)
	if err != nil {
		report.Status = RunAborted
		report.Err = err
		t.log.Error().Err(err).Int("branch_id", branchID).Msg("no se pudo calcular el mapa de faltantes")
		return report
	}
	if len(shortageMap) == 0 {
		// Sin faltantes la sucursal igual queda procesada para hoy.
		if err := t.scheduler.MarkProcessedForToday(ctx, branchID); err != nil {
			t.log.Warn().Err(err).Int("branch_id", branchID).Msg("no se pudo marcar la sucursal")
		}
	}
	return t.scheduler.RunShortage(ctx, shortageMap, branchID)
}

// RunAll ejecuta RunDaily para cada sucursal, en paralelo hasta maxParallel.
// Solo devuelve error si ctx se cancela; los fallos por sucursal quedan en cada DailyReport.
func (t *Trigger) RunAll(ctx context.Context, branchIDs []int) ([]DailyReport, error) {
	reports := make([]DailyReport, len(branchIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.maxParallel)
	for i, branchID := range branchIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = t.RunDaily(gctx, branchID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}
