package procurement

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	domainproc "github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
	"github.com/jhoicas/supply-chain-api/pkg/metrics"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	errAlreadyProcessed = errors.New("sucursal ya procesada hoy")
	hundred             = decimal.NewFromInt(100)
)

// Scheduler convierte el estado de inventario en órdenes de reposición (periódicas y por faltante).
// Es síncrono: cada llamada es un lote que lee una vez y escribe secuencialmente.
type Scheduler struct {
	details  DetailsProvider
	tx       TxRunner
	periodic repository.PeriodicOrderRepository
	runs     repository.ReplenishmentRunRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewScheduler construye el scheduler.
func NewScheduler(
	details DetailsProvider,
	tx TxRunner,
	periodic repository.PeriodicOrderRepository,
	runs repository.ReplenishmentRunRepository,
	log zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		details:  details,
		tx:       tx,
		periodic: periodic,
		runs:     runs,
		log:      log.With().Str("component", "replenishment_scheduler").Logger(),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests y reprocesos de un día concreto).
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// HasBeenProcessedToday indica si la sucursal ya tuvo su pasada de faltantes hoy.
func (s *Scheduler) HasBeenProcessedToday(ctx context.Context, branchID int) (bool, error) {
	return s.runs.HasBeenProcessedToday(ctx, branchID, s.now())
}

// MarkProcessedForToday marca la sucursal como procesada hoy. Es idempotente.
func (s *Scheduler) MarkProcessedForToday(ctx context.Context, branchID int) error {
	_, err := s.runs.ClaimForToday(ctx, branchID, s.now())
	return err
}

// RunPeriodic ejecuta las órdenes periódicas de la sucursal cuyo día de la semana coincide con hoy.
// Cada definición se escribe en su propia transacción; un error omite esa definición y continúa.
func (s *Scheduler) RunPeriodic(ctx context.Context, branchID int) (report RunReport) {
	start := time.Now()
	today := s.now()
	report = newReport(KindPeriodic, branchID)
	defer s.finish(&report, start)

	defs, err := s.periodic.ListByBranch(ctx, branchID)
	if err != nil {
		report.Status = RunAborted
		report.Err = fmt.Errorf("cargar órdenes periódicas: %w", err)
		s.log.Error().Err(err).Int("branch_id", branchID).Msg("no se pudieron cargar las órdenes periódicas")
		return report
	}

	for _, def := range defs {
		if !def.ScheduledOn(today.Weekday()) {
			report.add(Outcome{Key: def.ID, CatalogNumber: def.CatalogNumber, Status: OutcomeNotScheduled})
			continue
		}
		if err := s.placePeriodic(ctx, def, today); err != nil {
			s.log.Warn().Err(err).
				Int("branch_id", branchID).
				Str("periodic_order_id", def.ID).
				Int("catalog_number", def.CatalogNumber).
				Int("agreement_id", def.AgreementID).
				Msg("orden periódica omitida")
			report.add(Outcome{Key: def.ID, CatalogNumber: def.CatalogNumber, Status: OutcomeSkipped, Reason: err})
			continue
		}
		report.add(Outcome{Key: def.ID, CatalogNumber: def.CatalogNumber, Status: OutcomeProcessed})
	}
	return report
}

func (s *Scheduler) placePeriodic(ctx context.Context, def *entity.PeriodicOrder, today time.Time) error {
	details, err := s.details.GetPeriodicOrderProductDetails(ctx, map[int]int{def.ProductID: def.Quantity}, def.AgreementID)
	if err != nil {
		return fmt.Errorf("detalle de productos: %w", err)
	}
	return s.tx.RunProcurement(ctx, func(repos TxRepos) error {
		for _, d := range details {
			catalogNumber := d.CatalogNumber
			if catalogNumber == 0 {
				catalogNumber = def.CatalogNumber
			}
			order := &entity.OrderOnTheWay{
				ID:            uuid.New().String(),
				CatalogNumber: catalogNumber,
				BranchID:      def.BranchID,
				SupplierID:    d.SupplierID,
				Quantity:      d.Quantity,
				Price:         d.Price,
				Discount:      d.Discount,
				OrderDate:     today,
				Status:        entity.OrderStatusPending,
			}
			if err := repos.OnTheWay.Create(ctx, order); err != nil {
				return fmt.Errorf("insertar orden en camino: %w", err)
			}
			cost := d.Price.Mul(hundred.Sub(d.Discount)).Div(hundred)
			for i := 0; i < d.Quantity; i++ {
				item := &entity.InventoryItem{
					ID:            uuid.New().String(),
					CatalogNumber: catalogNumber,
					BranchID:      def.BranchID,
					Location:      entity.ItemLocationWarehouse,
					CostPrice:     cost,
					ReceivedAt:    today,
				}
				if err := repos.Items.AddItem(ctx, item); err != nil {
					return fmt.Errorf("insertar ítem de inventario: %w", err)
				}
			}
		}
		next, ok := domainproc.NextOccurrence(today, def.DaysInTheWeek)
		if !ok {
			return nil
		}
		if err := repos.PeriodicOrders.UpdateSchedule(ctx, def.ID, domainproc.DateOnly(today), next); err != nil {
			return fmt.Errorf("actualizar calendario de orden periódica: %w", err)
		}
		return nil
	})
}

// RunShortage emite una orden por faltante por cada detalle devuelto por el gateway.
// La marca diaria de la sucursal se reclama en la misma transacción que los inserts:
// una segunda corrida del mismo día no llama al gateway ni inserta nada, y cualquier error
// revierte todo (incluida la marca).
func (s *Scheduler) RunShortage(ctx context.Context, shortageMap map[int]int, branchID int) (report RunReport) {
	report = newReport(KindShortage, branchID)
	if len(shortageMap) == 0 {
		report.Status = RunEmpty
		return report
	}
	start := time.Now()
	defer s.finish(&report, start)
	today := s.now()

	var outcomes []Outcome
	err := s.tx.RunProcurement(ctx, func(repos TxRepos) error {
		outcomes = outcomes[:0]
		claimed, err := repos.Runs.ClaimForToday(ctx, branchID, today)
		if err != nil {
			return fmt.Errorf("reclamar marca diaria: %w", err)
		}
		if !claimed {
			return errAlreadyProcessed
		}

		toOrder := make(map[int]int, len(shortageMap))
		for _, catalogNumber := range sortedKeys(shortageMap) {
			open, err := repos.ShortageOrders.HasPendingOrderForProduct(ctx, catalogNumber, branchID)
			if err != nil {
				return fmt.Errorf("verificar órdenes abiertas: %w", err)
			}
			if open {
				outcomes = append(outcomes, Outcome{Key: catalogKey(catalogNumber), CatalogNumber: catalogNumber, Status: OutcomePendingOrder})
				continue
			}
			toOrder[catalogNumber] = shortageMap[catalogNumber]
		}
		if len(toOrder) == 0 {
			return nil
		}

		details, err := s.details.GetShortageOrderProductDetails(ctx, toOrder, branchID)
		if err != nil {
			return fmt.Errorf("detalle de productos faltantes: %w", err)
		}
		covered := make(map[int]bool, len(details))
		for _, d := range details {
			order := &entity.ShortageOrder{
				ID:                 uuid.New().String(),
				CatalogNumber:      d.CatalogNumber,
				Quantity:           d.Quantity,
				CostBeforeDiscount: d.Price,
				SupplierDiscount:   d.Discount,
				OrderDate:          today,
				BranchID:           branchID,
				DaysInTheWeek:      d.DeliveryDays,
				SupplierID:         d.SupplierID,
				SupplierName:       d.SupplierName,
				Status:             entity.OrderStatusPending,
			}
			if err := repos.ShortageOrders.Create(ctx, order); err != nil {
				return fmt.Errorf("insertar orden por faltante: %w", err)
			}
			outcomes = append(outcomes, Outcome{Key: order.ID, CatalogNumber: d.CatalogNumber, Status: OutcomeProcessed})
			covered[d.CatalogNumber] = true
		}
		for _, catalogNumber := range sortedKeys(toOrder) {
			if covered[catalogNumber] {
				continue
			}
			// ningún proveedor ofrece el producto
			outcomes = append(outcomes, Outcome{
				Key:           catalogKey(catalogNumber),
				CatalogNumber: catalogNumber,
				Status:        OutcomeSkipped,
				Reason:        domain.ErrNoSupplierOffer,
			})
		}
		return nil
	})

	switch {
	case errors.Is(err, errAlreadyProcessed):
		report.Status = RunAlreadyProcessed
		s.log.Info().Int("branch_id", branchID).Msg("faltantes ya procesados hoy, corrida omitida")
	case err != nil:
		report.Status = RunAborted
		report.Err = err
		s.log.Error().Err(err).Int("branch_id", branchID).Int("products", len(shortageMap)).
			Msg("corrida de faltantes abortada, sin órdenes insertadas")
	default:
		for _, o := range outcomes {
			report.add(o)
		}
	}
	return report
}

func (s *Scheduler) finish(report *RunReport, start time.Time) {
	report.Duration = time.Since(start)
	metrics.ObserveRun(string(report.Kind), string(report.Status), report.Duration)
	for _, o := range report.Outcomes {
		metrics.ObserveItem(string(report.Kind), string(o.Status))
	}
	s.log.Info().
		Str("kind", string(report.Kind)).
		Int("branch_id", report.BranchID).
		Str("status", string(report.Status)).
		Int("processed", report.Processed).
		Int("skipped", report.Skipped()).
		Dur("duration", report.Duration).
		Msg("corrida de reposición finalizada")
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
