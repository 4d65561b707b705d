package procurement_test

import (
	"context"
	"errors"
	"time"

	appproc "github.com/jhoicas/supply-chain-api/internal/application/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// lunes
var today = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func clock() time.Time { return today }

type detailsMock struct {
	mock.Mock
}

func (m *detailsMock) GetPeriodicOrderProductDetails(ctx context.Context, items map[int]int, agreementID int) ([]entity.OrderProductDetails, error) {
	args := m.Called(ctx, items, agreementID)
	details, _ := args.Get(0).([]entity.OrderProductDetails)
	return details, args.Error(1)
}

func (m *detailsMock) GetShortageOrderProductDetails(ctx context.Context, shortageMap map[int]int, branchID int) ([]entity.OrderProductDetails, error) {
	args := m.Called(ctx, shortageMap, branchID)
	details, _ := args.Get(0).([]entity.OrderProductDetails)
	return details, args.Error(1)
}

// fixture agrupa un store en memoria con el scheduler armado sobre él.
type fixture struct {
	store     *memory.Store
	details   *detailsMock
	scheduler *appproc.Scheduler
	shortages *memory.ShortageOrderRepository
	onTheWay  *memory.OrderOnTheWayRepository
	periodic  *memory.PeriodicOrderRepository
	items     *memory.ItemRepository
	runs      *memory.ReplenishmentRunRepository
}

func newFixture() *fixture {
	store := memory.NewStore()
	f := &fixture{
		store:     store,
		details:   &detailsMock{},
		shortages: memory.NewShortageOrderRepository(store),
		onTheWay:  memory.NewOrderOnTheWayRepository(store),
		periodic:  memory.NewPeriodicOrderRepository(store),
		items:     memory.NewItemRepository(store),
		runs:      memory.NewReplenishmentRunRepository(store),
	}
	f.scheduler = appproc.NewScheduler(f.details, memory.NewTxRunner(store), f.periodic, f.runs, zerolog.Nop()).
		WithClock(clock)
	return f
}

func detail(catalogNumber, qty int, price, discount int64) entity.OrderProductDetails {
	return entity.OrderProductDetails{
		SupplierID:    3,
		SupplierName:  "Lácteos del Valle",
		DeliveryDays:  []time.Weekday{time.Monday, time.Thursday},
		AgreementID:   30,
		ProductID:     catalogNumber * 10,
		CatalogNumber: catalogNumber,
		Price:         decimal.NewFromInt(price),
		Discount:      decimal.NewFromInt(discount),
		Quantity:      qty,
	}
}

// failingTx envuelve un TxRunner y hace fallar el n-ésimo insert de orden por faltante.
type failingTx struct {
	inner     appproc.TxRunner
	failOnNth int
}

func (f failingTx) RunProcurement(ctx context.Context, fn func(repos appproc.TxRepos) error) error {
	return f.inner.RunProcurement(ctx, func(repos appproc.TxRepos) error {
		repos.ShortageOrders = &failingShortageRepo{ShortageOrderRepository: repos.ShortageOrders, failOnNth: f.failOnNth}
		return fn(repos)
	})
}

type failingShortageRepo struct {
	repository.ShortageOrderRepository
	failOnNth int
	calls     int
}

func (r *failingShortageRepo) Create(ctx context.Context, order *entity.ShortageOrder) error {
	r.calls++
	if r.calls == r.failOnNth {
		return errors.New("conexión perdida")
	}
	return r.ShortageOrderRepository.Create(ctx, order)
}

type brokenPeriodicRepo struct {
	repository.PeriodicOrderRepository
}

func (brokenPeriodicRepo) ListByBranch(context.Context, int) ([]*entity.PeriodicOrder, error) {
	return nil, errors.New("tabla no disponible")
}

type shortageFunc func(ctx context.Context, branchID int) (map[int]int, error)

func (f shortageFunc) ShortageMap(ctx context.Context, branchID int) (map[int]int, error) {
	return f(ctx, branchID)
}
