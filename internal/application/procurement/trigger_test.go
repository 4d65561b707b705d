package procurement_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	appproc "github.com/jhoicas/supply-chain-api/internal/application/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRunDaily_SinFaltantesMarcaLaSucursal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	var calls atomic.Int32
	source := shortageFunc(func(context.Context, int) (map[int]int, error) {
		calls.Add(1)
		return map[int]int{}, nil
	})
	trigger := appproc.NewTrigger(source, f.scheduler, zerolog.Nop(), 1)

	first := trigger.RunDaily(ctx, branch)
	second := trigger.RunDaily(ctx, branch)

	assert.Equal(t, appproc.RunEmpty, first.Shortage.Status)
	assert.Equal(t, appproc.RunAlreadyProcessed, second.Shortage.Status)
	assert.Equal(t, int32(1), calls.Load(), "la segunda pasada no recalcula faltantes")
	f.details.AssertNotCalled(t, "GetShortageOrderProductDetails", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunDaily_EjecutaFaltantesYPeriodicas(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.periodic.Create(ctx, periodicDef("p-1", 4, 30, time.Monday)))
	f.details.On("GetShortageOrderProductDetails", mock.Anything, map[int]int{1007: 6}, branch).
		Return([]entity.OrderProductDetails{detail(1007, 6, 15, 5)}, nil).Once()
	f.details.On("GetPeriodicOrderProductDetails", mock.Anything, map[int]int{4: 4}, 30).
		Return([]entity.OrderProductDetails{detail(1004, 4, 50, 0)}, nil).Once()
	source := shortageFunc(func(context.Context, int) (map[int]int, error) {
		return map[int]int{1007: 6}, nil
	})

	report := appproc.NewTrigger(source, f.scheduler, zerolog.Nop(), 1).RunDaily(ctx, branch)

	assert.Equal(t, branch, report.BranchID)
	assert.Equal(t, appproc.RunCompleted, report.Shortage.Status)
	assert.Equal(t, 1, report.Shortage.Processed)
	assert.Equal(t, appproc.RunCompleted, report.Periodic.Status)
	assert.Equal(t, 1, report.Periodic.Processed)
	f.details.AssertExpectations(t)
}

func TestRunDaily_ErrorDeFaltantesNoImpidePeriodicas(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	source := shortageFunc(func(context.Context, int) (map[int]int, error) {
		return nil, errors.New("stock no disponible")
	})

	report := appproc.NewTrigger(source, f.scheduler, zerolog.Nop(), 1).RunDaily(ctx, branch)

	assert.Equal(t, appproc.RunAborted, report.Shortage.Status)
	assert.ErrorContains(t, report.Shortage.Err, "stock no disponible")
	assert.Equal(t, appproc.RunCompleted, report.Periodic.Status)
}

func TestRunShortage_PasadasConcurrentesEmitenUnaSolaVez(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.details.On("GetShortageOrderProductDetails", mock.Anything, map[int]int{1004: 5, 1005: 3}, branch).
		Return([]entity.OrderProductDetails{detail(1004, 5, 20, 10), detail(1005, 3, 12, 0)}, nil)
	source := shortageFunc(func(context.Context, int) (map[int]int, error) {
		return map[int]int{1004: 5, 1005: 3}, nil
	})
	trigger := appproc.NewTrigger(source, f.scheduler, zerolog.Nop(), 1)

	const workers = 8
	reports := make([]appproc.RunReport, workers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			reports[i] = trigger.RunShortage(ctx, branch)
		}()
	}
	close(start)
	wg.Wait()

	completed, already := 0, 0
	for _, r := range reports {
		switch r.Status {
		case appproc.RunCompleted:
			completed++
			assert.Equal(t, 2, r.Processed)
		case appproc.RunAlreadyProcessed:
			already++
		}
	}
	assert.Equal(t, 1, completed)
	assert.Equal(t, workers-1, already)
	f.details.AssertNumberOfCalls(t, "GetShortageOrderProductDetails", 1)
	orders, err := f.shortages.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestRunAll_ProcesaCadaSucursal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.details.On("GetShortageOrderProductDetails", mock.Anything, mock.Anything, mock.Anything).
		Return([]entity.OrderProductDetails{detail(1004, 2, 10, 0)}, nil)
	source := shortageFunc(func(context.Context, int) (map[int]int, error) {
		return map[int]int{1004: 2}, nil
	})
	trigger := appproc.NewTrigger(source, f.scheduler, zerolog.Nop(), 2)

	reports, err := trigger.RunAll(ctx, []int{1, 2, 3})

	require.NoError(t, err)
	require.Len(t, reports, 3)
	for i, r := range reports {
		assert.Equal(t, i+1, r.BranchID)
		assert.Equal(t, appproc.RunCompleted, r.Shortage.Status)
		assert.Equal(t, 1, r.Shortage.Processed)
	}
	orders, _ := f.shortages.ListAll(ctx)
	assert.Len(t, orders, 3)
}

func TestRunAll_ContextoCanceladoDevuelveError(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	source := shortageFunc(func(context.Context, int) (map[int]int, error) {
		return map[int]int{}, nil
	})

	_, err := appproc.NewTrigger(source, f.scheduler, zerolog.Nop(), 1).RunAll(ctx, []int{1, 2})

	assert.ErrorIs(t, err, context.Canceled)
}
