package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLRI_DesalojaLaInsercionMasAntigua(t *testing.T) {
	c := cache.NewLRI[int, string](2)
	c.Put(1, "uno")
	c.Put(2, "dos")

	// leer 1 no lo rejuvenece
	_, ok := c.Get(1)
	require.True(t, ok)
	c.Put(3, "tres")

	_, ok = c.Get(1)
	assert.False(t, ok)
	v, ok := c.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "dos", v)
	assert.Equal(t, 2, c.Len())
}

func TestLRI_ReemplazoNoRejuvenece(t *testing.T) {
	c := cache.NewLRI[int, string](2)
	c.Put(1, "uno")
	c.Put(2, "dos")
	c.Put(1, "UNO")
	c.Put(3, "tres")

	_, ok := c.Get(1)
	assert.False(t, ok)
	_, ok = c.Get(3)
	assert.True(t, ok)
}

func TestLRI_CapacidadCeroNoGuarda(t *testing.T) {
	c := cache.NewLRI[string, int](0)
	c.Put("a", 1)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

type agreementRepoMock struct {
	mock.Mock
}

func (m *agreementRepoMock) GetByID(ctx context.Context, id int) (*entity.SupplierAgreement, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.SupplierAgreement)
	return a, args.Error(1)
}

func (m *agreementRepoMock) ListBySupplier(ctx context.Context, supplierID int) ([]*entity.SupplierAgreement, error) {
	args := m.Called(ctx, supplierID)
	list, _ := args.Get(0).([]*entity.SupplierAgreement)
	return list, args.Error(1)
}

func (m *agreementRepoMock) Upsert(ctx context.Context, agreement *entity.SupplierAgreement) error {
	return m.Called(ctx, agreement).Error(0)
}

func TestAgreementRepository_CacheaEInvalida(t *testing.T) {
	ctx := context.Background()
	next := &agreementRepoMock{}
	agreement := &entity.SupplierAgreement{ID: 5, SupplierID: 1, DeliveryDays: []time.Weekday{time.Monday}}
	next.On("GetByID", mock.Anything, 5).Return(agreement, nil)
	next.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	repo := cache.NewAgreementRepository(next, 8)

	for i := 0; i < 3; i++ {
		got, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, got.ID)
	}
	next.AssertNumberOfCalls(t, "GetByID", 1)

	require.NoError(t, repo.Upsert(ctx, agreement))
	_, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	next.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestAgreementRepository_NoCacheaInexistentes(t *testing.T) {
	ctx := context.Background()
	next := &agreementRepoMock{}
	next.On("GetByID", mock.Anything, 9).Return(nil, nil)
	repo := cache.NewAgreementRepository(next, 8)

	a, err := repo.GetByID(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, a)
	_, _ = repo.GetByID(ctx, 9)

	next.AssertNumberOfCalls(t, "GetByID", 2)
}

// slowAgreementRepo entrega la fila leída y luego espera release antes de devolverla.
type slowAgreementRepo struct {
	mu      sync.Mutex
	row     entity.SupplierAgreement
	read    chan struct{}
	release chan struct{}
}

func (r *slowAgreementRepo) GetByID(_ context.Context, _ int) (*entity.SupplierAgreement, error) {
	r.mu.Lock()
	a := r.row
	r.mu.Unlock()
	close(r.read)
	<-r.release
	return &a, nil
}

func (r *slowAgreementRepo) ListBySupplier(context.Context, int) ([]*entity.SupplierAgreement, error) {
	return nil, nil
}

func (r *slowAgreementRepo) Upsert(_ context.Context, agreement *entity.SupplierAgreement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.row = *agreement
	return nil
}

func TestAgreementRepository_LecturaLentaNoPisaUnaActualizacion(t *testing.T) {
	ctx := context.Background()
	next := &slowAgreementRepo{
		row:     entity.SupplierAgreement{ID: 5, SupplierID: 1, DeliveryDays: []time.Weekday{time.Monday}},
		read:    make(chan struct{}),
		release: make(chan struct{}),
	}
	repo := cache.NewAgreementRepository(next, 8)

	done := make(chan *entity.SupplierAgreement)
	go func() {
		a, _ := repo.GetByID(ctx, 5)
		done <- a
	}()
	<-next.read
	require.NoError(t, repo.Upsert(ctx, &entity.SupplierAgreement{ID: 5, SupplierID: 1, DeliveryDays: []time.Weekday{time.Friday}}))
	close(next.release)
	stale := <-done
	assert.Equal(t, []time.Weekday{time.Monday}, stale.DeliveryDays, "la lectura en curso devuelve lo que leyó")

	// la siguiente lectura va al repositorio porque la fila vieja no quedó en caché
	next.read = make(chan struct{})
	next.release = make(chan struct{})
	close(next.release)
	got, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Friday}, got.DeliveryDays)

	cached, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Friday}, cached.DeliveryDays)
}
