package cache

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

var _ repository.AgreementRepository = (*AgreementRepository)(nil)

// AgreementRepository decora un AgreementRepository con una caché LRI por ID.
// Upsert escribe en el repositorio, sube la versión del ID e invalida la entrada; una lectura
// que empezó antes de esa versión no vuelve a guardar su fila en la caché.
type AgreementRepository struct {
	next  repository.AgreementRepository
	cache *LRI[int, entity.SupplierAgreement]

	mu       sync.Mutex
	versions map[int]uint64
}

// NewAgreementRepository envuelve next con una caché de capacity acuerdos.
func NewAgreementRepository(next repository.AgreementRepository, capacity int) *AgreementRepository {
	return &AgreementRepository{
		next:     next,
		cache:    NewLRI[int, entity.SupplierAgreement](capacity),
		versions: make(map[int]uint64),
	}
}

func (r *AgreementRepository) GetByID(ctx context.Context, id int) (*entity.SupplierAgreement, error) {
	if a, ok := r.cache.Get(id); ok {
		a.DeliveryDays = slices.Clone(a.DeliveryDays)
		return &a, nil
	}
	r.mu.Lock()
	version := r.versions[id]
	r.mu.Unlock()

	a, err := r.next.GetByID(ctx, id)
	if err != nil || a == nil {
		return a, err
	}
	cached := *a
	cached.DeliveryDays = slices.Clone(a.DeliveryDays)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.versions[id] == version {
		r.cache.Put(id, cached)
	}
	return a, nil
}

func (r *AgreementRepository) ListBySupplier(ctx context.Context, supplierID int) ([]*entity.SupplierAgreement, error) {
	return r.next.ListBySupplier(ctx, supplierID)
}

func (r *AgreementRepository) Upsert(ctx context.Context, agreement *entity.SupplierAgreement) error {
	if err := r.next.Upsert(ctx, agreement); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.versions[agreement.ID]++
	r.cache.Delete(agreement.ID)
	return nil
}
