package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository  = (*SupplierRepository)(nil)
	_ repository.AgreementRepository = (*AgreementRepository)(nil)
)

// SupplierRepository proveedores en memoria.
type SupplierRepository struct {
	store *Store
}

// NewSupplierRepository construye el repositorio.
func NewSupplierRepository(store *Store) *SupplierRepository {
	return &SupplierRepository{store: store}
}

func (r *SupplierRepository) GetByID(_ context.Context, id int) (*entity.Supplier, error) {
	var out *entity.Supplier
	r.store.read(func(st *state) {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *SupplierRepository) Upsert(_ context.Context, supplier *entity.Supplier) error {
	return r.store.write(func(st *state) error {
		st.suppliers[supplier.ID] = *supplier
		return nil
	})
}

// AgreementRepository acuerdos con proveedores en memoria.
type AgreementRepository struct {
	store *Store
}

// NewAgreementRepository construye el repositorio.
func NewAgreementRepository(store *Store) *AgreementRepository {
	return &AgreementRepository{store: store}
}

func (r *AgreementRepository) GetByID(_ context.Context, id int) (*entity.SupplierAgreement, error) {
	var out *entity.SupplierAgreement
	r.store.read(func(st *state) {
		if a, ok := st.agreements[id]; ok {
			a.DeliveryDays = slices.Clone(a.DeliveryDays)
			out = &a
		}
	})
	return out, nil
}

func (r *AgreementRepository) ListBySupplier(_ context.Context, supplierID int) ([]*entity.SupplierAgreement, error) {
	var list []*entity.SupplierAgreement
	r.store.read(func(st *state) {
		for _, a := range st.agreements {
			if a.SupplierID == supplierID {
				a.DeliveryDays = slices.Clone(a.DeliveryDays)
				list = append(list, &a)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *AgreementRepository) Upsert(_ context.Context, agreement *entity.SupplierAgreement) error {
	a := *agreement
	a.DeliveryDays = slices.Clone(agreement.DeliveryDays)
	return r.store.write(func(st *state) error {
		st.agreements[a.ID] = a
		return nil
	})
}
