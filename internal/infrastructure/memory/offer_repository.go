package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

var (
	_ repository.OfferRepository    = (*OfferRepository)(nil)
	_ repository.DiscountRepository = (*DiscountRepository)(nil)
)

// OfferRepository ofertas producto-proveedor en memoria, con clave (acuerdo, producto).
type OfferRepository struct {
	store *Store
}

// NewOfferRepository construye el repositorio.
func NewOfferRepository(store *Store) *OfferRepository {
	return &OfferRepository{store: store}
}

func (r *OfferRepository) Upsert(_ context.Context, offer *entity.SupplierOffer) error {
	o := *offer
	o.Discounts = nil
	return r.store.write(func(st *state) error {
		st.offers[offerKey{agreementID: o.AgreementID, productID: o.ProductID}] = o
		return nil
	})
}

func (r *OfferRepository) ListByProduct(_ context.Context, productID int) ([]*entity.SupplierOffer, error) {
	return r.filter(func(o entity.SupplierOffer) bool { return o.ProductID == productID }), nil
}

func (r *OfferRepository) ListByCatalogNumber(_ context.Context, catalogNumber int) ([]*entity.SupplierOffer, error) {
	return r.filter(func(o entity.SupplierOffer) bool { return o.CatalogNumber == catalogNumber }), nil
}

func (r *OfferRepository) GetByAgreementAndProduct(_ context.Context, agreementID, productID int) (*entity.SupplierOffer, error) {
	var out *entity.SupplierOffer
	r.store.read(func(st *state) {
		if o, ok := st.offers[offerKey{agreementID: agreementID, productID: productID}]; ok {
			out = &o
		}
	})
	return out, nil
}

func (r *OfferRepository) filter(keep func(entity.SupplierOffer) bool) []*entity.SupplierOffer {
	var list []*entity.SupplierOffer
	r.store.read(func(st *state) {
		for _, o := range st.offers {
			if keep(o) {
				list = append(list, &o)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].SupplierID != list[j].SupplierID {
			return list[i].SupplierID < list[j].SupplierID
		}
		return list[i].AgreementID < list[j].AgreementID
	})
	return list
}

// DiscountRepository escalones de descuento en memoria, en orden de escritura.
type DiscountRepository struct {
	store *Store
}

// NewDiscountRepository construye el repositorio.
func NewDiscountRepository(store *Store) *DiscountRepository {
	return &DiscountRepository{store: store}
}

func sameKey(a, b entity.DiscountRule) bool {
	return a.Scope == b.Scope && a.OwnerID == b.OwnerID && a.AgreementID == b.AgreementID &&
		a.ProductID == b.ProductID && a.CatalogNumber == b.CatalogNumber &&
		a.Category == b.Category && a.MinQuantity == b.MinQuantity
}

func (r *DiscountRepository) Upsert(_ context.Context, rule *entity.DiscountRule) error {
	return r.store.write(func(st *state) error {
		for i := range st.discounts {
			if sameKey(st.discounts[i], *rule) {
				rule.ID = st.discounts[i].ID
				next := append([]entity.DiscountRule(nil), st.discounts...)
				next[i] = *rule
				st.discounts = next
				return nil
			}
		}
		if rule.ID == "" {
			rule.ID = uuid.New().String()
		}
		st.discounts = append(append([]entity.DiscountRule(nil), st.discounts...), *rule)
		return nil
	})
}

func (r *DiscountRepository) ListForOffer(_ context.Context, supplierID, agreementID, productID int) ([]entity.DiscountRule, error) {
	return r.filter(func(d entity.DiscountRule) bool {
		return d.Scope == entity.DiscountScopeSupplier && d.OwnerID == supplierID &&
			d.AgreementID == agreementID && d.ProductID == productID
	}), nil
}

func (r *DiscountRepository) ListByCatalogNumber(_ context.Context, scope entity.DiscountScope, catalogNumber int) ([]entity.DiscountRule, error) {
	return r.filter(func(d entity.DiscountRule) bool {
		return d.Scope == scope && d.CatalogNumber == catalogNumber && d.Category == ""
	}), nil
}

func (r *DiscountRepository) ListByCategory(_ context.Context, scope entity.DiscountScope, category string) ([]entity.DiscountRule, error) {
	return r.filter(func(d entity.DiscountRule) bool {
		return d.Scope == scope && d.Category == category && category != ""
	}), nil
}

func (r *DiscountRepository) filter(keep func(entity.DiscountRule) bool) []entity.DiscountRule {
	var list []entity.DiscountRule
	r.store.read(func(st *state) {
		for _, d := range st.discounts {
			if keep(d) {
				list = append(list, d)
			}
		}
	})
	return list
}
