package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepository)(nil)
	_ repository.StockRepository   = (*StockRepository)(nil)
)

// ProductRepository productos en memoria. Las cantidades en tienda y bodega se calculan
// desde las unidades de inventario de todas las sucursales.
type ProductRepository struct {
	store *Store
}

// NewProductRepository construye el repositorio.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Create(_ context.Context, product *entity.Product) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.products[product.CatalogNumber]; ok {
			return domain.ErrDuplicate
		}
		st.products[product.CatalogNumber] = *product
		return nil
	})
}

func (r *ProductRepository) GetByCatalogNumber(_ context.Context, catalogNumber int) (*entity.Product, error) {
	var out *entity.Product
	r.store.read(func(st *state) {
		if p, ok := st.products[catalogNumber]; ok {
			p = withQuantities(st, p)
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepository) Update(_ context.Context, product *entity.Product) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.products[product.CatalogNumber]; !ok {
			return domain.ErrNotFound
		}
		st.products[product.CatalogNumber] = *product
		return nil
	})
}

func (r *ProductRepository) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	all := r.filter(func(entity.Product) bool { return true })
	if offset >= len(all) {
		return []*entity.Product{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

func (r *ProductRepository) ListByCategory(_ context.Context, category string) ([]*entity.Product, error) {
	return r.filter(func(p entity.Product) bool { return p.Category == category }), nil
}

func (r *ProductRepository) ListBySupplier(_ context.Context, supplierID int) ([]*entity.Product, error) {
	return r.filter(func(p entity.Product) bool { return p.SupplierID == supplierID }), nil
}

func (r *ProductRepository) filter(keep func(entity.Product) bool) []*entity.Product {
	var list []*entity.Product
	r.store.read(func(st *state) {
		for _, p := range st.products {
			if keep(p) {
				p = withQuantities(st, p)
				list = append(list, &p)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].CatalogNumber < list[j].CatalogNumber })
	return list
}

func withQuantities(st *state, p entity.Product) entity.Product {
	p.QuantityInStore, p.QuantityInWarehouse = 0, 0
	for _, it := range st.items {
		if it.CatalogNumber != p.CatalogNumber {
			continue
		}
		if it.Location == entity.ItemLocationStore {
			p.QuantityInStore++
		} else {
			p.QuantityInWarehouse++
		}
	}
	return p
}

// StockRepository stock por sucursal derivado de las unidades de inventario.
type StockRepository struct {
	store *Store
}

// NewStockRepository construye el repositorio.
func NewStockRepository(store *Store) *StockRepository {
	return &StockRepository{store: store}
}

func (r *StockRepository) ListByBranch(_ context.Context, branchID int) ([]entity.BranchStock, error) {
	var out []entity.BranchStock
	r.store.read(func(st *state) {
		rows := make(map[int]*entity.BranchStock, len(st.products))
		for _, p := range st.products {
			rows[p.CatalogNumber] = &entity.BranchStock{
				CatalogNumber:           p.CatalogNumber,
				BranchID:                branchID,
				MinimumQuantityForAlert: p.MinimumQuantityForAlert,
			}
		}
		for _, it := range st.items {
			row, ok := rows[it.CatalogNumber]
			if !ok || it.BranchID != branchID {
				continue
			}
			if it.Location == entity.ItemLocationStore {
				row.InStore++
			} else {
				row.InWarehouse++
			}
		}
		for _, row := range rows {
			out = append(out, *row)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CatalogNumber < out[j].CatalogNumber })
	return out, nil
}
