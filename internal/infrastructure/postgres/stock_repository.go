package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo lectura del stock por sucursal, agregando inventory_items por ubicación.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// ListByBranch devuelve una fila por producto del catálogo, incluidos los que no tienen unidades en la sucursal.
func (r *StockRepo) ListByBranch(ctx context.Context, branchID int) ([]entity.BranchStock, error) {
	query := `
		SELECT p.catalog_number,
			count(i.id) FILTER (WHERE i.location = 'STORE'),
			count(i.id) FILTER (WHERE i.location = 'WAREHOUSE'),
			p.minimum_quantity_for_alert
		FROM products p
		LEFT JOIN inventory_items i ON i.catalog_number = p.catalog_number AND i.branch_id = $1
		GROUP BY p.catalog_number, p.minimum_quantity_for_alert
		ORDER BY p.catalog_number`
	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list branch stock: %w", err)
	}
	defer rows.Close()
	var list []entity.BranchStock
	for rows.Next() {
		s := entity.BranchStock{BranchID: branchID}
		if err := rows.Scan(&s.CatalogNumber, &s.InStore, &s.InWarehouse, &s.MinimumQuantityForAlert); err != nil {
			return nil, fmt.Errorf("scan branch stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
