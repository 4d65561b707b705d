package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Las cantidades en tienda y bodega se cuentan desde inventory_items.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	p.catalog_number, COALESCE(p.supplier_id, 0), p.name, p.base_price, p.unit, p.category, p.sub_category,
	p.demand_level, p.supply_time_days, p.minimum_quantity_for_alert,
	(SELECT count(*) FROM inventory_items i WHERE i.catalog_number = p.catalog_number AND i.location = 'STORE'),
	(SELECT count(*) FROM inventory_items i WHERE i.catalog_number = p.catalog_number AND i.location = 'WAREHOUSE'),
	p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.CatalogNumber, &p.SupplierID, &p.Name, &p.BasePrice, &p.Unit, &p.Category, &p.SubCategory,
		&p.DemandLevel, &p.SupplyTimeDays, &p.MinimumQuantityForAlert,
		&p.QuantityInStore, &p.QuantityInWarehouse, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (catalog_number, supplier_id, name, base_price, unit, category, sub_category,
			demand_level, supply_time_days, minimum_quantity_for_alert, created_at, updated_at)
		VALUES ($1, NULLIF($2, 0), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		product.CatalogNumber, product.SupplierID, product.Name, product.BasePrice, product.Unit,
		product.Category, product.SubCategory, product.DemandLevel, product.SupplyTimeDays,
		product.MinimumQuantityForAlert, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByCatalogNumber obtiene un producto por número de catálogo; nil si no existe.
func (r *ProductRepo) GetByCatalogNumber(ctx context.Context, catalogNumber int) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.catalog_number = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, catalogNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los datos maestros del producto. Las cantidades no se tocan (se manejan vía ítems).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET supplier_id = NULLIF($2, 0), name = $3, base_price = $4, unit = $5, category = $6,
			sub_category = $7, demand_level = $8, supply_time_days = $9, minimum_quantity_for_alert = $10, updated_at = $11
		WHERE catalog_number = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.CatalogNumber, product.SupplierID, product.Name, product.BasePrice, product.Unit,
		product.Category, product.SubCategory, product.DemandLevel, product.SupplyTimeDays,
		product.MinimumQuantityForAlert, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos por número de catálogo con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p ORDER BY p.catalog_number LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListByCategory lista los productos de una categoría.
func (r *ProductRepo) ListByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.category = $1 ORDER BY p.catalog_number`
	return r.list(ctx, query, category)
}

// ListBySupplier lista los productos cuyo proveedor principal es supplierID.
func (r *ProductRepo) ListBySupplier(ctx context.Context, supplierID int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.supplier_id = $1 ORDER BY p.catalog_number`
	return r.list(ctx, query, supplierID)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
