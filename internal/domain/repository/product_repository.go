package repository

import (
	"context"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByCatalogNumber(ctx context.Context, catalogNumber int) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.Product, error)
	ListBySupplier(ctx context.Context, supplierID int) ([]*entity.Product, error)
}
