package repository

import (
	"context"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
)

// DiscountRepository define el puerto de persistencia para escalones de descuento.
type DiscountRepository interface {
	// Upsert inserta o reemplaza la regla con clave (scope, owner, objetivo, min_quantity).
	Upsert(ctx context.Context, rule *entity.DiscountRule) error
	ListForOffer(ctx context.Context, supplierID, agreementID, productID int) ([]entity.DiscountRule, error)
	ListByCatalogNumber(ctx context.Context, scope entity.DiscountScope, catalogNumber int) ([]entity.DiscountRule, error)
	ListByCategory(ctx context.Context, scope entity.DiscountScope, category string) ([]entity.DiscountRule, error)
}
