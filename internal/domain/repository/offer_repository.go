package repository

import (
	"context"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
)

// OfferRepository define el puerto para las ofertas producto-proveedor.
// Las implementaciones no cargan Discounts; eso lo hace el gateway.
type OfferRepository interface {
	Upsert(ctx context.Context, offer *entity.SupplierOffer) error
	ListByProduct(ctx context.Context, productID int) ([]*entity.SupplierOffer, error)
	ListByCatalogNumber(ctx context.Context, catalogNumber int) ([]*entity.SupplierOffer, error)
	GetByAgreementAndProduct(ctx context.Context, agreementID, productID int) (*entity.SupplierOffer, error)
}
