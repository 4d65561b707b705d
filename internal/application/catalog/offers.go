package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

// OfferLoader carga ofertas producto-proveedor junto con sus escalones de descuento.
type OfferLoader struct {
	offers    repository.OfferRepository
	discounts repository.DiscountRepository
}

// NewOfferLoader construye el cargador.
func NewOfferLoader(offers repository.OfferRepository, discounts repository.DiscountRepository) *OfferLoader {
	return &OfferLoader{offers: offers, discounts: discounts}
}

// ByProduct devuelve todas las ofertas de un producto con sus descuentos.
func (l *OfferLoader) ByProduct(ctx context.Context, productID int) ([]*entity.SupplierOffer, error) {
	offers, err := l.offers.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return l.withDiscounts(ctx, offers)
}

// ByCatalogNumber devuelve todas las ofertas de un número de catálogo con sus descuentos.
func (l *OfferLoader) ByCatalogNumber(ctx context.Context, catalogNumber int) ([]*entity.SupplierOffer, error) {
	offers, err := l.offers.ListByCatalogNumber(ctx, catalogNumber)
	if err != nil {
		return nil, err
	}
	return l.withDiscounts(ctx, offers)
}

// ForAgreement devuelve la oferta del producto bajo el acuerdo, o nil si no existe.
func (l *OfferLoader) ForAgreement(ctx context.Context, agreementID, productID int) (*entity.SupplierOffer, error) {
	offer, err := l.offers.GetByAgreementAndProduct(ctx, agreementID, productID)
	if err != nil || offer == nil {
		return nil, err
	}
	out, err := l.withDiscounts(ctx, []*entity.SupplierOffer{offer})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (l *OfferLoader) withDiscounts(ctx context.Context, offers []*entity.SupplierOffer) ([]*entity.SupplierOffer, error) {
	for _, o := range offers {
		rules, err := l.discounts.ListForOffer(ctx, o.SupplierID, o.AgreementID, o.ProductID)
		if err != nil {
			return nil, fmt.Errorf("descuentos de oferta %d/%d: %w", o.AgreementID, o.ProductID, err)
		}
		o.Discounts = rules
	}
	return offers, nil
}
