package procurement

import (
	"time"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// NotFound es el valor centinela de BestPrice cuando no hay ofertas. Los llamadores deben compararlo
// explícitamente (IsNotFound); no es un error.
var NotFound = decimal.NewFromInt(-1)

// IsNotFound indica si total es el centinela NotFound.
func IsNotFound(total decimal.Decimal) bool {
	return total.Equal(NotFound)
}

// Quote precio calculado de una oferta para una cantidad.
type Quote struct {
	Offer     *entity.SupplierOffer
	UnitPrice decimal.Decimal // precio unitario ya descontado
	Discount  decimal.Decimal // porcentaje aplicado
	Total     decimal.Decimal // UnitPrice * cantidad
}

// BestPriceSelector compara las ofertas de todos los proveedores de un producto.
type BestPriceSelector struct {
	resolver *DiscountResolver
}

// NewBestPriceSelector construye el selector sobre el resolver de descuentos.
func NewBestPriceSelector(resolver *DiscountResolver) *BestPriceSelector {
	return &BestPriceSelector{resolver: resolver}
}

// Quote calcula precio = Price * (1 - descuento/100) * quantity para una oferta.
func (s *BestPriceSelector) Quote(offer *entity.SupplierOffer, quantity int, today time.Time) Quote {
	pct := s.resolver.Resolve(offer.Discounts, quantity, today)
	unit := offer.Price.Mul(hundred.Sub(pct)).Div(hundred)
	return Quote{
		Offer:     offer,
		UnitPrice: unit,
		Discount:  pct,
		Total:     unit.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// SelectBestOffer devuelve la oferta de menor total. En empate gana la primera. ok=false sin ofertas.
func (s *BestPriceSelector) SelectBestOffer(offers []*entity.SupplierOffer, quantity int, today time.Time) (Quote, bool) {
	var (
		best  Quote
		found bool
	)
	for _, offer := range offers {
		if offer == nil {
			continue
		}
		q := s.Quote(offer, quantity, today)
		if !found || q.Total.LessThan(best.Total) {
			best, found = q, true
		}
	}
	return best, found
}

// BestPrice devuelve el total mínimo entre las ofertas o NotFound si no hay ninguna.
func (s *BestPriceSelector) BestPrice(offers []*entity.SupplierOffer, quantity int, today time.Time) decimal.Decimal {
	q, ok := s.SelectBestOffer(offers, quantity, today)
	if !ok {
		return NotFound
	}
	return q.Total
}
