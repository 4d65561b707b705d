package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Controller resuelve producto → proveedor → precio/descuento para las órdenes de reposición.
// Implementa el puerto SupplierCatalog del gateway de compras.
type Controller struct {
	loader     *OfferLoader
	agreements repository.AgreementRepository
	suppliers  repository.SupplierRepository
	resolver   *procurement.DiscountResolver
	selector   *procurement.BestPriceSelector
	log        zerolog.Logger
	now        func() time.Time
}

// NewController construye el controlador del catálogo de proveedores.
func NewController(
	loader *OfferLoader,
	agreements repository.AgreementRepository,
	suppliers repository.SupplierRepository,
	resolver *procurement.DiscountResolver,
	log zerolog.Logger,
) *Controller {
	return &Controller{
		loader:     loader,
		agreements: agreements,
		suppliers:  suppliers,
		resolver:   resolver,
		selector:   procurement.NewBestPriceSelector(resolver),
		log:        log.With().Str("component", "supplier_catalog").Logger(),
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj usado para la vigencia de descuentos.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	return c
}

// GetPeriodicOrderProductDetails arma el detalle de una orden periódica: items es productID → cantidad,
// todos bajo el mismo acuerdo. Falla si falta el acuerdo, el proveedor o alguna oferta.
func (c *Controller) GetPeriodicOrderProductDetails(ctx context.Context, items map[int]int, agreementID int) ([]entity.OrderProductDetails, error) {
	agreement, err := c.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, fmt.Errorf("obtener acuerdo %d: %w", agreementID, err)
	}
	if agreement == nil {
		return nil, fmt.Errorf("acuerdo %d: %w", agreementID, domain.ErrNotFound)
	}
	supplier, err := c.supplier(ctx, agreement.SupplierID)
	if err != nil {
		return nil, err
	}

	today := c.now()
	details := make([]entity.OrderProductDetails, 0, len(items))
	for _, productID := range sortedKeys(items) {
		qty := items[productID]
		if qty <= 0 {
			return nil, fmt.Errorf("%w: cantidad %d para producto %d", domain.ErrInvalidInput, qty, productID)
		}
		offer, err := c.loader.ForAgreement(ctx, agreementID, productID)
		if err != nil {
			return nil, fmt.Errorf("oferta producto %d: %w", productID, err)
		}
		if offer == nil {
			return nil, fmt.Errorf("%w: producto %d en acuerdo %d", domain.ErrNoSupplierOffer, productID, agreementID)
		}
		details = append(details, entity.OrderProductDetails{
			SupplierID:    supplier.ID,
			SupplierName:  supplier.Name,
			DeliveryDays:  agreement.DeliveryDays,
			AgreementID:   agreement.ID,
			ProductID:     productID,
			CatalogNumber: offer.CatalogNumber,
			Price:         offer.Price,
			Discount:      c.resolver.Resolve(offer.Discounts, qty, today),
			Quantity:      qty,
		})
	}
	return details, nil
}

// GetShortageOrderProductDetails elige, para cada número de catálogo faltante, la oferta más barata
// (con descuentos) para la cantidad pedida. Los productos sin ofertas se omiten.
func (c *Controller) GetShortageOrderProductDetails(ctx context.Context, shortageMap map[int]int, branchID int) ([]entity.OrderProductDetails, error) {
	today := c.now()
	details := make([]entity.OrderProductDetails, 0, len(shortageMap))
	for _, catalogNumber := range sortedKeys(shortageMap) {
		qty := shortageMap[catalogNumber]
		offers, err := c.loader.ByCatalogNumber(ctx, catalogNumber)
		if err != nil {
			return nil, fmt.Errorf("ofertas catálogo %d: %w", catalogNumber, err)
		}
		quote, ok := c.selector.SelectBestOffer(offers, qty, today)
		if !ok {
			c.log.Warn().Int("branch_id", branchID).Int("catalog_number", catalogNumber).
				Msg("producto faltante sin ofertas de proveedor")
			continue
		}
		agreement, err := c.agreements.GetByID(ctx, quote.Offer.AgreementID)
		if err != nil {
			return nil, fmt.Errorf("obtener acuerdo %d: %w", quote.Offer.AgreementID, err)
		}
		if agreement == nil {
			return nil, fmt.Errorf("acuerdo %d: %w", quote.Offer.AgreementID, domain.ErrNotFound)
		}
		supplier, err := c.supplier(ctx, quote.Offer.SupplierID)
		if err != nil {
			return nil, err
		}
		details = append(details, entity.OrderProductDetails{
			SupplierID:    supplier.ID,
			SupplierName:  supplier.Name,
			DeliveryDays:  agreement.DeliveryDays,
			AgreementID:   agreement.ID,
			ProductID:     quote.Offer.ProductID,
			CatalogNumber: catalogNumber,
			Price:         quote.Offer.Price,
			Discount:      quote.Discount,
			Quantity:      qty,
		})
	}
	return details, nil
}

func (c *Controller) supplier(ctx context.Context, id int) (*entity.Supplier, error) {
	supplier, err := c.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener proveedor %d: %w", id, err)
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %d: %w", id, domain.ErrNotFound)
	}
	return supplier, nil
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
