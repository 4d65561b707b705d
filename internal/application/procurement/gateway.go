package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/supply-chain-api/internal/application/catalog"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	domainproc "github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// GatewayDeps dependencias del gateway de compras.
type GatewayDeps struct {
	Stock          repository.StockRepository
	Agreements     repository.AgreementRepository
	Offers         repository.OfferRepository
	Discounts      repository.DiscountRepository
	PurchaseOrders repository.PurchaseOrderRepository
	Catalog        SupplierCatalog
	Resolver       *domainproc.DiscountResolver
}

// Gateway fachada sobre los puertos de persistencia y el catálogo de proveedores.
// No guarda estado mutable propio: cada llamada lee de los repositorios.
type Gateway struct {
	stock          repository.StockRepository
	agreements     repository.AgreementRepository
	offers         repository.OfferRepository
	discounts      repository.DiscountRepository
	purchaseOrders repository.PurchaseOrderRepository
	catalog        SupplierCatalog
	loader         *catalog.OfferLoader
	resolver       *domainproc.DiscountResolver
	selector       *domainproc.BestPriceSelector
	now            func() time.Time
}

// NewGateway construye el gateway.
func NewGateway(deps GatewayDeps) *Gateway {
	resolver := deps.Resolver
	if resolver == nil {
		resolver = domainproc.NewDiscountResolver(domainproc.TieBreakLastWriteWins)
	}
	return &Gateway{
		stock:          deps.Stock,
		agreements:     deps.Agreements,
		offers:         deps.Offers,
		discounts:      deps.Discounts,
		purchaseOrders: deps.PurchaseOrders,
		catalog:        deps.Catalog,
		loader:         catalog.NewOfferLoader(deps.Offers, deps.Discounts),
		resolver:       resolver,
		selector:       domainproc.NewBestPriceSelector(resolver),
		now:            time.Now,
	}
}

// WithClock reemplaza el reloj usado para la vigencia de descuentos y fechas de órdenes.
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	g.now = now
	return g
}

// GetCheapestOffer devuelve la oferta de menor precio unitario sin considerar descuentos,
// o nil si el producto no tiene ofertas.
func (g *Gateway) GetCheapestOffer(ctx context.Context, productID int) (*entity.SupplierOffer, error) {
	offers, err := g.offers.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("listar ofertas: %w", err)
	}
	var cheapest *entity.SupplierOffer
	for _, o := range offers {
		if cheapest == nil || o.Price.LessThan(cheapest.Price) {
			cheapest = o
		}
	}
	return cheapest, nil
}

// GetBestMatchingDiscount devuelve el escalón aplicable a la cantidad para la oferta del proveedor
// bajo el acuerdo, o nil si ninguno califica.
func (g *Gateway) GetBestMatchingDiscount(ctx context.Context, productID, supplierID, agreementID, quantity int) (*entity.DiscountRule, error) {
	rules, err := g.discounts.ListForOffer(ctx, supplierID, agreementID, productID)
	if err != nil {
		return nil, fmt.Errorf("listar descuentos: %w", err)
	}
	return g.resolver.BestRule(rules, quantity, g.now()), nil
}

// BestPrice devuelve el total mínimo con descuentos entre todas las ofertas del producto,
// o domainproc.NotFound si no hay ofertas.
func (g *Gateway) BestPrice(ctx context.Context, productID, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, domain.ErrInvalidInput
	}
	offers, err := g.loader.ByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return g.selector.BestPrice(offers, quantity, g.now()), nil
}

// BestQuote como BestPrice pero devuelve la oferta ganadora. ok=false si no hay ofertas.
func (g *Gateway) BestQuote(ctx context.Context, productID, quantity int) (domainproc.Quote, bool, error) {
	if quantity <= 0 {
		return domainproc.Quote{}, false, domain.ErrInvalidInput
	}
	offers, err := g.loader.ByProduct(ctx, productID)
	if err != nil {
		return domainproc.Quote{}, false, err
	}
	q, ok := g.selector.SelectBestOffer(offers, quantity, g.now())
	return q, ok, nil
}

// CreateOrder valida y persiste una orden de compra finalizada. Las líneas repetidas del mismo
// producto se suman (la orden es un mapa producto → cantidad).
func (g *Gateway) CreateOrder(ctx context.Context, order *entity.PurchaseOrder) error {
	if order == nil || order.SupplierID <= 0 || len(order.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	merged := make(map[int]int, len(order.Lines))
	for _, l := range order.Lines {
		if l.ProductID <= 0 || l.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		merged[l.ProductID] += l.Quantity
	}
	lines := make([]entity.PurchaseOrderLine, 0, len(merged))
	for _, productID := range sortedKeys(merged) {
		lines = append(lines, entity.PurchaseOrderLine{ProductID: productID, Quantity: merged[productID]})
	}
	order.Lines = lines
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = g.now()
	}
	return g.purchaseOrders.Create(ctx, order)
}

// ShortageMap calcula los faltantes de la sucursal a partir de su stock actual.
func (g *Gateway) ShortageMap(ctx context.Context, branchID int) (map[int]int, error) {
	stock, err := g.stock.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("stock de sucursal %d: %w", branchID, err)
	}
	return domainproc.ShortageMap(stock), nil
}

// Agreement devuelve el acuerdo (pasando por la caché si el repositorio la tiene).
func (g *Gateway) Agreement(ctx context.Context, agreementID int) (*entity.SupplierAgreement, error) {
	return g.agreements.GetByID(ctx, agreementID)
}

// GetPeriodicOrderProductDetails delega en el catálogo de proveedores.
func (g *Gateway) GetPeriodicOrderProductDetails(ctx context.Context, items map[int]int, agreementID int) ([]entity.OrderProductDetails, error) {
	return g.catalog.GetPeriodicOrderProductDetails(ctx, items, agreementID)
}

// GetShortageOrderProductDetails delega en el catálogo de proveedores.
func (g *Gateway) GetShortageOrderProductDetails(ctx context.Context, shortageMap map[int]int, branchID int) ([]entity.OrderProductDetails, error) {
	return g.catalog.GetShortageOrderProductDetails(ctx, shortageMap, branchID)
}
