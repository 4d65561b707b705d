package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/supply-chain-api/internal/application/catalog"
	appproc "github.com/jhoicas/supply-chain-api/internal/application/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// lunes
var today = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func clock() time.Time { return today }

type pdfMock struct {
	mock.Mock
}

func (m *pdfMock) GeneratePurchaseOrderPDF(ctx context.Context, order *entity.PurchaseOrder, supplier *entity.Supplier, lines []PurchaseOrderLineForPDF) ([]byte, error) {
	args := m.Called(ctx, order, supplier, lines)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

// fixture arma todos los casos de uso sobre un store en memoria, con el reloj fijo en today.
type fixture struct {
	store      *memory.Store
	products   *memory.ProductRepository
	suppliers  *memory.SupplierRepository
	agreements *memory.AgreementRepository
	offers     *memory.OfferRepository
	discounts  *memory.DiscountRepository
	shortages  *memory.ShortageOrderRepository
	onTheWay   *memory.OrderOnTheWayRepository
	items      *memory.ItemRepository
	pdf        *pdfMock

	productUC       *ProductUseCase
	supplierUC      *SupplierUseCase
	discountUC      *DiscountUseCase
	orderUC         *OrderUseCase
	replenishmentUC *ReplenishmentUseCase
}

func newFixture(t *testing.T, policy procurement.TieBreakPolicy) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:      store,
		products:   memory.NewProductRepository(store),
		suppliers:  memory.NewSupplierRepository(store),
		agreements: memory.NewAgreementRepository(store),
		offers:     memory.NewOfferRepository(store),
		discounts:  memory.NewDiscountRepository(store),
		shortages:  memory.NewShortageOrderRepository(store),
		onTheWay:   memory.NewOrderOnTheWayRepository(store),
		items:      memory.NewItemRepository(store),
		pdf:        &pdfMock{},
	}
	resolver := procurement.NewDiscountResolver(policy)
	loader := catalog.NewOfferLoader(f.offers, f.discounts)
	controller := catalog.NewController(loader, f.agreements, f.suppliers, resolver, zerolog.Nop()).WithClock(clock)
	purchaseOrders := memory.NewPurchaseOrderRepository(store)
	gateway := appproc.NewGateway(appproc.GatewayDeps{
		Stock:          memory.NewStockRepository(store),
		Agreements:     f.agreements,
		Offers:         f.offers,
		Discounts:      f.discounts,
		PurchaseOrders: purchaseOrders,
		Catalog:        controller,
		Resolver:       resolver,
	}).WithClock(clock)
	scheduler := appproc.NewScheduler(gateway, memory.NewTxRunner(store), memory.NewPeriodicOrderRepository(store),
		memory.NewReplenishmentRunRepository(store), zerolog.Nop()).WithClock(clock)

	f.productUC = NewProductUseCase(f.products, memory.NewStockRepository(store), f.agreements)
	f.productUC.now = clock
	f.supplierUC = NewSupplierUseCase(f.suppliers, f.agreements, f.offers, loader)
	f.supplierUC.now = clock
	f.discountUC = NewDiscountUseCase(f.discounts, f.products, resolver)
	f.discountUC.now = clock
	f.orderUC = NewOrderUseCase(OrderDeps{
		Shortages:      f.shortages,
		OnTheWay:       f.onTheWay,
		PurchaseOrders: purchaseOrders,
		Suppliers:      f.suppliers,
		Products:       f.products,
		Gateway:        gateway,
		Loader:         loader,
		Resolver:       resolver,
		PDF:            f.pdf,
	})
	f.orderUC.now = clock
	f.replenishmentUC = NewReplenishmentUseCase(gateway, appproc.NewTrigger(gateway, scheduler, zerolog.Nop(), 2))
	return f
}

// seedCatalog carga el proveedor 1 (acuerdo 10, lunes y jueves) con el producto 1004 a 50 por unidad
// y un escalón de 10% desde 12 unidades.
func (f *fixture) seedCatalog(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.suppliers.Upsert(ctx, &entity.Supplier{ID: 1, Name: "Lácteos del Valle", ContactName: "Marta", ContactPhone: "555-0101"}))
	require.NoError(t, f.agreements.Upsert(ctx, &entity.SupplierAgreement{ID: 10, SupplierID: 1, DeliveryDays: []time.Weekday{time.Monday, time.Thursday}}))
	require.NoError(t, f.products.Create(ctx, &entity.Product{
		CatalogNumber: 1004, SupplierID: 1, Name: "Leche entera 1L", Category: "lacteos",
		DemandLevel: 14, SupplyTimeDays: 6, MinimumQuantityForAlert: 10, BasePrice: decimal.NewFromInt(60),
	}))
	require.NoError(t, f.offers.Upsert(ctx, &entity.SupplierOffer{CatalogNumber: 1004, ProductID: 7, SupplierID: 1, AgreementID: 10, Price: decimal.NewFromInt(50)}))
	require.NoError(t, f.discounts.Upsert(ctx, &entity.DiscountRule{
		Scope: entity.DiscountScopeSupplier, OwnerID: 1, AgreementID: 10, ProductID: 7, MinQuantity: 12, Percentage: decimal.NewFromInt(10),
	}))
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
