// Package app arma los repositorios, el motor de reposición y los casos de uso a partir de la configuración.
package app

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/supply-chain-api/internal/application/catalog"
	appproc "github.com/jhoicas/supply-chain-api/internal/application/procurement"
	"github.com/jhoicas/supply-chain-api/internal/application/usecase"
	"github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/cache"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/memory"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/pdf"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/postgres"
	"github.com/jhoicas/supply-chain-api/pkg/config"
	"github.com/rs/zerolog"
)

// Repositories puertos de persistencia de una misma base (PostgreSQL o memoria).
type Repositories struct {
	Products       repository.ProductRepository
	Stock          repository.StockRepository
	Suppliers      repository.SupplierRepository
	Agreements     repository.AgreementRepository
	Offers         repository.OfferRepository
	Discounts      repository.DiscountRepository
	Shortages      repository.ShortageOrderRepository
	Periodic       repository.PeriodicOrderRepository
	OnTheWay       repository.OrderOnTheWayRepository
	Items          repository.ItemRepository
	PurchaseOrders repository.PurchaseOrderRepository
	Runs           repository.ReplenishmentRunRepository
	Tx             appproc.TxRunner
}

// PostgresRepositories repositorios sobre el pool de PostgreSQL.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Products:       postgres.NewProductRepository(pool),
		Stock:          postgres.NewStockRepository(pool),
		Suppliers:      postgres.NewSupplierRepository(pool),
		Agreements:     postgres.NewAgreementRepository(pool),
		Offers:         postgres.NewOfferRepository(pool),
		Discounts:      postgres.NewDiscountRepository(pool),
		Shortages:      postgres.NewShortageOrderRepository(pool),
		Periodic:       postgres.NewPeriodicOrderRepository(pool),
		OnTheWay:       postgres.NewOrderOnTheWayRepository(pool),
		Items:          postgres.NewItemRepository(pool),
		PurchaseOrders: postgres.NewPurchaseOrderRepository(pool),
		Runs:           postgres.NewReplenishmentRunRepository(pool),
		Tx:             postgres.NewTxRunner(pool),
	}
}

// MemoryRepositories repositorios en memoria (desarrollo y tests).
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Products:       memory.NewProductRepository(store),
		Stock:          memory.NewStockRepository(store),
		Suppliers:      memory.NewSupplierRepository(store),
		Agreements:     memory.NewAgreementRepository(store),
		Offers:         memory.NewOfferRepository(store),
		Discounts:      memory.NewDiscountRepository(store),
		Shortages:      memory.NewShortageOrderRepository(store),
		Periodic:       memory.NewPeriodicOrderRepository(store),
		OnTheWay:       memory.NewOrderOnTheWayRepository(store),
		Items:          memory.NewItemRepository(store),
		PurchaseOrders: memory.NewPurchaseOrderRepository(store),
		Runs:           memory.NewReplenishmentRunRepository(store),
		Tx:             memory.NewTxRunner(store),
	}
}

// Services motor de reposición y casos de uso listos para los handlers o la CLI.
type Services struct {
	Gateway   *appproc.Gateway
	Scheduler *appproc.Scheduler
	Trigger   *appproc.Trigger

	ProductUC       *usecase.ProductUseCase
	SupplierUC      *usecase.SupplierUseCase
	DiscountUC      *usecase.DiscountUseCase
	OrderUC         *usecase.OrderUseCase
	ReplenishmentUC *usecase.ReplenishmentUseCase
}

// NewServices arma los servicios. Los acuerdos pasan por la caché LRI si cfg.AgreementCacheSize > 0.
func NewServices(repos Repositories, cfg config.ReplenishConfig, log zerolog.Logger) (*Services, error) {
	policy, err := procurement.ParseTieBreakPolicy(cfg.DiscountTieBreak)
	if err != nil {
		return nil, fmt.Errorf("PROCUREMENT_DISCOUNT_TIEBREAK: %w", err)
	}
	resolver := procurement.NewDiscountResolver(policy)

	agreements := repos.Agreements
	if cfg.AgreementCacheSize > 0 {
		agreements = cache.NewAgreementRepository(repos.Agreements, cfg.AgreementCacheSize)
	}

	loader := catalog.NewOfferLoader(repos.Offers, repos.Discounts)
	controller := catalog.NewController(loader, agreements, repos.Suppliers, resolver, log)
	gateway := appproc.NewGateway(appproc.GatewayDeps{
		Stock:          repos.Stock,
		Agreements:     agreements,
		Offers:         repos.Offers,
		Discounts:      repos.Discounts,
		PurchaseOrders: repos.PurchaseOrders,
		Catalog:        controller,
		Resolver:       resolver,
	})
	scheduler := appproc.NewScheduler(gateway, repos.Tx, repos.Periodic, repos.Runs, log)
	trigger := appproc.NewTrigger(gateway, scheduler, log, cfg.MaxParallel)

	return &Services{
		Gateway:    gateway,
		Scheduler:  scheduler,
		Trigger:    trigger,
		ProductUC:  usecase.NewProductUseCase(repos.Products, repos.Stock, agreements),
		SupplierUC: usecase.NewSupplierUseCase(repos.Suppliers, agreements, repos.Offers, loader),
		DiscountUC: usecase.NewDiscountUseCase(repos.Discounts, repos.Products, resolver),
		OrderUC: usecase.NewOrderUseCase(usecase.OrderDeps{
			Shortages:      repos.Shortages,
			OnTheWay:       repos.OnTheWay,
			PurchaseOrders: repos.PurchaseOrders,
			Suppliers:      repos.Suppliers,
			Products:       repos.Products,
			Gateway:        gateway,
			Loader:         loader,
			Resolver:       resolver,
			PDF:            pdf.NewMarotoPDFGenerator(),
		}),
		ReplenishmentUC: usecase.NewReplenishmentUseCase(gateway, trigger),
	}, nil
}
