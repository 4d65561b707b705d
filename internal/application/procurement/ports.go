package procurement

import (
	"context"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

// SupplierCatalog resuelve producto → proveedor → precio/descuento para emitir órdenes.
// Lo implementa *catalog.Controller.
type SupplierCatalog interface {
	// GetPeriodicOrderProductDetails recibe productID → cantidad para un acuerdo.
	GetPeriodicOrderProductDetails(ctx context.Context, items map[int]int, agreementID int) ([]entity.OrderProductDetails, error)
	// GetShortageOrderProductDetails recibe catalogNumber → cantidad faltante de una sucursal.
	GetShortageOrderProductDetails(ctx context.Context, shortageMap map[int]int, branchID int) ([]entity.OrderProductDetails, error)
}

// DetailsProvider es lo que el scheduler necesita del gateway.
type DetailsProvider interface {
	GetPeriodicOrderProductDetails(ctx context.Context, items map[int]int, agreementID int) ([]entity.OrderProductDetails, error)
	GetShortageOrderProductDetails(ctx context.Context, shortageMap map[int]int, branchID int) ([]entity.OrderProductDetails, error)
}

// ShortageSource calcula el mapa de faltantes de una sucursal.
type ShortageSource interface {
	ShortageMap(ctx context.Context, branchID int) (map[int]int, error)
}

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	ShortageOrders repository.ShortageOrderRepository
	PeriodicOrders repository.PeriodicOrderRepository
	OnTheWay       repository.OrderOnTheWayRepository
	Items          repository.ItemRepository
	Runs           repository.ReplenishmentRunRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD; Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	RunProcurement(ctx context.Context, fn func(repos TxRepos) error) error
}
