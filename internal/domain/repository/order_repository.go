package repository

import (
	"context"
	"time"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
)

// ShortageOrderRepository define el puerto para órdenes por faltante.
type ShortageOrderRepository interface {
	Create(ctx context.Context, order *entity.ShortageOrder) error
	GetByID(ctx context.Context, id string) (*entity.ShortageOrder, error)
	// UpdateStatus cambia el estado solo si el actual es from. ErrNotFound si no existe,
	// ErrInvalidTransition si otro proceso ya lo cambió.
	UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) error
	ListAll(ctx context.Context) ([]*entity.ShortageOrder, error)
	// HasPendingOrderForProduct indica si existe una orden PENDING o IN_TRANSIT (faltante o en camino)
	// para el producto en la sucursal.
	HasPendingOrderForProduct(ctx context.Context, catalogNumber, branchID int) (bool, error)
}

// PeriodicOrderRepository define el puerto para definiciones de órdenes periódicas.
type PeriodicOrderRepository interface {
	Create(ctx context.Context, order *entity.PeriodicOrder) error
	ListByBranch(ctx context.Context, branchID int) ([]*entity.PeriodicOrder, error)
	UpdateSchedule(ctx context.Context, id string, last, next time.Time) error
}

// OrderOnTheWayRepository define el puerto para órdenes emitidas en camino.
type OrderOnTheWayRepository interface {
	Create(ctx context.Context, order *entity.OrderOnTheWay) error
	GetByID(ctx context.Context, id string) (*entity.OrderOnTheWay, error)
	UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) error
	ListAll(ctx context.Context) ([]*entity.OrderOnTheWay, error)
}

// ItemRepository define el puerto para unidades individuales de inventario.
type ItemRepository interface {
	AddItem(ctx context.Context, item *entity.InventoryItem) error
	CountItemsByCatalogNumber(ctx context.Context, catalogNumber, branchID int) (int, error)
}

// PurchaseOrderRepository define el puerto para órdenes de compra finalizadas.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
}

// ReplenishmentRunRepository guarda la marca "procesado hoy" por sucursal.
type ReplenishmentRunRepository interface {
	HasBeenProcessedToday(ctx context.Context, branchID int, day time.Time) (bool, error)
	// ClaimForToday verifica y marca en una sola operación atómica.
	// Devuelve false si la sucursal ya estaba marcada para ese día.
	ClaimForToday(ctx context.Context, branchID int, day time.Time) (bool, error)
}
