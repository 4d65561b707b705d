package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	domainproc "github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

var (
	_ repository.ShortageOrderRepository    = (*ShortageOrderRepository)(nil)
	_ repository.PeriodicOrderRepository    = (*PeriodicOrderRepository)(nil)
	_ repository.OrderOnTheWayRepository    = (*OrderOnTheWayRepository)(nil)
	_ repository.ItemRepository             = (*ItemRepository)(nil)
	_ repository.PurchaseOrderRepository    = (*PurchaseOrderRepository)(nil)
	_ repository.ReplenishmentRunRepository = (*ReplenishmentRunRepository)(nil)
)

// ShortageOrderRepository órdenes por faltante en memoria.
type ShortageOrderRepository struct {
	store *Store
}

func NewShortageOrderRepository(store *Store) *ShortageOrderRepository {
	return &ShortageOrderRepository{store: store}
}

func (r *ShortageOrderRepository) Create(_ context.Context, order *entity.ShortageOrder) error {
	o := *order
	o.DaysInTheWeek = slices.Clone(order.DaysInTheWeek)
	return r.store.write(func(st *state) error {
		if _, ok := st.shortageOrders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		st.shortageOrders[o.ID] = o
		return nil
	})
}

func (r *ShortageOrderRepository) GetByID(_ context.Context, id string) (*entity.ShortageOrder, error) {
	var out *entity.ShortageOrder
	r.store.read(func(st *state) {
		if o, ok := st.shortageOrders[id]; ok {
			out = &o
		}
	})
	return out, nil
}

func (r *ShortageOrderRepository) UpdateStatus(_ context.Context, id string, from, to entity.OrderStatus) error {
	return r.store.write(func(st *state) error {
		o, ok := st.shortageOrders[id]
		if !ok {
			return domain.ErrNotFound
		}
		if o.Status != from {
			return fmt.Errorf("%w: estado actual %s", domain.ErrInvalidTransition, o.Status)
		}
		o.Status = to
		st.shortageOrders[id] = o
		return nil
	})
}

func (r *ShortageOrderRepository) ListAll(_ context.Context) ([]*entity.ShortageOrder, error) {
	var list []*entity.ShortageOrder
	r.store.read(func(st *state) {
		for _, o := range st.shortageOrders {
			list = append(list, &o)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].OrderDate.Equal(list[j].OrderDate) {
			return list[i].OrderDate.Before(list[j].OrderDate)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *ShortageOrderRepository) HasPendingOrderForProduct(_ context.Context, catalogNumber, branchID int) (bool, error) {
	found := false
	r.store.read(func(st *state) {
		for _, o := range st.shortageOrders {
			if o.CatalogNumber == catalogNumber && o.BranchID == branchID && o.Status.Open() {
				found = true
				return
			}
		}
		for _, o := range st.onTheWay {
			if o.CatalogNumber == catalogNumber && o.BranchID == branchID && o.Status.Open() {
				found = true
				return
			}
		}
	})
	return found, nil
}

// PeriodicOrderRepository definiciones de órdenes periódicas en memoria.
type PeriodicOrderRepository struct {
	store *Store
}

func NewPeriodicOrderRepository(store *Store) *PeriodicOrderRepository {
	return &PeriodicOrderRepository{store: store}
}

func (r *PeriodicOrderRepository) Create(_ context.Context, order *entity.PeriodicOrder) error {
	o := *order
	o.DaysInTheWeek = slices.Clone(order.DaysInTheWeek)
	return r.store.write(func(st *state) error {
		if _, ok := st.periodicOrders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		st.periodicOrders[o.ID] = o
		return nil
	})
}

func (r *PeriodicOrderRepository) ListByBranch(_ context.Context, branchID int) ([]*entity.PeriodicOrder, error) {
	var list []*entity.PeriodicOrder
	r.store.read(func(st *state) {
		for _, o := range st.periodicOrders {
			if o.BranchID == branchID {
				o.DaysInTheWeek = slices.Clone(o.DaysInTheWeek)
				list = append(list, &o)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *PeriodicOrderRepository) UpdateSchedule(_ context.Context, id string, last, next time.Time) error {
	return r.store.write(func(st *state) error {
		o, ok := st.periodicOrders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.LastOrderDate = &last
		o.NextOrderDate = &next
		st.periodicOrders[id] = o
		return nil
	})
}

// OrderOnTheWayRepository órdenes en camino en memoria.
type OrderOnTheWayRepository struct {
	store *Store
}

func NewOrderOnTheWayRepository(store *Store) *OrderOnTheWayRepository {
	return &OrderOnTheWayRepository{store: store}
}

func (r *OrderOnTheWayRepository) Create(_ context.Context, order *entity.OrderOnTheWay) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.onTheWay[order.ID]; ok {
			return domain.ErrDuplicate
		}
		st.onTheWay[order.ID] = *order
		return nil
	})
}

func (r *OrderOnTheWayRepository) GetByID(_ context.Context, id string) (*entity.OrderOnTheWay, error) {
	var out *entity.OrderOnTheWay
	r.store.read(func(st *state) {
		if o, ok := st.onTheWay[id]; ok {
			out = &o
		}
	})
	return out, nil
}

func (r *OrderOnTheWayRepository) UpdateStatus(_ context.Context, id string, from, to entity.OrderStatus) error {
	return r.store.write(func(st *state) error {
		o, ok := st.onTheWay[id]
		if !ok {
			return domain.ErrNotFound
		}
		if o.Status != from {
			return fmt.Errorf("%w: estado actual %s", domain.ErrInvalidTransition, o.Status)
		}
		o.Status = to
		st.onTheWay[id] = o
		return nil
	})
}

func (r *OrderOnTheWayRepository) ListAll(_ context.Context) ([]*entity.OrderOnTheWay, error) {
	var list []*entity.OrderOnTheWay
	r.store.read(func(st *state) {
		for _, o := range st.onTheWay {
			list = append(list, &o)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].OrderDate.Equal(list[j].OrderDate) {
			return list[i].OrderDate.Before(list[j].OrderDate)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// ItemRepository unidades de inventario en memoria.
type ItemRepository struct {
	store *Store
}

func NewItemRepository(store *Store) *ItemRepository {
	return &ItemRepository{store: store}
}

func (r *ItemRepository) AddItem(_ context.Context, item *entity.InventoryItem) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.items[item.ID]; ok {
			return domain.ErrDuplicate
		}
		st.items[item.ID] = *item
		return nil
	})
}

func (r *ItemRepository) CountItemsByCatalogNumber(_ context.Context, catalogNumber, branchID int) (int, error) {
	n := 0
	r.store.read(func(st *state) {
		for _, it := range st.items {
			if it.CatalogNumber == catalogNumber && it.BranchID == branchID {
				n++
			}
		}
	})
	return n, nil
}

// PurchaseOrderRepository órdenes de compra en memoria.
type PurchaseOrderRepository struct {
	store *Store
}

func NewPurchaseOrderRepository(store *Store) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{store: store}
}

func (r *PurchaseOrderRepository) Create(_ context.Context, order *entity.PurchaseOrder) error {
	o := *order
	o.Lines = slices.Clone(order.Lines)
	return r.store.write(func(st *state) error {
		if _, ok := st.purchaseOrders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		st.purchaseOrders[o.ID] = o
		return nil
	})
}

func (r *PurchaseOrderRepository) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	r.store.read(func(st *state) {
		if o, ok := st.purchaseOrders[id]; ok {
			o.Lines = slices.Clone(o.Lines)
			out = &o
		}
	})
	return out, nil
}

// ReplenishmentRunRepository marca diaria por sucursal en memoria.
type ReplenishmentRunRepository struct {
	store *Store
}

func NewReplenishmentRunRepository(store *Store) *ReplenishmentRunRepository {
	return &ReplenishmentRunRepository{store: store}
}

func dayKey(branchID int, day time.Time) runKey {
	return runKey{branchID: branchID, day: domainproc.DateOnly(day).Format(time.DateOnly)}
}

func (r *ReplenishmentRunRepository) HasBeenProcessedToday(_ context.Context, branchID int, day time.Time) (bool, error) {
	found := false
	r.store.read(func(st *state) {
		_, found = st.runs[dayKey(branchID, day)]
	})
	return found, nil
}

func (r *ReplenishmentRunRepository) ClaimForToday(_ context.Context, branchID int, day time.Time) (bool, error) {
	claimed := false
	err := r.store.write(func(st *state) error {
		key := dayKey(branchID, day)
		if _, ok := st.runs[key]; ok {
			return nil
		}
		st.runs[key] = time.Now()
		claimed = true
		return nil
	})
	return claimed, err
}
