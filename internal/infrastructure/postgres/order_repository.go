package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	domainproc "github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

var (
	_ repository.ShortageOrderRepository    = (*ShortageOrderRepo)(nil)
	_ repository.PeriodicOrderRepository    = (*PeriodicOrderRepo)(nil)
	_ repository.OrderOnTheWayRepository    = (*OrderOnTheWayRepo)(nil)
	_ repository.ItemRepository             = (*ItemRepo)(nil)
	_ repository.PurchaseOrderRepository    = (*PurchaseOrderRepo)(nil)
	_ repository.ReplenishmentRunRepository = (*ReplenishmentRunRepo)(nil)
)

// ShortageOrderRepo órdenes por faltante sobre PostgreSQL.
type ShortageOrderRepo struct {
	q Querier
}

func NewShortageOrderRepository(q Querier) *ShortageOrderRepo {
	return &ShortageOrderRepo{q: q}
}

const shortageColumns = `id, catalog_number, quantity, cost_before_discount, supplier_discount, order_date,
	branch_id, days_in_the_week, supplier_id, supplier_name, status`

func scanShortage(row pgx.Row) (*entity.ShortageOrder, error) {
	var (
		o      entity.ShortageOrder
		days   []int16
		status string
	)
	if err := row.Scan(&o.ID, &o.CatalogNumber, &o.Quantity, &o.CostBeforeDiscount, &o.SupplierDiscount,
		&o.OrderDate, &o.BranchID, &days, &o.SupplierID, &o.SupplierName, &status); err != nil {
		return nil, err
	}
	o.DaysInTheWeek = intsToWeekdays(days)
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

func (r *ShortageOrderRepo) Create(ctx context.Context, order *entity.ShortageOrder) error {
	_, err := r.q.Exec(ctx, `INSERT INTO shortage_orders (`+shortageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		order.ID, order.CatalogNumber, order.Quantity, order.CostBeforeDiscount, order.SupplierDiscount,
		order.OrderDate, order.BranchID, weekdaysToInts(order.DaysInTheWeek), order.SupplierID,
		order.SupplierName, string(order.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shortage order: %w", err)
	}
	return nil
}

func (r *ShortageOrderRepo) GetByID(ctx context.Context, id string) (*entity.ShortageOrder, error) {
	o, err := scanShortage(r.q.QueryRow(ctx, `SELECT `+shortageColumns+` FROM shortage_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shortage order: %w", err)
	}
	return o, nil
}

func (r *ShortageOrderRepo) UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) error {
	return updateStatus(ctx, r.q, "shortage_orders", id, from, to)
}

func (r *ShortageOrderRepo) ListAll(ctx context.Context) ([]*entity.ShortageOrder, error) {
	rows, err := r.q.Query(ctx, `SELECT `+shortageColumns+` FROM shortage_orders ORDER BY order_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list shortage orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ShortageOrder
	for rows.Next() {
		o, err := scanShortage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shortage order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// HasPendingOrderForProduct revisa órdenes por faltante y órdenes en camino que no estén entregadas.
func (r *ShortageOrderRepo) HasPendingOrderForProduct(ctx context.Context, catalogNumber, branchID int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM shortage_orders WHERE catalog_number = $1 AND branch_id = $2 AND status IN ('PENDING', 'IN_TRANSIT')
			UNION ALL
			SELECT 1 FROM orders_on_the_way WHERE catalog_number = $1 AND branch_id = $2 AND status IN ('PENDING', 'IN_TRANSIT')
		)`, catalogNumber, branchID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check pending orders: %w", err)
	}
	return exists, nil
}

// PeriodicOrderRepo definiciones de órdenes periódicas.
type PeriodicOrderRepo struct {
	q Querier
}

func NewPeriodicOrderRepository(q Querier) *PeriodicOrderRepo {
	return &PeriodicOrderRepo{q: q}
}

const periodicColumns = `id, catalog_number, product_id, quantity, supplier_id, supplier_name, days_in_the_week,
	agreement_id, branch_id, supply_days, last_order_date, next_order_date`

func (r *PeriodicOrderRepo) Create(ctx context.Context, order *entity.PeriodicOrder) error {
	_, err := r.q.Exec(ctx, `INSERT INTO periodic_orders (`+periodicColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		order.ID, order.CatalogNumber, order.ProductID, order.Quantity, order.SupplierID, order.SupplierName,
		weekdaysToInts(order.DaysInTheWeek), order.AgreementID, order.BranchID, order.SupplyDays,
		order.LastOrderDate, order.NextOrderDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert periodic order: %w", err)
	}
	return nil
}

func (r *PeriodicOrderRepo) ListByBranch(ctx context.Context, branchID int) ([]*entity.PeriodicOrder, error) {
	rows, err := r.q.Query(ctx, `SELECT `+periodicColumns+` FROM periodic_orders WHERE branch_id = $1 ORDER BY id`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list periodic orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PeriodicOrder
	for rows.Next() {
		var (
			o    entity.PeriodicOrder
			days []int16
		)
		if err := rows.Scan(&o.ID, &o.CatalogNumber, &o.ProductID, &o.Quantity, &o.SupplierID, &o.SupplierName,
			&days, &o.AgreementID, &o.BranchID, &o.SupplyDays, &o.LastOrderDate, &o.NextOrderDate); err != nil {
			return nil, fmt.Errorf("scan periodic order: %w", err)
		}
		o.DaysInTheWeek = intsToWeekdays(days)
		list = append(list, &o)
	}
	return list, rows.Err()
}

func (r *PeriodicOrderRepo) UpdateSchedule(ctx context.Context, id string, last, next time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE periodic_orders SET last_order_date = $2, next_order_date = $3 WHERE id = $1`, id, last, next)
	if err != nil {
		return fmt.Errorf("update periodic schedule: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// OrderOnTheWayRepo órdenes emitidas en camino.
type OrderOnTheWayRepo struct {
	q Querier
}

func NewOrderOnTheWayRepository(q Querier) *OrderOnTheWayRepo {
	return &OrderOnTheWayRepo{q: q}
}

const onTheWayColumns = `id, catalog_number, branch_id, supplier_id, quantity, price, discount, order_date, status`

func scanOnTheWay(row pgx.Row) (*entity.OrderOnTheWay, error) {
	var (
		o      entity.OrderOnTheWay
		status string
	)
	if err := row.Scan(&o.ID, &o.CatalogNumber, &o.BranchID, &o.SupplierID, &o.Quantity, &o.Price,
		&o.Discount, &o.OrderDate, &status); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

func (r *OrderOnTheWayRepo) Create(ctx context.Context, order *entity.OrderOnTheWay) error {
	_, err := r.q.Exec(ctx, `INSERT INTO orders_on_the_way (`+onTheWayColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		order.ID, order.CatalogNumber, order.BranchID, order.SupplierID, order.Quantity, order.Price,
		order.Discount, order.OrderDate, string(order.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order on the way: %w", err)
	}
	return nil
}

func (r *OrderOnTheWayRepo) GetByID(ctx context.Context, id string) (*entity.OrderOnTheWay, error) {
	o, err := scanOnTheWay(r.q.QueryRow(ctx, `SELECT `+onTheWayColumns+` FROM orders_on_the_way WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order on the way: %w", err)
	}
	return o, nil
}

func (r *OrderOnTheWayRepo) UpdateStatus(ctx context.Context, id string, from, to entity.OrderStatus) error {
	return updateStatus(ctx, r.q, "orders_on_the_way", id, from, to)
}

func (r *OrderOnTheWayRepo) ListAll(ctx context.Context) ([]*entity.OrderOnTheWay, error) {
	rows, err := r.q.Query(ctx, `SELECT `+onTheWayColumns+` FROM orders_on_the_way ORDER BY order_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list orders on the way: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderOnTheWay
	for rows.Next() {
		o, err := scanOnTheWay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order on the way: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// table es siempre una constante interna, nunca entrada del usuario.
// El WHERE sobre el estado actual hace del cambio un compare-and-set.
func updateStatus(ctx context.Context, q Querier, table, id string, from, to entity.OrderStatus) error {
	cmd, err := q.Exec(ctx, `UPDATE `+table+` SET status = $2 WHERE id = $1 AND status = $3`, id, string(to), string(from))
	if err != nil {
		return fmt.Errorf("update %s status: %w", table, err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check %s: %w", table, err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %s ya no está en %s", domain.ErrInvalidTransition, id, from)
}

// ItemRepo unidades individuales de inventario.
type ItemRepo struct {
	q Querier
}

func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func (r *ItemRepo) AddItem(ctx context.Context, item *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_items (id, catalog_number, branch_id, location, cost_price, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.CatalogNumber, item.BranchID, string(item.Location), item.CostPrice, item.ReceivedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (r *ItemRepo) CountItemsByCatalogNumber(ctx context.Context, catalogNumber, branchID int) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM inventory_items WHERE catalog_number = $1 AND branch_id = $2`,
		catalogNumber, branchID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count inventory items: %w", err)
	}
	return n, nil
}

// PurchaseOrderRepo órdenes de compra y sus líneas. Create envía cabecera y líneas en un solo batch
// (transacción implícita).
type PurchaseOrderRepo struct {
	q Querier
}

func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func (r *PurchaseOrderRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	batch := &pgx.Batch{}
	batch.Queue(`INSERT INTO purchase_orders (id, supplier_id, branch_id, contact_name, contact_phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		order.ID, order.SupplierID, order.BranchID, order.ContactName, order.ContactPhone, order.CreatedAt)
	for _, l := range order.Lines {
		batch.Queue(`INSERT INTO purchase_order_lines (purchase_order_id, product_id, quantity) VALUES ($1, $2, $3)`,
			order.ID, l.ProductID, l.Quantity)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert purchase order: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx, `
		SELECT id, supplier_id, branch_id, contact_name, contact_phone, created_at FROM purchase_orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.SupplierID, &o.BranchID, &o.ContactName, &o.ContactPhone, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT product_id, quantity FROM purchase_order_lines WHERE purchase_order_id = $1 ORDER BY product_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	return &o, rows.Err()
}

// ReplenishmentRunRepo marca diaria por sucursal (PK branch_id, run_date).
type ReplenishmentRunRepo struct {
	q Querier
}

func NewReplenishmentRunRepository(q Querier) *ReplenishmentRunRepo {
	return &ReplenishmentRunRepo{q: q}
}

func (r *ReplenishmentRunRepo) HasBeenProcessedToday(ctx context.Context, branchID int, day time.Time) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM replenishment_runs WHERE branch_id = $1 AND run_date = $2)`,
		branchID, domainproc.DateOnly(day)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check replenishment run: %w", err)
	}
	return exists, nil
}

// ClaimForToday inserta la marca; si ya existía el INSERT no afecta filas y devuelve false.
func (r *ReplenishmentRunRepo) ClaimForToday(ctx context.Context, branchID int, day time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`INSERT INTO replenishment_runs (branch_id, run_date) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		branchID, domainproc.DateOnly(day))
	if err != nil {
		return false, fmt.Errorf("claim replenishment run: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}
