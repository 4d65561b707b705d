package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appproc "github.com/jhoicas/supply-chain-api/internal/application/procurement"
)

var _ appproc.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunProcurement inicia una transacción, ejecuta fn con los repos de órdenes atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunProcurement(ctx context.Context, fn func(repos appproc.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := appproc.TxRepos{
		ShortageOrders: NewShortageOrderRepository(tx),
		PeriodicOrders: NewPeriodicOrderRepository(tx),
		OnTheWay:       NewOrderOnTheWayRepository(tx),
		Items:          NewItemRepository(tx),
		Runs:           NewReplenishmentRunRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
