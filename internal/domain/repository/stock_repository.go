package repository

import (
	"context"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
)

// StockRepository define el puerto de lectura del stock por sucursal.
// El stock se deriva de las unidades de inventario (ItemRepository); devuelve una fila por
// producto del catálogo, con stock cero incluido.
type StockRepository interface {
	ListByBranch(ctx context.Context, branchID int) ([]entity.BranchStock, error)
}
