package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemLocation ubicación física de una unidad dentro de la sucursal.
type ItemLocation string

const (
	ItemLocationStore     ItemLocation = "STORE"
	ItemLocationWarehouse ItemLocation = "WAREHOUSE"
)

// InventoryItem es una unidad individual de inventario en una sucursal.
type InventoryItem struct {
	ID            string
	CatalogNumber int
	BranchID      int
	Location      ItemLocation
	CostPrice     decimal.Decimal
	ReceivedAt    time.Time
}
