package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// CatalogNumber es el identificador único en toda la cadena, independiente del proveedor.
// MinimumQuantityForAlert se deriva de DemandLevel y SupplyTimeDays (ver procurement.AlertThreshold).
type Product struct {
	CatalogNumber           int
	SupplierID              int // proveedor principal
	Name                    string
	BasePrice               decimal.Decimal
	Unit                    string
	Category                string
	SubCategory             string
	DemandLevel             int
	SupplyTimeDays          int
	MinimumQuantityForAlert int
	QuantityInStore         int
	QuantityInWarehouse     int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// TotalQuantity devuelve el stock total (tienda + bodega).
func (p Product) TotalQuantity() int {
	return p.QuantityInStore + p.QuantityInWarehouse
}
