package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountScope indica quién otorga el descuento.
type DiscountScope string

const (
	DiscountScopeSupplier DiscountScope = "SUPPLIER"
	DiscountScopeStore    DiscountScope = "STORE"
)

// DiscountRule es un escalón de descuento: a partir de MinQuantity unidades aplica Percentage (0-100).
// El objetivo es un número de catálogo o una categoría; la ventana [ValidFrom, ValidTo] es opcional.
type DiscountRule struct {
	ID            string
	Scope         DiscountScope
	OwnerID       int // proveedor (SUPPLIER) o sucursal (STORE)
	AgreementID   int // solo para SUPPLIER
	ProductID     int // producto del proveedor (SUPPLIER)
	CatalogNumber int
	Category      string
	MinQuantity   int
	Percentage    decimal.Decimal
	ValidFrom     *time.Time
	ValidTo       *time.Time
}

// HasWindow indica si la regla tiene ventana de vigencia completa.
func (r DiscountRule) HasWindow() bool {
	return r.ValidFrom != nil && r.ValidTo != nil
}
