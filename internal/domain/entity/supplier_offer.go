package entity

import "github.com/shopspring/decimal"

// SupplierOffer es la oferta de un proveedor para un producto bajo un acuerdo.
// Un mismo producto puede tener ofertas de varios proveedores.
type SupplierOffer struct {
	CatalogNumber int
	ProductID     int
	SupplierID    int
	AgreementID   int
	Price         decimal.Decimal // precio unitario antes de descuentos
	Unit          string
	Discounts     []DiscountRule
}
