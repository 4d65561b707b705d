package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderProductDetails detalle resuelto por el catálogo de proveedores para emitir una orden.
type OrderProductDetails struct {
	SupplierID    int
	SupplierName  string
	DeliveryDays  []time.Weekday
	AgreementID   int
	ProductID     int
	CatalogNumber int
	Price         decimal.Decimal
	Discount      decimal.Decimal
	Quantity      int
}
