package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShortageOrder orden generada cuando el stock de una sucursal cae bajo el umbral de alerta.
type ShortageOrder struct {
	ID                 string
	CatalogNumber      int
	Quantity           int
	CostBeforeDiscount decimal.Decimal // precio unitario del proveedor
	SupplierDiscount   decimal.Decimal
	OrderDate          time.Time
	BranchID           int
	DaysInTheWeek      []time.Weekday
	SupplierID         int
	SupplierName       string
	Status             OrderStatus
}

// PeriodicOrder definición de una orden recurrente por día de la semana.
type PeriodicOrder struct {
	ID            string
	CatalogNumber int
	ProductID     int
	Quantity      int
	SupplierID    int
	SupplierName  string
	DaysInTheWeek []time.Weekday
	AgreementID   int
	BranchID      int
	SupplyDays    int
	LastOrderDate *time.Time
	NextOrderDate *time.Time
}

// ScheduledOn indica si la definición debe ejecutarse el día de la semana dado.
func (p PeriodicOrder) ScheduledOn(day time.Weekday) bool {
	for _, d := range p.DaysInTheWeek {
		if d == day {
			return true
		}
	}
	return false
}

// OrderOnTheWay orden emitida al proveedor y en camino a la sucursal.
type OrderOnTheWay struct {
	ID            string
	CatalogNumber int
	BranchID      int
	SupplierID    int
	Quantity      int
	Price         decimal.Decimal
	Discount      decimal.Decimal
	OrderDate     time.Time
	Status        OrderStatus
}
