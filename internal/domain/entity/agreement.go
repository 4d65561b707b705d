package entity

import "time"

// SupplierAgreement condiciones contractuales con un proveedor: días de entrega y modalidad de retiro.
type SupplierAgreement struct {
	ID           int
	SupplierID   int
	DeliveryDays []time.Weekday
	SelfPickup   bool
}

// DeliversOn indica si el acuerdo entrega el día de la semana dado.
func (a SupplierAgreement) DeliversOn(day time.Weekday) bool {
	for _, d := range a.DeliveryDays {
		if d == day {
			return true
		}
	}
	return false
}
