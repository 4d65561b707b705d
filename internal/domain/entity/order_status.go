package entity

// OrderStatus estado de una orden de reposición.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusInTransit OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// Valid indica si el estado es uno de los conocidos.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInTransit, OrderStatusDelivered:
		return true
	}
	return false
}

// CanTransitionTo solo permite avanzar PENDING → IN_TRANSIT → DELIVERED (sin saltos ni retrocesos).
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusInTransit
	case OrderStatusInTransit:
		return next == OrderStatusDelivered
	}
	return false
}

// Open indica si la orden sigue abierta (bloquea nuevas órdenes por faltante del mismo producto).
func (s OrderStatus) Open() bool {
	return s == OrderStatusPending || s == OrderStatusInTransit
}
