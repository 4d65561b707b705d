package entity

// Supplier representa un proveedor con su contacto comercial.
type Supplier struct {
	ID           int
	Name         string
	ContactName  string
	ContactPhone string
}
