package entity

// BranchStock es el stock de un producto en una sucursal, separado por ubicación.
type BranchStock struct {
	CatalogNumber           int
	BranchID                int
	InStore                 int
	InWarehouse             int
	MinimumQuantityForAlert int
}

// Current devuelve la cantidad disponible en la sucursal (tienda + bodega).
func (s BranchStock) Current() int {
	return s.InStore + s.InWarehouse
}
