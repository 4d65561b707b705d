package entity

import "time"

// PurchaseOrderLine cantidad pedida de un producto del proveedor.
type PurchaseOrderLine struct {
	ProductID int
	Quantity  int
}

// PurchaseOrder orden de compra finalizada enviada a un proveedor.
type PurchaseOrder struct {
	ID           string
	SupplierID   int
	BranchID     int
	Lines        []PurchaseOrderLine
	ContactName  string
	ContactPhone string
	CreatedAt    time.Time
}

// TotalUnits suma las cantidades de todas las líneas.
func (o PurchaseOrder) TotalUnits() int {
	total := 0
	for _, l := range o.Lines {
		total += l.Quantity
	}
	return total
}
