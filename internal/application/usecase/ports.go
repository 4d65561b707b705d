package usecase

import (
	"context"

	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PurchaseOrderLineForPDF línea de orden de compra ya valorizada para imprimir.
type PurchaseOrderLineForPDF struct {
	ProductID   int
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal // porcentaje 0-100
	Subtotal    decimal.Decimal
}

// PurchaseOrderPDFGenerator genera la representación imprimible de una orden de compra.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(ctx context.Context, order *entity.PurchaseOrder, supplier *entity.Supplier, lines []PurchaseOrderLineForPDF) ([]byte, error)
}
