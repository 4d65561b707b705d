package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/supply-chain-api/internal/application/catalog"
	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	appproc "github.com/jhoicas/supply-chain-api/internal/application/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

// OrderDeps dependencias del caso de uso de órdenes.
type OrderDeps struct {
	Shortages      repository.ShortageOrderRepository
	OnTheWay       repository.OrderOnTheWayRepository
	PurchaseOrders repository.PurchaseOrderRepository
	Suppliers      repository.SupplierRepository
	Products       repository.ProductRepository
	Gateway        *appproc.Gateway
	Loader         *catalog.OfferLoader
	Resolver       *procurement.DiscountResolver
	PDF            PurchaseOrderPDFGenerator
}

// OrderUseCase seguimiento de órdenes de reposición y órdenes de compra a proveedores.
type OrderUseCase struct {
	shortages      repository.ShortageOrderRepository
	onTheWay       repository.OrderOnTheWayRepository
	purchaseOrders repository.PurchaseOrderRepository
	suppliers      repository.SupplierRepository
	products       repository.ProductRepository
	gateway        *appproc.Gateway
	loader         *catalog.OfferLoader
	selector       *procurement.BestPriceSelector
	pdf            PurchaseOrderPDFGenerator
	now            func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(deps OrderDeps) *OrderUseCase {
	return &OrderUseCase{
		shortages:      deps.Shortages,
		onTheWay:       deps.OnTheWay,
		purchaseOrders: deps.PurchaseOrders,
		suppliers:      deps.Suppliers,
		products:       deps.Products,
		gateway:        deps.Gateway,
		loader:         deps.Loader,
		selector:       procurement.NewBestPriceSelector(deps.Resolver),
		pdf:            deps.PDF,
		now:            time.Now,
	}
}

// AdvanceShortageStatus mueve una orden por faltante al estado indicado. Solo se permite avanzar.
// branchScope limita la operación a órdenes de esa sucursal; 0 permite todas.
func (uc *OrderUseCase) AdvanceShortageStatus(ctx context.Context, id string, branchScope int, in dto.UpdateOrderStatusRequest) (*dto.OrderStatusResponse, error) {
	next := entity.OrderStatus(in.Status)
	if !next.Valid() {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.shortages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !inScope(branchScope, order.BranchID) {
		return nil, domain.ErrForbidden
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, order.Status, next)
	}
	if err := uc.shortages.UpdateStatus(ctx, id, order.Status, next); err != nil {
		return nil, err
	}
	return &dto.OrderStatusResponse{ID: id, Status: string(next)}, nil
}

// AdvanceOnTheWayStatus mueve una orden en camino al estado indicado. Solo se permite avanzar.
func (uc *OrderUseCase) AdvanceOnTheWayStatus(ctx context.Context, id string, branchScope int, in dto.UpdateOrderStatusRequest) (*dto.OrderStatusResponse, error) {
	next := entity.OrderStatus(in.Status)
	if !next.Valid() {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.onTheWay.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !inScope(branchScope, order.BranchID) {
		return nil, domain.ErrForbidden
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, order.Status, next)
	}
	if err := uc.onTheWay.UpdateStatus(ctx, id, order.Status, next); err != nil {
		return nil, err
	}
	return &dto.OrderStatusResponse{ID: id, Status: string(next)}, nil
}

// CreatePurchaseOrder valida el proveedor y persiste la orden vía el gateway de compras.
func (uc *OrderUseCase) CreatePurchaseOrder(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplier, err := uc.suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %d: %w", in.SupplierID, domain.ErrNotFound)
	}
	if in.BranchID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	order := &entity.PurchaseOrder{
		SupplierID:   in.SupplierID,
		BranchID:     in.BranchID,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
	}
	for _, l := range in.Lines {
		order.Lines = append(order.Lines, entity.PurchaseOrderLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	if err := uc.gateway.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order), nil
}

// PurchaseOrderPDF genera el PDF de la orden, valorizando cada línea con la mejor oferta del proveedor.
func (uc *OrderUseCase) PurchaseOrderPDF(ctx context.Context, id string, branchScope int) ([]byte, error) {
	order, err := uc.purchaseOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !inScope(branchScope, order.BranchID) {
		return nil, domain.ErrForbidden
	}
	supplier, err := uc.suppliers.GetByID(ctx, order.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %d: %w", order.SupplierID, domain.ErrNotFound)
	}
	lines := make([]PurchaseOrderLineForPDF, 0, len(order.Lines))
	for _, l := range order.Lines {
		line, err := uc.priceLine(ctx, order.SupplierID, l)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return uc.pdf.GeneratePurchaseOrderPDF(ctx, order, supplier, lines)
}

func (uc *OrderUseCase) priceLine(ctx context.Context, supplierID int, l entity.PurchaseOrderLine) (PurchaseOrderLineForPDF, error) {
	out := PurchaseOrderLineForPDF{ProductID: l.ProductID, Quantity: l.Quantity, ProductName: fmt.Sprintf("Producto #%d", l.ProductID)}
	offers, err := uc.loader.ByProduct(ctx, l.ProductID)
	if err != nil {
		return out, err
	}
	own := offers[:0:0]
	for _, o := range offers {
		if o.SupplierID == supplierID {
			own = append(own, o)
		}
	}
	quote, ok := uc.selector.SelectBestOffer(own, l.Quantity, uc.now())
	if !ok {
		return out, nil
	}
	out.UnitPrice, out.Discount, out.Subtotal = quote.UnitPrice, quote.Discount, quote.Total
	product, err := uc.products.GetByCatalogNumber(ctx, quote.Offer.CatalogNumber)
	if err != nil {
		return out, err
	}
	if product != nil {
		out.ProductName = product.Name
	}
	return out, nil
}

func inScope(branchScope, branchID int) bool {
	return branchScope == 0 || branchScope == branchID
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	lines := make([]dto.PurchaseOrderLineRequest, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.PurchaseOrderLineRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return &dto.PurchaseOrderResponse{
		ID:           o.ID,
		SupplierID:   o.SupplierID,
		BranchID:     o.BranchID,
		Lines:        lines,
		TotalUnits:   o.TotalUnits(),
		ContactName:  o.ContactName,
		ContactPhone: o.ContactPhone,
		CreatedAt:    o.CreatedAt,
	}
}
