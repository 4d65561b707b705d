package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertSupplierRequest alta o modificación de un proveedor.
type UpsertSupplierRequest struct {
	ID           int    `json:"id" validate:"required,min=1"`
	Name         string `json:"name" validate:"required"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
}

// UpsertAgreementRequest alta o modificación de un acuerdo. DeliveryDays usa 0=domingo … 6=sábado.
type UpsertAgreementRequest struct {
	ID           int   `json:"id" validate:"required,min=1"`
	SupplierID   int   `json:"supplier_id" validate:"required,min=1"`
	DeliveryDays []int `json:"delivery_days"`
	SelfPickup   bool  `json:"self_pickup"`
}

// AgreementResponse salida de un acuerdo.
type AgreementResponse struct {
	ID              int    `json:"id"`
	SupplierID      int    `json:"supplier_id"`
	DeliveryDays    []int  `json:"delivery_days"`
	SelfPickup      bool   `json:"self_pickup"`
	DaysUntilNext   int    `json:"days_until_next_delivery"`
	NextDeliveryDay string `json:"next_delivery_day,omitempty"`
}

// UpsertOfferRequest alta o modificación de la oferta de un producto bajo un acuerdo.
type UpsertOfferRequest struct {
	AgreementID   int             `json:"agreement_id" validate:"required,min=1"`
	ProductID     int             `json:"product_id" validate:"required,min=1"`
	CatalogNumber int             `json:"catalog_number" validate:"required,min=1"`
	Price         decimal.Decimal `json:"price"`
	Unit          string          `json:"unit"`
}

// OfferResponse salida de una oferta con sus escalones.
type OfferResponse struct {
	AgreementID   int                `json:"agreement_id"`
	SupplierID    int                `json:"supplier_id"`
	ProductID     int                `json:"product_id"`
	CatalogNumber int                `json:"catalog_number"`
	Price         decimal.Decimal    `json:"price"`
	Unit          string             `json:"unit"`
	Discounts     []DiscountResponse `json:"discounts"`
}

// UpsertDiscountRequest alta o reemplazo de un escalón de descuento.
// Scope SUPPLIER: OwnerID es el proveedor y aplica a (AgreementID, ProductID).
// Scope STORE: OwnerID es la sucursal y aplica a CatalogNumber o Category; requiere ventana.
type UpsertDiscountRequest struct {
	Scope         string          `json:"scope" validate:"required,oneof=SUPPLIER STORE"`
	OwnerID       int             `json:"owner_id" validate:"required,min=1"`
	AgreementID   int             `json:"agreement_id"`
	ProductID     int             `json:"product_id"`
	CatalogNumber int             `json:"catalog_number"`
	Category      string          `json:"category"`
	MinQuantity   int             `json:"min_quantity" validate:"min=0"`
	Percentage    decimal.Decimal `json:"percentage"`
	ValidFrom     *time.Time      `json:"valid_from,omitempty"`
	ValidTo       *time.Time      `json:"valid_to,omitempty"`
}

// DiscountResponse salida de un escalón.
type DiscountResponse struct {
	ID            string          `json:"id"`
	Scope         string          `json:"scope"`
	OwnerID       int             `json:"owner_id"`
	AgreementID   int             `json:"agreement_id,omitempty"`
	ProductID     int             `json:"product_id,omitempty"`
	CatalogNumber int             `json:"catalog_number,omitempty"`
	Category      string          `json:"category,omitempty"`
	MinQuantity   int             `json:"min_quantity"`
	Percentage    decimal.Decimal `json:"percentage"`
	ValidFrom     *time.Time      `json:"valid_from,omitempty"`
	ValidTo       *time.Time      `json:"valid_to,omitempty"`
}

// StoreDiscountResponse descuento propio de la sucursal aplicable a un producto y cantidad.
type StoreDiscountResponse struct {
	BranchID      int             `json:"branch_id"`
	CatalogNumber int             `json:"catalog_number"`
	Quantity      int             `json:"quantity"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// BestPriceResponse mejor precio total con descuentos. Found=false cuando no hay ofertas.
type BestPriceResponse struct {
	ProductID   int             `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Found       bool            `json:"found"`
	Total       decimal.Decimal `json:"total"`
	SupplierID  int             `json:"supplier_id,omitempty"`
	AgreementID int             `json:"agreement_id,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
}

// UpdateOrderStatusRequest cambio de estado de una orden.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_TRANSIT DELIVERED"`
}

// OrderStatusResponse estado resultante de una orden.
type OrderStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PurchaseOrderLineRequest línea de una orden de compra.
type PurchaseOrderLineRequest struct {
	ProductID int `json:"product_id" validate:"required,min=1"`
	Quantity  int `json:"quantity" validate:"required,min=1"`
}

// CreatePurchaseOrderRequest orden de compra finalizada para un proveedor.
type CreatePurchaseOrderRequest struct {
	SupplierID   int                        `json:"supplier_id" validate:"required,min=1"`
	BranchID     int                        `json:"branch_id" validate:"required,min=1"`
	Lines        []PurchaseOrderLineRequest `json:"lines" validate:"required,min=1"`
	ContactName  string                     `json:"contact_name"`
	ContactPhone string                     `json:"contact_phone"`
}

// PurchaseOrderResponse orden de compra persistida.
type PurchaseOrderResponse struct {
	ID           string                     `json:"id"`
	SupplierID   int                        `json:"supplier_id"`
	BranchID     int                        `json:"branch_id"`
	Lines        []PurchaseOrderLineRequest `json:"lines"`
	TotalUnits   int                        `json:"total_units"`
	ContactName  string                     `json:"contact_name"`
	ContactPhone string                     `json:"contact_phone"`
	CreatedAt    time.Time                  `json:"created_at"`
}

// OutcomeResponse resultado por ítem de una corrida.
type OutcomeResponse struct {
	Key           string `json:"key"`
	CatalogNumber int    `json:"catalog_number"`
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
}

// RunReportResponse resumen de una corrida de reposición.
type RunReportResponse struct {
	Kind       string            `json:"kind"`
	BranchID   int               `json:"branch_id"`
	Status     string            `json:"status"`
	Processed  int               `json:"processed"`
	Skipped    int               `json:"skipped"`
	Outcomes   []OutcomeResponse `json:"outcomes"`
	Error      string            `json:"error,omitempty"`
	DurationMS int64             `json:"duration_ms"`
}
