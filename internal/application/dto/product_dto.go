package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El umbral de alerta se calcula en el servidor.
type CreateProductRequest struct {
	CatalogNumber  int             `json:"catalog_number" validate:"required,min=1"`
	SupplierID     int             `json:"supplier_id"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	BasePrice      decimal.Decimal `json:"base_price"`
	Unit           string          `json:"unit"`
	Category       string          `json:"category"`
	SubCategory    string          `json:"sub_category"`
	DemandLevel    int             `json:"demand_level" validate:"min=0"`
	SupplyTimeDays int             `json:"supply_time_days" validate:"min=0"`
}

// ProductResponse salida de un producto con sus cantidades actuales.
type ProductResponse struct {
	CatalogNumber           int             `json:"catalog_number"`
	SupplierID              int             `json:"supplier_id"`
	Name                    string          `json:"name"`
	BasePrice               decimal.Decimal `json:"base_price"`
	Unit                    string          `json:"unit"`
	Category                string          `json:"category"`
	SubCategory             string          `json:"sub_category"`
	DemandLevel             int             `json:"demand_level"`
	SupplyTimeDays          int             `json:"supply_time_days"`
	MinimumQuantityForAlert int             `json:"minimum_quantity_for_alert"`
	QuantityInStore         int             `json:"quantity_in_store"`
	QuantityInWarehouse     int             `json:"quantity_in_warehouse"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// BranchStockItem stock de un producto en una sucursal.
type BranchStockItem struct {
	CatalogNumber           int  `json:"catalog_number"`
	InStore                 int  `json:"in_store"`
	InWarehouse             int  `json:"in_warehouse"`
	Current                 int  `json:"current"`
	MinimumQuantityForAlert int  `json:"minimum_quantity_for_alert"`
	BelowThreshold          bool `json:"below_threshold"`
}

// BranchStockResponse stock completo de una sucursal.
type BranchStockResponse struct {
	BranchID int               `json:"branch_id"`
	Items    []BranchStockItem `json:"items"`
}

// ShortageItem cantidad faltante de un producto.
type ShortageItem struct {
	CatalogNumber int `json:"catalog_number"`
	Quantity      int `json:"quantity"`
}

// ShortageResponse faltantes de una sucursal, ordenados por número de catálogo.
type ShortageResponse struct {
	BranchID int            `json:"branch_id"`
	Items    []ShortageItem `json:"items"`
}
