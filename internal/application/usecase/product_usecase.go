package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos. Las cantidades se manejan vía ítems de inventario.
type ProductUseCase struct {
	repo       repository.ProductRepository
	stock      repository.StockRepository
	agreements repository.AgreementRepository
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, stock repository.StockRepository, agreements repository.AgreementRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, stock: stock, agreements: agreements, now: time.Now}
}

// Create crea un producto. MinimumQuantityForAlert se deriva de la demanda y los días de abastecimiento.
// Sin SupplyTimeDays explícito, los días son los que faltan hasta la próxima entrega de los acuerdos
// del proveedor principal.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.CatalogNumber <= 0 || in.Name == "" || in.DemandLevel < 0 || in.SupplyTimeDays < 0 || in.BasePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCatalogNumber(ctx, in.CatalogNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.now()
	supplyDays := in.SupplyTimeDays
	if supplyDays == 0 && in.SupplierID > 0 {
		if supplyDays, err = uc.daysToNextDelivery(ctx, in.SupplierID, now); err != nil {
			return nil, err
		}
	}
	product := &entity.Product{
		CatalogNumber:           in.CatalogNumber,
		SupplierID:              in.SupplierID,
		Name:                    in.Name,
		BasePrice:               in.BasePrice,
		Unit:                    in.Unit,
		Category:                in.Category,
		SubCategory:             in.SubCategory,
		DemandLevel:             in.DemandLevel,
		SupplyTimeDays:          supplyDays,
		MinimumQuantityForAlert: procurement.AlertThreshold(in.DemandLevel, supplyDays),
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// daysToNextDelivery menor espera entre los acuerdos del proveedor; 0 si no tiene días de entrega.
func (uc *ProductUseCase) daysToNextDelivery(ctx context.Context, supplierID int, today time.Time) (int, error) {
	agreements, err := uc.agreements.ListBySupplier(ctx, supplierID)
	if err != nil {
		return 0, err
	}
	best := -1
	for _, a := range agreements {
		days := procurement.DaysUntilNextDelivery(today, a.DeliveryDays)
		if days >= 0 && (best < 0 || days < best) {
			best = days
		}
	}
	return max(best, 0), nil
}

// GetByCatalogNumber obtiene un producto; nil, nil si no existe.
func (uc *ProductUseCase) GetByCatalogNumber(ctx context.Context, catalogNumber int) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCatalogNumber(ctx, catalogNumber)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// BranchStock devuelve el stock de cada producto en la sucursal.
func (uc *ProductUseCase) BranchStock(ctx context.Context, branchID int) (*dto.BranchStockResponse, error) {
	if branchID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.stock.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := &dto.BranchStockResponse{BranchID: branchID, Items: make([]dto.BranchStockItem, 0, len(rows))}
	for _, s := range rows {
		out.Items = append(out.Items, dto.BranchStockItem{
			CatalogNumber:           s.CatalogNumber,
			InStore:                 s.InStore,
			InWarehouse:             s.InWarehouse,
			Current:                 s.Current(),
			MinimumQuantityForAlert: s.MinimumQuantityForAlert,
			BelowThreshold:          s.Current() < s.MinimumQuantityForAlert,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		CatalogNumber:           p.CatalogNumber,
		SupplierID:              p.SupplierID,
		Name:                    p.Name,
		BasePrice:               p.BasePrice,
		Unit:                    p.Unit,
		Category:                p.Category,
		SubCategory:             p.SubCategory,
		DemandLevel:             p.DemandLevel,
		SupplyTimeDays:          p.SupplyTimeDays,
		MinimumQuantityForAlert: p.MinimumQuantityForAlert,
		QuantityInStore:         p.QuantityInStore,
		QuantityInWarehouse:     p.QuantityInWarehouse,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}
