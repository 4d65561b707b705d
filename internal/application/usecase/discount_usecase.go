package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

// DiscountUseCase alta de escalones de descuento (proveedor y tienda) y consulta del descuento de tienda.
type DiscountUseCase struct {
	repo     repository.DiscountRepository
	products repository.ProductRepository
	resolver *procurement.DiscountResolver
	now      func() time.Time
}

// NewDiscountUseCase construye el caso de uso.
func NewDiscountUseCase(repo repository.DiscountRepository, products repository.ProductRepository, resolver *procurement.DiscountResolver) *DiscountUseCase {
	return &DiscountUseCase{repo: repo, products: products, resolver: resolver, now: time.Now}
}

// Upsert valida y guarda el escalón. Si ya existe uno con la misma cantidad mínima para el mismo objetivo,
// la política de desempate decide; applied=false indica que se conservó el existente.
// Una regla inválida devuelve ErrInvalidInput y no persiste nada.
func (uc *DiscountUseCase) Upsert(ctx context.Context, in dto.UpsertDiscountRequest) (resp *dto.DiscountResponse, applied bool, err error) {
	rule := entity.DiscountRule{
		Scope:         entity.DiscountScope(in.Scope),
		OwnerID:       in.OwnerID,
		AgreementID:   in.AgreementID,
		ProductID:     in.ProductID,
		CatalogNumber: in.CatalogNumber,
		Category:      in.Category,
		MinQuantity:   in.MinQuantity,
		Percentage:    in.Percentage,
		ValidFrom:     in.ValidFrom,
		ValidTo:       in.ValidTo,
	}
	if err := validateTarget(rule); err != nil {
		return nil, false, err
	}
	if err := procurement.ValidateRule(rule); err != nil {
		return nil, false, err
	}

	existing, err := uc.sameTarget(ctx, rule)
	if err != nil {
		return nil, false, err
	}
	merged, ok := uc.resolver.Upsert(existing, rule)
	if !ok {
		for _, r := range merged {
			if r.MinQuantity == rule.MinQuantity {
				out := toDiscountResponse(r)
				return &out, false, nil
			}
		}
		return nil, false, domain.ErrInvalidInput
	}
	if err := uc.repo.Upsert(ctx, &rule); err != nil {
		return nil, false, err
	}
	out := toDiscountResponse(rule)
	return &out, true, nil
}

// ListForOffer lista los escalones del proveedor para (acuerdo, producto).
func (uc *DiscountUseCase) ListForOffer(ctx context.Context, supplierID, agreementID, productID int) ([]dto.DiscountResponse, error) {
	rules, err := uc.repo.ListForOffer(ctx, supplierID, agreementID, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DiscountResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, toDiscountResponse(r))
	}
	return out, nil
}

// StoreDiscount resuelve el descuento propio de la sucursal para un producto y cantidad, considerando
// las reglas por número de catálogo y por categoría del producto. Con igual cantidad mínima la regla
// por número de catálogo prevalece sobre la de categoría, sea cual sea la política de desempate.
func (uc *DiscountUseCase) StoreDiscount(ctx context.Context, branchID, catalogNumber, quantity int) (*dto.StoreDiscountResponse, error) {
	if branchID <= 0 || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByCatalogNumber(ctx, catalogNumber)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", catalogNumber, domain.ErrNotFound)
	}
	byCatalog, err := uc.repo.ListByCatalogNumber(ctx, entity.DiscountScopeStore, catalogNumber)
	if err != nil {
		return nil, err
	}
	var byCategory []entity.DiscountRule
	if product.Category != "" {
		if byCategory, err = uc.repo.ListByCategory(ctx, entity.DiscountScopeStore, product.Category); err != nil {
			return nil, err
		}
	}
	rules := catalogFirst(ownedBy(byCatalog, branchID), ownedBy(byCategory, branchID))
	return &dto.StoreDiscountResponse{
		BranchID:      branchID,
		CatalogNumber: catalogNumber,
		Quantity:      quantity,
		Percentage:    uc.resolver.Resolve(rules, quantity, uc.now()),
	}, nil
}

func (uc *DiscountUseCase) sameTarget(ctx context.Context, rule entity.DiscountRule) ([]entity.DiscountRule, error) {
	switch {
	case rule.Scope == entity.DiscountScopeSupplier:
		return uc.repo.ListForOffer(ctx, rule.OwnerID, rule.AgreementID, rule.ProductID)
	case rule.Category != "":
		rules, err := uc.repo.ListByCategory(ctx, rule.Scope, rule.Category)
		return ownedBy(rules, rule.OwnerID), err
	default:
		rules, err := uc.repo.ListByCatalogNumber(ctx, rule.Scope, rule.CatalogNumber)
		return ownedBy(rules, rule.OwnerID), err
	}
}

func validateTarget(rule entity.DiscountRule) error {
	if rule.OwnerID <= 0 {
		return fmt.Errorf("%w: owner_id requerido", domain.ErrInvalidInput)
	}
	switch rule.Scope {
	case entity.DiscountScopeSupplier:
		if rule.AgreementID <= 0 || rule.ProductID <= 0 {
			return fmt.Errorf("%w: un descuento de proveedor requiere acuerdo y producto", domain.ErrInvalidInput)
		}
	case entity.DiscountScopeStore:
		if (rule.CatalogNumber > 0) == (rule.Category != "") {
			return fmt.Errorf("%w: un descuento de tienda aplica a un número de catálogo o a una categoría", domain.ErrInvalidInput)
		}
	}
	return nil
}

func ownedBy(rules []entity.DiscountRule, ownerID int) []entity.DiscountRule {
	out := rules[:0:0]
	for _, r := range rules {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out
}

// catalogFirst une ambas listas descartando los escalones de categoría que ya cubre una regla por
// número de catálogo.
func catalogFirst(byCatalog, byCategory []entity.DiscountRule) []entity.DiscountRule {
	tiers := make(map[int]bool, len(byCatalog))
	for _, r := range byCatalog {
		tiers[r.MinQuantity] = true
	}
	out := append(make([]entity.DiscountRule, 0, len(byCatalog)+len(byCategory)), byCatalog...)
	for _, r := range byCategory {
		if !tiers[r.MinQuantity] {
			out = append(out, r)
		}
	}
	return out
}

func toDiscountResponse(r entity.DiscountRule) dto.DiscountResponse {
	return dto.DiscountResponse{
		ID:            r.ID,
		Scope:         string(r.Scope),
		OwnerID:       r.OwnerID,
		AgreementID:   r.AgreementID,
		ProductID:     r.ProductID,
		CatalogNumber: r.CatalogNumber,
		Category:      r.Category,
		MinQuantity:   r.MinQuantity,
		Percentage:    r.Percentage,
		ValidFrom:     r.ValidFrom,
		ValidTo:       r.ValidTo,
	}
}
