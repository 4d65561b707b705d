package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/supply-chain-api/internal/application/catalog"
	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/repository"
)

// SupplierUseCase gestión de proveedores, acuerdos y ofertas.
type SupplierUseCase struct {
	suppliers  repository.SupplierRepository
	agreements repository.AgreementRepository
	offers     repository.OfferRepository
	loader     *catalog.OfferLoader
	now        func() time.Time
}

// NewSupplierUseCase construye el caso de uso. agreements puede ser el decorador con caché.
func NewSupplierUseCase(
	suppliers repository.SupplierRepository,
	agreements repository.AgreementRepository,
	offers repository.OfferRepository,
	loader *catalog.OfferLoader,
) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers, agreements: agreements, offers: offers, loader: loader, now: time.Now}
}

// UpsertSupplier crea o actualiza un proveedor.
func (uc *SupplierUseCase) UpsertSupplier(ctx context.Context, in dto.UpsertSupplierRequest) error {
	if in.ID <= 0 || in.Name == "" {
		return domain.ErrInvalidInput
	}
	return uc.suppliers.Upsert(ctx, &entity.Supplier{
		ID: in.ID, Name: in.Name, ContactName: in.ContactName, ContactPhone: in.ContactPhone,
	})
}

// UpsertAgreement crea o actualiza un acuerdo. El proveedor debe existir y los días ser 0..6 sin repetir.
func (uc *SupplierUseCase) UpsertAgreement(ctx context.Context, in dto.UpsertAgreementRequest) (*dto.AgreementResponse, error) {
	if in.ID <= 0 || in.SupplierID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	days := make([]time.Weekday, 0, len(in.DeliveryDays))
	seen := make(map[int]bool, len(in.DeliveryDays))
	for _, d := range in.DeliveryDays {
		if d < 0 || d > 6 || seen[d] {
			return nil, fmt.Errorf("%w: día de entrega %d", domain.ErrInvalidInput, d)
		}
		seen[d] = true
		days = append(days, time.Weekday(d))
	}
	supplier, err := uc.suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %d: %w", in.SupplierID, domain.ErrNotFound)
	}
	agreement := &entity.SupplierAgreement{ID: in.ID, SupplierID: in.SupplierID, DeliveryDays: days, SelfPickup: in.SelfPickup}
	if err := uc.agreements.Upsert(ctx, agreement); err != nil {
		return nil, err
	}
	return uc.toAgreementResponse(agreement), nil
}

// GetAgreement obtiene un acuerdo con la próxima entrega calculada; nil, nil si no existe.
func (uc *SupplierUseCase) GetAgreement(ctx context.Context, id int) (*dto.AgreementResponse, error) {
	agreement, err := uc.agreements.GetByID(ctx, id)
	if err != nil || agreement == nil {
		return nil, err
	}
	return uc.toAgreementResponse(agreement), nil
}

// UpsertOffer crea o actualiza la oferta de un producto bajo un acuerdo existente.
func (uc *SupplierUseCase) UpsertOffer(ctx context.Context, in dto.UpsertOfferRequest) (*dto.OfferResponse, error) {
	if in.AgreementID <= 0 || in.ProductID <= 0 || in.CatalogNumber <= 0 || !in.Price.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	agreement, err := uc.agreements.GetByID(ctx, in.AgreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, fmt.Errorf("acuerdo %d: %w", in.AgreementID, domain.ErrNotFound)
	}
	offer := &entity.SupplierOffer{
		CatalogNumber: in.CatalogNumber,
		ProductID:     in.ProductID,
		SupplierID:    agreement.SupplierID,
		AgreementID:   in.AgreementID,
		Price:         in.Price,
		Unit:          in.Unit,
	}
	if err := uc.offers.Upsert(ctx, offer); err != nil {
		return nil, err
	}
	return toOfferResponse(offer), nil
}

// ListOffers lista las ofertas de un producto con sus escalones.
func (uc *SupplierUseCase) ListOffers(ctx context.Context, productID int) ([]dto.OfferResponse, error) {
	offers, err := uc.loader.ByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, *toOfferResponse(o))
	}
	return out, nil
}

func (uc *SupplierUseCase) toAgreementResponse(a *entity.SupplierAgreement) *dto.AgreementResponse {
	days := make([]int, len(a.DeliveryDays))
	for i, d := range a.DeliveryDays {
		days[i] = int(d)
	}
	out := &dto.AgreementResponse{
		ID:            a.ID,
		SupplierID:    a.SupplierID,
		DeliveryDays:  days,
		SelfPickup:    a.SelfPickup,
		DaysUntilNext: procurement.DaysUntilNextDelivery(uc.now(), a.DeliveryDays),
	}
	if out.DaysUntilNext >= 0 {
		out.NextDeliveryDay = uc.now().AddDate(0, 0, out.DaysUntilNext).Weekday().String()
	}
	return out
}

func toOfferResponse(o *entity.SupplierOffer) *dto.OfferResponse {
	out := &dto.OfferResponse{
		AgreementID:   o.AgreementID,
		SupplierID:    o.SupplierID,
		ProductID:     o.ProductID,
		CatalogNumber: o.CatalogNumber,
		Price:         o.Price,
		Unit:          o.Unit,
		Discounts:     make([]dto.DiscountResponse, 0, len(o.Discounts)),
	}
	for _, d := range o.Discounts {
		out.Discounts = append(out.Discounts, toDiscountResponse(d))
	}
	return out
}
