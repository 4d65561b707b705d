package usecase

import (
	"context"
	"sort"

	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	appproc "github.com/jhoicas/supply-chain-api/internal/application/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	domainproc "github.com/jhoicas/supply-chain-api/internal/domain/procurement"
)

// ReplenishmentUseCase consultas de precio y disparo manual de corridas de reposición.
type ReplenishmentUseCase struct {
	gateway *appproc.Gateway
	trigger *appproc.Trigger
}

// NewReplenishmentUseCase construye el caso de uso.
func NewReplenishmentUseCase(gateway *appproc.Gateway, trigger *appproc.Trigger) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{gateway: gateway, trigger: trigger}
}

// Shortages devuelve el mapa de faltantes de la sucursal ordenado por número de catálogo.
func (uc *ReplenishmentUseCase) Shortages(ctx context.Context, branchID int) (*dto.ShortageResponse, error) {
	if branchID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.gateway.ShortageMap(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := &dto.ShortageResponse{BranchID: branchID, Items: make([]dto.ShortageItem, 0, len(m))}
	for catalogNumber, qty := range m {
		out.Items = append(out.Items, dto.ShortageItem{CatalogNumber: catalogNumber, Quantity: qty})
	}
	sort.Slice(out.Items, func(i, j int) bool { return out.Items[i].CatalogNumber < out.Items[j].CatalogNumber })
	return out, nil
}

// BestPrice cotiza la cantidad contra todas las ofertas del producto. Found=false si no hay ofertas.
func (uc *ReplenishmentUseCase) BestPrice(ctx context.Context, productID, quantity int) (*dto.BestPriceResponse, error) {
	quote, ok, err := uc.gateway.BestQuote(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}
	out := &dto.BestPriceResponse{ProductID: productID, Quantity: quantity, Total: domainproc.NotFound}
	if !ok {
		return out, nil
	}
	out.Found = true
	out.Total = quote.Total
	out.UnitPrice = quote.UnitPrice
	out.Discount = quote.Discount
	out.SupplierID = quote.Offer.SupplierID
	out.AgreementID = quote.Offer.AgreementID
	return out, nil
}

// CheapestOffer devuelve la oferta de menor precio de lista del producto.
func (uc *ReplenishmentUseCase) CheapestOffer(ctx context.Context, productID int) (*dto.OfferResponse, error) {
	offer, err := uc.gateway.GetCheapestOffer(ctx, productID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, domain.ErrNotFound
	}
	return toOfferResponse(offer), nil
}

// RunShortage dispara la pasada de faltantes de la sucursal.
func (uc *ReplenishmentUseCase) RunShortage(ctx context.Context, branchID int) (*dto.RunReportResponse, error) {
	if branchID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return toRunReportResponse(uc.trigger.RunShortage(ctx, branchID)), nil
}

// RunPeriodic dispara la pasada periódica de la sucursal.
func (uc *ReplenishmentUseCase) RunPeriodic(ctx context.Context, branchID int) (*dto.RunReportResponse, error) {
	if branchID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return toRunReportResponse(uc.trigger.RunPeriodic(ctx, branchID)), nil
}

func toRunReportResponse(r appproc.RunReport) *dto.RunReportResponse {
	out := &dto.RunReportResponse{
		Kind:       string(r.Kind),
		BranchID:   r.BranchID,
		Status:     string(r.Status),
		Processed:  r.Processed,
		Skipped:    r.Skipped(),
		Outcomes:   make([]dto.OutcomeResponse, 0, len(r.Outcomes)),
		DurationMS: r.Duration.Milliseconds(),
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	for _, o := range r.Outcomes {
		or := dto.OutcomeResponse{Key: o.Key, CatalogNumber: o.CatalogNumber, Status: string(o.Status)}
		if o.Reason != nil {
			or.Reason = o.Reason.Error()
		}
		out.Outcomes = append(out.Outcomes, or)
	}
	return out
}
