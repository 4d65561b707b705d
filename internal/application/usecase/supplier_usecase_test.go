package usecase

import (
	"context"
	"testing"

	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertAgreement_CalculaProximaEntrega(t *testing.T) {
	f := newFixture(t, procurement.TieBreakLastWriteWins)
	ctx := context.Background()
	require.NoError(t, f.supplierUC.UpsertSupplier(ctx, dto.UpsertSupplierRequest{ID: 5, Name: "Frutas del Sur"}))

	// hoy es lunes: miércoles está a 2 días
	resp, err := f.supplierUC.UpsertAgreement(ctx, dto.UpsertAgreementRequest{ID: 50, SupplierID: 5, DeliveryDays: []int{3, 5}})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.DaysUntilNext)
	assert.Equal(t, "Wednesday", resp.NextDeliveryDay)

	got, err := f.supplierUC.GetAgreement(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, got.DeliveryDays)
}

func TestUpsertAgreement_SinDiasDeEntrega(t *testing.T) {
	f := newFixture(t, procurement.TieBreakLastWriteWins)
	ctx := context.Background()
	require.NoError(t, f.supplierUC.UpsertSupplier(ctx, dto.UpsertSupplierRequest{ID: 5, Name: "Frutas del Sur"}))

	resp, err := f.supplierUC.UpsertAgreement(ctx, dto.UpsertAgreementRequest{ID: 50, SupplierID: 5, SelfPickup: true})

	require.NoError(t, err)
	assert.Equal(t, -1, resp.DaysUntilNext)
	assert.Empty(t, resp.NextDeliveryDay)
}

func TestUpsertAgreement_Validaciones(t *testing.T) {
	f := newFixture(t, procurement.TieBreakLastWriteWins)
	ctx := context.Background()
	require.NoError(t, f.supplierUC.UpsertSupplier(ctx, dto.UpsertSupplierRequest{ID: 5, Name: "Frutas del Sur"}))

	_, err := f.supplierUC.UpsertAgreement(ctx, dto.UpsertAgreementRequest{ID: 50, SupplierID: 5, DeliveryDays: []int{7}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.supplierUC.UpsertAgreement(ctx, dto.UpsertAgreementRequest{ID: 50, SupplierID: 5, DeliveryDays: []int{1, 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.supplierUC.UpsertAgreement(ctx, dto.UpsertAgreementRequest{ID: 51, SupplierID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	missing, err := f.supplierUC.GetAgreement(ctx, 50)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpsertOffer_TomaProveedorDelAcuerdo(t *testing.T) {
	f := newFixture(t, procurement.TieBreakLastWriteWins)
	f.seedCatalog(t)
	ctx := context.Background()

	resp, err := f.supplierUC.UpsertOffer(ctx, dto.UpsertOfferRequest{AgreementID: 10, ProductID: 8, CatalogNumber: 1005, Price: decimal.NewFromInt(20)})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.SupplierID)

	offers, err := f.supplierUC.ListOffers(ctx, 7)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	require.Len(t, offers[0].Discounts, 1)
	assert.Equal(t, 12, offers[0].Discounts[0].MinQuantity)
}

func TestUpsertOffer_Errores(t *testing.T) {
	f := newFixture(t, procurement.TieBreakLastWriteWins)
	f.seedCatalog(t)
	ctx := context.Background()

	_, err := f.supplierUC.UpsertOffer(ctx, dto.UpsertOfferRequest{AgreementID: 99, ProductID: 8, CatalogNumber: 1005, Price: decimal.NewFromInt(20)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.supplierUC.UpsertOffer(ctx, dto.UpsertOfferRequest{AgreementID: 10, ProductID: 8, CatalogNumber: 1005, Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
