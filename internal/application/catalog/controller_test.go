package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/supply-chain-api/internal/application/catalog"
	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newController(t *testing.T) (*catalog.Controller, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	suppliers := memory.NewSupplierRepository(store)
	agreements := memory.NewAgreementRepository(store)
	offers := memory.NewOfferRepository(store)
	discounts := memory.NewDiscountRepository(store)

	require.NoError(t, suppliers.Upsert(ctx, &entity.Supplier{ID: 1, Name: "Frutas Andinas"}))
	require.NoError(t, agreements.Upsert(ctx, &entity.SupplierAgreement{
		ID: 10, SupplierID: 1, DeliveryDays: []time.Weekday{time.Tuesday, time.Friday},
	}))
	// acuerdo cuyo proveedor no existe
	require.NoError(t, agreements.Upsert(ctx, &entity.SupplierAgreement{ID: 99, SupplierID: 42}))
	require.NoError(t, offers.Upsert(ctx, &entity.SupplierOffer{
		CatalogNumber: 3001, ProductID: 31, SupplierID: 1, AgreementID: 10, Price: decimal.NewFromInt(40),
	}))
	require.NoError(t, discounts.Upsert(ctx, &entity.DiscountRule{
		Scope: entity.DiscountScopeSupplier, OwnerID: 1, AgreementID: 10, ProductID: 31,
		MinQuantity: 12, Percentage: decimal.NewFromInt(15),
	}))

	resolver := procurement.NewDiscountResolver(procurement.TieBreakLastWriteWins)
	c := catalog.NewController(catalog.NewOfferLoader(offers, discounts), agreements, suppliers, resolver, zerolog.Nop()).
		WithClock(func() time.Time { return today })
	return c, store
}

func TestPeriodicDetails_AplicaDescuentoDelAcuerdo(t *testing.T) {
	c, _ := newController(t)

	details, err := c.GetPeriodicOrderProductDetails(context.Background(), map[int]int{31: 12}, 10)

	require.NoError(t, err)
	require.Len(t, details, 1)
	d := details[0]
	assert.Equal(t, 1, d.SupplierID)
	assert.Equal(t, "Frutas Andinas", d.SupplierName)
	assert.Equal(t, 10, d.AgreementID)
	assert.Equal(t, 3001, d.CatalogNumber)
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Friday}, d.DeliveryDays)
	assert.True(t, d.Price.Equal(decimal.NewFromInt(40)))
	assert.True(t, d.Discount.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 12, d.Quantity)
}

func TestPeriodicDetails_Errores(t *testing.T) {
	c, _ := newController(t)
	ctx := context.Background()

	_, err := c.GetPeriodicOrderProductDetails(ctx, map[int]int{31: 1}, 555)
	assert.ErrorIs(t, err, domain.ErrNotFound, "acuerdo inexistente")

	_, err = c.GetPeriodicOrderProductDetails(ctx, map[int]int{31: 1}, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound, "proveedor inexistente")

	_, err = c.GetPeriodicOrderProductDetails(ctx, map[int]int{31: 0}, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.GetPeriodicOrderProductDetails(ctx, map[int]int{77: 3}, 10)
	assert.ErrorIs(t, err, domain.ErrNoSupplierOffer)
}

func TestShortageDetails_SinDescuentoBajoElEscalon(t *testing.T) {
	c, _ := newController(t)

	details, err := c.GetShortageOrderProductDetails(context.Background(), map[int]int{3001: 4}, 1)

	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.True(t, details[0].Discount.IsZero())
	assert.Equal(t, 31, details[0].ProductID)
}

func TestShortageDetails_OmiteCatalogosSinOfertas(t *testing.T) {
	c, _ := newController(t)

	details, err := c.GetShortageOrderProductDetails(context.Background(), map[int]int{8888: 4}, 1)

	require.NoError(t, err)
	assert.Empty(t, details)
}
