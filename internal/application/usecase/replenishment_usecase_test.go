package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/jhoicas/supply-chain-api/internal/domain"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/domain/procurement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortages_OrdenadosPorCatalogo(t *testing.T) {
	f := newFixture(t, procurement.TieBreakLastWriteWins)
	ctx := context.Background()
	for _, n := range []int{3005, 1004, 2002} {
		require.NoError(t, f.products.Create(ctx, &entity.Product{CatalogNumber: n, Name: fmt.Sprint(n), MinimumQuantityForAlert: 4}))
	}
	require.NoError(t, f.items.AddItem(ctx, &entity.InventoryItem{ID: "a", CatalogNumber: 2002, BranchID: 1, Location: entity.ItemLocationStore}))

	resp, err := f.replenishmentUC.Shortages(ctx, 1)

	require.NoError(t, err)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, 1004, resp.Items[0].CatalogNumber)
	assert.Equal(t, 3, resp.Items[1].Quantity)
	assert.Equal(t, 3005, resp.Items[2].CatalogNumber)
}

func TestBestPrice_SinOfertasDevuelveCentinela(t *testing.T) {
	f := newFixture(t, procurement.TieBreakLastWriteWins)

	resp, err := f.replenishmentUC.BestPrice(context.Background(), 404, 3)

	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.True(t, procurement.IsNotFound(resp.Total))
}

func TestBestPrice_AplicaEscalon(t *testing.T) {
	f := newFixture(t, procurement.TieBreakLastWriteWins)
	f.seedCatalog(t)

	resp, err := f.replenishmentUC.BestPrice(context.Background(), 7, 12)

	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(540)))
	assert.Equal(t, 10, resp.AgreementID)

	_, err = f.replenishmentUC.BestPrice(context.Background(), 7, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheapestOffer(t *testing.T) {
	f := newFixture(t, procurement.TieBreakLastWriteWins)
	f.seedCatalog(t)

	resp, err := f.replenishmentUC.CheapestOffer(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(decimal.NewFromInt(50)))

	_, err = f.replenishmentUC.CheapestOffer(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunShortage_EmiteOrdenYSegundaCorridaSeOmite(t *testing.T) {
	f := newFixture(t, procurement.TieBreakLastWriteWins)
	f.seedCatalog(t)
	ctx := context.Background()

	first, err := f.replenishmentUC.RunShortage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "completed", first.Status)
	assert.Equal(t, 1, first.Processed)

	orders, err := f.shortages.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 10, orders[0].Quantity)
	assert.Equal(t, "Lácteos del Valle", orders[0].SupplierName)

	second, err := f.replenishmentUC.RunShortage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "already-processed", second.Status)

	_, err = f.replenishmentUC.RunShortage(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRunPeriodic_SinDefinicionesCompleta(t *testing.T) {
	f := newFixture(t, procurement.TieBreakLastWriteWins)

	resp, err := f.replenishmentUC.RunPeriodic(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "periodic", resp.Kind)
	assert.Equal(t, "completed", resp.Status)
	assert.Empty(t, resp.Outcomes)
}
