package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-chain-api/internal/app"
	"github.com/jhoicas/supply-chain-api/internal/application/dto"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
	"github.com/jhoicas/supply-chain-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/supply-chain-api/internal/interfaces/http"
	"github.com/jhoicas/supply-chain-api/pkg/config"
	pkgjwt "github.com/jhoicas/supply-chain-api/pkg/jwt"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app   *fiber.App
	repos app.Repositories
}

// newTestServer arma el router completo sobre repositorios en memoria, con el proveedor 1
// (acuerdo 10) ofreciendo el producto 7 (catálogo 1004) a 50 por unidad.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repos := app.MemoryRepositories(memory.NewStore())
	services, err := app.NewServices(repos, config.ReplenishConfig{MaxParallel: 2, AgreementCacheSize: 8}, zerolog.Nop())
	require.NoError(t, err)

	fapp := fiber.New()
	apphttp.Router(fapp, apphttp.RouterDeps{
		ProductUC:       services.ProductUC,
		SupplierUC:      services.SupplierUC,
		DiscountUC:      services.DiscountUC,
		OrderUC:         services.OrderUC,
		ReplenishmentUC: services.ReplenishmentUC,
		JWTSecret:       testJWTSecret,
		ServiceName:     "supply-chain-test",
		Log:             zerolog.Nop(),
	})

	ctx := context.Background()
	require.NoError(t, repos.Suppliers.Upsert(ctx, &entity.Supplier{ID: 1, Name: "Lácteos del Valle"}))
	require.NoError(t, repos.Agreements.Upsert(ctx, &entity.SupplierAgreement{ID: 10, SupplierID: 1, DeliveryDays: []time.Weekday{time.Monday}}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{CatalogNumber: 1004, Name: "Leche entera 1L", MinimumQuantityForAlert: 6}))
	require.NoError(t, repos.Offers.Upsert(ctx, &entity.SupplierOffer{CatalogNumber: 1004, ProductID: 7, SupplierID: 1, AgreementID: 10, Price: decimal.NewFromInt(50)}))
	return &testServer{app: fapp, repos: repos}
}

func tokenForBranch(t *testing.T, role string, branchID int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, branchID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (s *testServer) do(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics_ExponePrometheus(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/metrics", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProducts_CrearYConsultar(t *testing.T) {
	s := newTestServer(t)
	admin := tokenForRole(t, pkgjwt.RoleAdmin)

	resp := s.do(t, http.MethodPost, "/api/products", admin, dto.CreateProductRequest{
		CatalogNumber: 2001, Name: "Arroz 1kg", DemandLevel: 14, SupplyTimeDays: 6,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 10, created.MinimumQuantityForAlert)

	resp = s.do(t, http.MethodPost, "/api/products", admin, dto.CreateProductRequest{CatalogNumber: 2001, Name: "Arroz 1kg"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/products/2001", tokenForRole(t, pkgjwt.RoleBodeguero), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Arroz 1kg", decode[dto.ProductResponse](t, resp).Name)

	resp = s.do(t, http.MethodGet, "/api/products/9999", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProducts_CrearRequiereAdmin(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/products", tokenForRole(t, pkgjwt.RoleComprador), dto.CreateProductRequest{CatalogNumber: 1, Name: "x"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBranches_SucursalAjenaRetorna403(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/branches/1/shortages", tokenForBranch(t, pkgjwt.RoleBodeguero, 3), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/branches/3/shortages", tokenForBranch(t, pkgjwt.RoleBodeguero, 3), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	shortages := decode[dto.ShortageResponse](t, resp)
	require.Len(t, shortages.Items, 1)
	assert.Equal(t, 6, shortages.Items[0].Quantity)

	resp = s.do(t, http.MethodGet, "/api/branches/1/stock", tokenForBranch(t, pkgjwt.RoleAdmin, 3), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin ve todas las sucursales")
}

func TestBestPrice_ValidaCantidad(t *testing.T) {
	s := newTestServer(t)
	buyer := tokenForRole(t, pkgjwt.RoleComprador)

	resp := s.do(t, http.MethodGet, "/api/products/7/best-price", buyer, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/products/7/best-price?quantity=4", buyer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.BestPriceResponse](t, resp)
	assert.True(t, out.Found)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(200)))

	resp = s.do(t, http.MethodGet, "/api/products/404/best-price?quantity=4", buyer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[dto.BestPriceResponse](t, resp).Found)
}

func TestDiscounts_ValidacionYAlta(t *testing.T) {
	s := newTestServer(t)
	buyer := tokenForRole(t, pkgjwt.RoleComprador)
	rule := dto.UpsertDiscountRequest{
		Scope: "SUPPLIER", OwnerID: 1, AgreementID: 10, ProductID: 7, MinQuantity: 4, Percentage: decimal.NewFromInt(150),
	}

	resp := s.do(t, http.MethodPut, "/api/discounts", buyer, rule)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	rule.Percentage = decimal.NewFromInt(10)
	resp = s.do(t, http.MethodPut, "/api/discounts", buyer, rule)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/offers/7/discounts?supplier_id=1&agreement_id=10", buyer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.DiscountResponse](t, resp), 1)

	resp = s.do(t, http.MethodGet, "/api/products/7/best-price?quantity=4", buyer, nil)
	assert.True(t, decode[dto.BestPriceResponse](t, resp).Total.Equal(decimal.NewFromInt(180)))
}

func TestReplenishment_CorridaDeFaltantesUnaVezPorDia(t *testing.T) {
	s := newTestServer(t)
	buyer := tokenForRole(t, pkgjwt.RoleComprador)

	resp := s.do(t, http.MethodPost, "/api/replenishment/3/shortage", buyer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[dto.RunReportResponse](t, resp)
	assert.Equal(t, "completed", first.Status)
	assert.Equal(t, 1, first.Processed)

	resp = s.do(t, http.MethodPost, "/api/replenishment/3/shortage", buyer, nil)
	assert.Equal(t, "already-processed", decode[dto.RunReportResponse](t, resp).Status)

	orders, err := s.repos.Shortages.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)

	warehouse := tokenForRole(t, pkgjwt.RoleBodeguero)
	resp = s.do(t, http.MethodPatch, "/api/orders/shortage/"+orders[0].ID+"/status", warehouse, dto.UpdateOrderStatusRequest{Status: "DELIVERED"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.do(t, http.MethodPatch, "/api/orders/shortage/"+orders[0].ID+"/status", warehouse, dto.UpdateOrderStatusRequest{Status: "IN_TRANSIT"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "IN_TRANSIT", decode[dto.OrderStatusResponse](t, resp).Status)
}

func TestAgreements_CrearYConsultar(t *testing.T) {
	s := newTestServer(t)
	buyer := tokenForRole(t, pkgjwt.RoleComprador)

	resp := s.do(t, http.MethodPut, "/api/agreements", buyer, dto.UpsertAgreementRequest{ID: 11, SupplierID: 1, DeliveryDays: []int{2, 4}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/agreements/11", buyer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []int{2, 4}, decode[dto.AgreementResponse](t, resp).DeliveryDays)

	resp = s.do(t, http.MethodPut, "/api/agreements", buyer, dto.UpsertAgreementRequest{ID: 12, SupplierID: 99})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/agreements/77", buyer, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPurchaseOrders_CrearYDescargarPDF(t *testing.T) {
	s := newTestServer(t)
	buyer := tokenForBranch(t, pkgjwt.RoleComprador, 3)

	resp := s.do(t, http.MethodPost, "/api/purchase-orders", buyer, dto.CreatePurchaseOrderRequest{
		SupplierID: 1, Lines: []dto.PurchaseOrderLineRequest{{ProductID: 7, Quantity: 4}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decode[dto.PurchaseOrderResponse](t, resp)
	assert.Equal(t, 3, order.BranchID, "toma la sucursal del token")

	resp = s.do(t, http.MethodGet, "/api/purchase-orders/"+order.ID+"/pdf", buyer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = s.do(t, http.MethodGet, "/api/purchase-orders/nope/pdf", buyer, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBranches_OperacionesSobreSucursalAjenaRetornan403(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	buyerOne := tokenForBranch(t, pkgjwt.RoleComprador, 1)
	warehouseOne := tokenForBranch(t, pkgjwt.RoleBodeguero, 1)

	resp := s.do(t, http.MethodPost, "/api/replenishment/2/shortage", buyerOne, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = s.do(t, http.MethodPost, "/api/replenishment/2/periodic", buyerOne, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = s.do(t, http.MethodGet, "/api/branches/2/store-discount?catalog=1004&quantity=1", buyerOne, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	orders, err := s.repos.Shortages.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders, "la corrida rechazada no emite órdenes")

	require.NoError(t, s.repos.Shortages.Create(ctx, &entity.ShortageOrder{ID: "s-2", CatalogNumber: 1004, BranchID: 2, Quantity: 6, Status: entity.OrderStatusPending}))
	require.NoError(t, s.repos.OnTheWay.Create(ctx, &entity.OrderOnTheWay{ID: "w-2", CatalogNumber: 1004, BranchID: 2, Quantity: 6, Status: entity.OrderStatusPending}))
	transit := dto.UpdateOrderStatusRequest{Status: "IN_TRANSIT"}

	resp = s.do(t, http.MethodPatch, "/api/orders/shortage/s-2/status", warehouseOne, transit)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = s.do(t, http.MethodPatch, "/api/orders/on-the-way/w-2/status", warehouseOne, transit)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	stored, err := s.repos.Shortages.GetByID(ctx, "s-2")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, stored.Status)

	resp = s.do(t, http.MethodPost, "/api/purchase-orders", tokenForBranch(t, pkgjwt.RoleComprador, 2), dto.CreatePurchaseOrderRequest{
		SupplierID: 1, Lines: []dto.PurchaseOrderLineRequest{{ProductID: 7, Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decode[dto.PurchaseOrderResponse](t, resp)
	resp = s.do(t, http.MethodGet, "/api/purchase-orders/"+order.ID+"/pdf", buyerOne, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, http.MethodPatch, "/api/orders/shortage/s-2/status", tokenForBranch(t, pkgjwt.RoleBodeguero, 2), transit)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = s.do(t, http.MethodPost, "/api/replenishment/2/periodic", tokenForBranch(t, pkgjwt.RoleAdmin, 1), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin opera en todas las sucursales")
}
