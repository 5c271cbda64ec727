//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/config"
	"github.com/leaox77/Inventory-System-Backend/internal/infra"
	"github.com/leaox77/Inventory-System-Backend/internal/model"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"
	"github.com/leaox77/Inventory-System-Backend/internal/router"
	"github.com/leaox77/Inventory-System-Backend/internal/service"
	"github.com/leaox77/Inventory-System-Backend/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("inventory_test"),
		tcPostgres.WithUsername("inventory"),
		tcPostgres.WithPassword("inventory"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "clave-de-prueba",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL, cfg.Env)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed superuser
	hash, err := bcrypt.GenerateFromPassword([]byte("admin2026"), bcrypt.MinCost)
	require.NoError(t, err)
	userRepo := repository.NewUserRepository(db)
	require.NoError(t, userRepo.Create(ctx, &model.User{
		Username:     "admin",
		PasswordHash: string(hash),
		FullName:     "Admin E2E",
		Active:       true,
		Superuser:    true,
	}))

	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	purchaseRepo := repository.NewPurchaseOrderRepository(db)
	clientRepo := repository.NewClientRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	unitTypeRepo := repository.NewUnitTypeRepository(db)
	paymentRepo := repository.NewPaymentMethodRepository(db)

	dispatcher := worker.NewDispatcher(rdb)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, 8*time.Hour, 24*time.Hour)

	r := router.New(router.Deps{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		Auth:      authSvc,
		Products:  service.NewProductService(productRepo, inventoryRepo, rdb),
		Inventory: service.NewInventoryService(inventoryRepo, productRepo, branchRepo),
		Sales:     service.NewSaleService(saleRepo, inventoryRepo, productRepo, clientRepo, branchRepo, paymentRepo, dispatcher),
		Purchases: service.NewPurchaseService(purchaseRepo, inventoryRepo, productRepo, supplierRepo, branchRepo),
		Clients:   service.NewClientService(clientRepo),
		Suppliers: service.NewSupplierService(supplierRepo),
		Catalog:   service.NewCatalogService(categoryRepo, unitTypeRepo, paymentRepo, branchRepo),
		Reports:   service.NewReportService(saleRepo, inventoryRepo),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "admin2026"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &login)
	require.NotEmpty(t, login.AccessToken)

	return &testEnv{server: srv, token: login.AccessToken}
}

type created struct {
	ID string `json:"id"`
}

func (env *testEnv) mustCreate(t *testing.T, path string, body map[string]any) string {
	t.Helper()
	resp := do(t, env.server, "POST", path, jsonBody(t, body), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "POST %s", path)
	var out created
	decodeJSON(t, resp, &out)
	require.NotEmpty(t, out.ID)
	return out.ID
}

func TestE2E_FullSaleCycle(t *testing.T) {
	env := setupTestEnv(t)

	branchID := env.mustCreate(t, "/v1/branches", map[string]any{
		"code": 12, "name": "Central", "address": "Av. Siempre Viva 123",
	})
	paymentID := env.mustCreate(t, "/v1/payment-methods", map[string]any{"name": "Efectivo"})
	productID := env.mustCreate(t, "/v1/products", map[string]any{
		"barcode": "7791234567890", "name": "Arroz 1kg", "price": "25.50",
	})

	// Stock in 10 units
	adjResp := do(t, env.server, "POST", "/v1/inventory/adjust", jsonBody(t, map[string]any{
		"product_id": productID, "branch_id": branchID,
		"delta": "10.000", "reason": "recuento inicial",
	}), env.token)
	require.Equal(t, http.StatusOK, adjResp.StatusCode)
	adjResp.Body.Close()

	// Sell 4
	saleResp := do(t, env.server, "POST", "/v1/sales", jsonBody(t, map[string]any{
		"branch_id":         branchID,
		"payment_method_id": paymentID,
		"items": []map[string]any{{
			"product_id": productID, "quantity": "4.000", "unit_price": "25.50",
		}},
	}), env.token)
	require.Equal(t, http.StatusCreated, saleResp.StatusCode)
	var sale struct {
		ID            string          `json:"id"`
		InvoiceNumber string          `json:"invoice_number"`
		Total         decimal.Decimal `json:"total"`
		Status        string          `json:"status"`
	}
	decodeJSON(t, saleResp, &sale)
	assert.Equal(t, "completed", sale.Status)
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("102.00")), "total = %s", sale.Total)
	assert.Regexp(t, `^012-\d{4}-\d{12}$`, sale.InvoiceNumber)

	// Remaining stock is 6
	invResp := do(t, env.server, "GET",
		fmt.Sprintf("/v1/inventory/%s/%s", productID, branchID), nil, env.token)
	require.Equal(t, http.StatusOK, invResp.StatusCode)
	var rec struct {
		Quantity decimal.Decimal `json:"quantity"`
	}
	decodeJSON(t, invResp, &rec)
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(6)), "quantity = %s", rec.Quantity)

	// Overselling is rejected with 409 and leaves stock untouched
	overResp := do(t, env.server, "POST", "/v1/sales", jsonBody(t, map[string]any{
		"branch_id":         branchID,
		"payment_method_id": paymentID,
		"items": []map[string]any{{
			"product_id": productID, "quantity": "7.000", "unit_price": "25.50",
		}},
	}), env.token)
	assert.Equal(t, http.StatusConflict, overResp.StatusCode)
	overResp.Body.Close()
}

func TestE2E_PurchaseOrderApprovalIncrementsStock(t *testing.T) {
	env := setupTestEnv(t)

	branchID := env.mustCreate(t, "/v1/branches", map[string]any{
		"code": 7, "name": "Norte", "address": "Calle 2",
	})
	supplierID := env.mustCreate(t, "/v1/suppliers", map[string]any{"name": "Distribuidora Sur"})
	productID := env.mustCreate(t, "/v1/products", map[string]any{
		"barcode": "7798888888888", "name": "Azucar 1kg", "price": "9.50",
	})

	orderID := env.mustCreate(t, "/v1/purchase-orders", map[string]any{
		"supplier_id": supplierID,
		"branch_id":   branchID,
		"items": []map[string]any{{
			"product_id": productID, "quantity": "20.000", "unit_cost": "6.00",
		}},
	})

	// Approve: ledger row appears with the full quantity
	stResp := do(t, env.server, "PATCH", "/v1/purchase-orders/"+orderID+"/status",
		jsonBody(t, map[string]any{"status": "APPROVED"}), env.token)
	require.Equal(t, http.StatusOK, stResp.StatusCode)
	var order struct {
		Status string `json:"status"`
	}
	decodeJSON(t, stResp, &order)
	assert.Equal(t, "APPROVED", order.Status)

	invResp := do(t, env.server, "GET",
		fmt.Sprintf("/v1/inventory/%s/%s", productID, branchID), nil, env.token)
	require.Equal(t, http.StatusOK, invResp.StatusCode)
	var rec struct {
		Quantity decimal.Decimal `json:"quantity"`
	}
	decodeJSON(t, invResp, &rec)
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(20)), "quantity = %s", rec.Quantity)

	// Approval is one-shot: repeating it is rejected and never re-increments
	again := do(t, env.server, "PATCH", "/v1/purchase-orders/"+orderID+"/status",
		jsonBody(t, map[string]any{"status": "APPROVED"}), env.token)
	require.Equal(t, http.StatusConflict, again.StatusCode)
	again.Body.Close()

	invResp2 := do(t, env.server, "GET",
		fmt.Sprintf("/v1/inventory/%s/%s", productID, branchID), nil, env.token)
	decodeJSON(t, invResp2, &rec)
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(20)), "quantity = %s", rec.Quantity)
}

func TestE2E_PriceCheckIsPublic(t *testing.T) {
	env := setupTestEnv(t)

	env.mustCreate(t, "/v1/products", map[string]any{
		"barcode": "7791111111111", "name": "Leche 1lt", "price": "7.50",
	})

	resp := do(t, env.server, "GET", "/v1/price-check/7791111111111", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pc struct {
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	}
	decodeJSON(t, resp, &pc)
	assert.Equal(t, "Leche 1lt", pc.Name)
	assert.True(t, pc.Price.Equal(decimal.RequireFromString("7.50")), "price = %s", pc.Price)
}
