package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/internal/server"
	"github.com/vendralabs/vendra/pkg/testkit"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	kernel, err := server.NewKernel(store.NewMemoryStore())
	require.NoError(t, err)
	return kernel.Handler()
}

// doJSON fires one request and decodes the envelope.
func doJSON(t *testing.T, h http.Handler, method, url, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), "body: %s", rec.Body.String())
	return rec.Code, envelope
}

func registerToken(t *testing.T, h http.Handler) string {
	t.Helper()
	code, env := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "manager",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, code)
	token, _ := env["data"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func data(env map[string]interface{}) map[string]interface{} {
	d, _ := env["data"].(map[string]interface{})
	return d
}

func TestScenarios(t *testing.T) {
	testkit.RunDir(t, newHandler(t), "testdata")
}

func TestAuthFlow(t *testing.T) {
	h := newHandler(t)
	registerToken(t, h)

	code, env := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "manager", "password": "another-pass",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User already exists", env["message"])

	code, env = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "manager", "password": "s3cret-pass",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, data(env)["token"])

	code, env = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "manager", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid credentials", env["message"])
}

func TestInventoryCRUD(t *testing.T) {
	h := newHandler(t)
	token := registerToken(t, h)

	// Create.
	code, env := doJSON(t, h, http.MethodPost, "/api/inventory", token, map[string]interface{}{
		"name": "Widget", "quantity": 10, "price": 4.50,
	})
	require.Equal(t, http.StatusCreated, code)
	created := data(env)
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, "Widget", created["name"])
	assert.Equal(t, float64(10), created["quantity"])
	assert.Equal(t, 4.50, created["price"])

	// Read back.
	code, env = doJSON(t, h, http.MethodGet, "/api/inventory/1", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Widget", data(env)["name"])

	// Update replaces every field.
	code, env = doJSON(t, h, http.MethodPut, "/api/inventory/1", token, map[string]interface{}{
		"name": "Widget Pro", "quantity": 25, "price": 6.00,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Widget Pro", data(env)["name"])
	assert.Equal(t, float64(25), data(env)["quantity"])

	// Delete.
	code, env = doJSON(t, h, http.MethodDelete, "/api/inventory/1", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Product removed", env["message"])

	code, env = doJSON(t, h, http.MethodGet, "/api/inventory/1", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", env["message"])

	// IDs are never reused.
	code, env = doJSON(t, h, http.MethodPost, "/api/inventory", token, map[string]interface{}{
		"name": "Gadget", "quantity": 1, "price": 9.99,
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, float64(2), data(env)["id"])
}

func TestInventoryValidation(t *testing.T) {
	h := newHandler(t)
	token := registerToken(t, h)

	code, env := doJSON(t, h, http.MethodPost, "/api/inventory", token, map[string]interface{}{
		"quantity": -5, "price": 0,
	})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env["message"])

	errs, _ := env["errors"].(map[string]interface{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "quantity")
	assert.Contains(t, errs, "price")
}

func TestSalesFlow(t *testing.T) {
	h := newHandler(t)
	token := registerToken(t, h)

	code, _ := doJSON(t, h, http.MethodPost, "/api/inventory", token, map[string]interface{}{
		"name": "Widget", "quantity": 10, "price": 5.00,
	})
	require.Equal(t, http.StatusCreated, code)

	// Record a sale.
	code, env := doJSON(t, h, http.MethodPost, "/api/sales", token, map[string]interface{}{
		"productId": 1, "quantitySold": 3,
	})
	require.Equal(t, http.StatusCreated, code)
	sale := data(env)
	assert.Equal(t, float64(1), sale["productId"])
	assert.Equal(t, "Widget", sale["productName"])
	assert.Equal(t, float64(3), sale["quantitySold"])
	assert.Equal(t, 15.00, sale["totalAmount"])
	assert.NotEmpty(t, sale["saleDate"])

	// The decrement is visible immediately.
	code, env = doJSON(t, h, http.MethodGet, "/api/inventory/1", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(7), data(env)["quantity"])

	// Oversell is refused without touching stock.
	code, env = doJSON(t, h, http.MethodPost, "/api/sales", token, map[string]interface{}{
		"productId": 1, "quantitySold": 8,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Not enough stock available", env["message"])

	code, env = doJSON(t, h, http.MethodGet, "/api/inventory/1", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(7), data(env)["quantity"])

	// Unknown product.
	code, env = doJSON(t, h, http.MethodPost, "/api/sales", token, map[string]interface{}{
		"productId": 99, "quantitySold": 1,
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Product not found", env["message"])

	// Zero quantity is caught by validation.
	code, env = doJSON(t, h, http.MethodPost, "/api/sales", token, map[string]interface{}{
		"productId": 1, "quantitySold": 0,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env["message"])
}

func TestSalesHistoryAndSummary(t *testing.T) {
	h := newHandler(t)
	token := registerToken(t, h)

	code, _ := doJSON(t, h, http.MethodPost, "/api/inventory", token, map[string]interface{}{
		"name": "Widget", "quantity": 100, "price": 2.50,
	})
	require.Equal(t, http.StatusCreated, code)

	for i := 1; i <= 3; i++ {
		code, _ = doJSON(t, h, http.MethodPost, "/api/sales", token, map[string]interface{}{
			"productId": 1, "quantitySold": i,
		})
		require.Equal(t, http.StatusCreated, code)
	}

	// History, newest first.
	req := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listEnv struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listEnv))
	require.Len(t, listEnv.Data, 3)

	// Summary.
	code, env := doJSON(t, h, http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, code)
	summary := data(env)
	assert.Equal(t, 15.00, summary["totalSales"]) // (1+2+3) * 2.50
	assert.Equal(t, float64(94), summary["totalInventory"])
	assert.Equal(t, float64(1), summary["productCount"])
	recent, _ := summary["recentSales"].([]interface{})
	assert.Len(t, recent, 3)
}

func TestGraphQLEndpoint(t *testing.T) {
	h := newHandler(t)
	token := registerToken(t, h)

	code, _ := doJSON(t, h, http.MethodPost, "/api/inventory", token, map[string]interface{}{
		"name": "Widget", "quantity": 5, "price": 1.00,
	})
	require.Equal(t, http.StatusCreated, code)

	req := httptest.NewRequest(http.MethodPost, "/api/graphql",
		bytes.NewBufferString(`{"query":"{ products { id name } }"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Widget"`)
}
