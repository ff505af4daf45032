package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRejectsBadInput(t *testing.T) {
	ta := newTestApp(t)

	resp, _ := ta.do(t, "GET", "/api/v1/search?q=%3Cscript%3E", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = ta.do(t, "GET", "/api/v1/search?q=batik&category=..%2Fetc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := ta.do(t, "GET", "/api/v1/search?q=batik", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["count"])
}

func TestCatalogEndpoints(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.do(t, "GET", "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["categories"], 4)
	first := body["categories"].([]any)[0].(map[string]any)
	assert.Equal(t, "Anyaman Rotan", first["name"])
	assert.EqualValues(t, 1, first["products"])

	resp, body = ta.do(t, "GET", "/api/v1/categories/tenun/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"], 2)
	assert.Equal(t, "Tenun & Songket", body["category"].(map[string]any)["name"])
	assert.Equal(t, false, body["hasMore"])

	resp, _ = ta.do(t, "GET", "/api/v1/categories/lukisan/products", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = ta.do(t, "GET", "/api/v1/products/batik-tulis-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Rp 750.000", body["priceText"])

	resp, _ = ta.do(t, "GET", "/api/v1/products/missing-item", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = ta.do(t, "GET", "/api/v1/products/bad%20id", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartRejectsBadBodies(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.do(t, "POST", "/api/v1/cart/items", map[string]any{"quantity": 1})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "is required", body["fields"].(map[string]any)["productId"])

	resp, body = ta.do(t, "POST", "/api/v1/cart/items", map[string]any{"productId": "batik-tulis-01", "quantity": 99})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "must be at most 50", body["fields"].(map[string]any)["quantity"])

	resp, body = ta.do(t, "POST", "/api/v1/cart/items", map[string]any{"productId": "../../etc"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "is not a valid id", body["fields"].(map[string]any)["productId"])

	resp, body = ta.do(t, "POST", "/api/v1/cart/promo", map[string]any{"code": "DROP TABLE"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["fields"], "code")

	resp, _ = ta.do(t, "PATCH", "/api/v1/cart/items/batik-tulis-01", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	req := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader([]byte(`{"productId":`)))
	req.Header.Set("Content-Type", "application/json")
	raw, err := ta.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, raw.StatusCode)
}

func TestAddressValidationMessages(t *testing.T) {
	ta := newTestApp(t)
	sid := ta.login(t, "sekar@kriya.test")

	resp, body := ta.do(t, "POST", "/api/v1/addresses", map[string]any{
		"recipient": "S", "phone": "0211234", "street": "Jl", "city": "", "postalCode": "5527",
	}, sid)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "Postal code must be 5 digits", fields["postalCode"])
	assert.Equal(t, "Please enter a valid Indonesian phone number", fields["phone"])
	assert.Contains(t, fields, "recipient")
	assert.Contains(t, fields, "street")
	assert.Contains(t, fields, "city")
}
