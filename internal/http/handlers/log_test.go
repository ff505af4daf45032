package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEventsAreLogged(t *testing.T) {
	ta := newTestApp(t)

	entries := captureLogs(t, func() {
		ta.do(t, "POST", "/api/v1/auth/login", map[string]string{"email": "not-an-email", "password": "Passw0rd1"})
		ta.do(t, "POST", "/api/v1/auth/login", map[string]string{"email": "sekar@kriya.test", "password": "WrongPass9"})
		ta.login(t, "sekar@kriya.test")
	})

	var reasons []any
	for _, e := range entries {
		if e.Action == "auth.login.fail" {
			assert.Equal(t, "warn", e.Level)
			reasons = append(reasons, e.Fields["reason"])
		}
	}
	assert.Equal(t, []any{"bad_format", "bad_credentials"}, reasons)

	ok := findLog(entries, "auth.login.success")
	require.NotNil(t, ok)
	assert.Equal(t, "audit", ok.Level)
	assert.Equal(t, "u-sekar", ok.UserID)
	for _, e := range entries {
		assert.NotContains(t, e.Fields, "password", "passwords never reach the log")
	}
}

func TestAccessDenialsAreLogged(t *testing.T) {
	ta := newTestApp(t)
	orderID, _ := placeOrder(t, ta)
	user := ta.login(t, "sekar@kriya.test")

	entries := captureLogs(t, func() {
		ta.do(t, "GET", "/admin/orders", nil, user)
		ta.do(t, "GET", "/api/v1/orders/"+orderID, nil, user)
	})

	admin := findLog(entries, "access.denied.admin")
	require.NotNil(t, admin)
	assert.Equal(t, "u-sekar", admin.UserID)

	order := findLog(entries, "access.denied.order")
	require.NotNil(t, order)
	assert.Equal(t, orderID, order.Fields["order_id"])
}

func TestOrderAndAdminActionsAreAudited(t *testing.T) {
	ta := newTestApp(t)

	var orderID string
	entries := captureLogs(t, func() {
		orderID, _ = placeOrder(t, ta)
	})
	placed := findLog(entries, "order.place")
	require.NotNil(t, placed)
	assert.Equal(t, orderID, placed.Fields["order_id"])
	assert.EqualValues(t, 170000, placed.Fields["total"])
	assert.Equal(t, false, placed.Fields["repriced"])

	admin := ta.login(t, "admin@kriya.test")
	entries = captureLogs(t, func() {
		resp, _ := ta.do(t, "POST", "/admin/orders/"+orderID+"/status", map[string]any{"status": "SHIPPED"}, admin)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
	upd := findLog(entries, "admin.orders.update")
	require.NotNil(t, upd)
	assert.Equal(t, "u-admin", upd.UserID)
	assert.Equal(t, "SHIPPED", upd.Fields["status"])
}

func TestValidationFailuresAreLogged(t *testing.T) {
	ta := newTestApp(t)
	entries := captureLogs(t, func() {
		ta.do(t, "POST", "/api/v1/cart/items", map[string]any{"productId": "../../etc"})
	})
	e := findLog(entries, "validation.fail")
	require.NotNil(t, e)
	assert.Contains(t, e.Fields["fields"], "productId")
}
