package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kriya/internal/config"
)

func TestPasswordsSeededAreHashed(t *testing.T) {
	ta := newTestApp(t)
	var hashes []string
	require.NoError(t, ta.db.Select(&hashes, `SELECT password_hash FROM users`))
	require.NotEmpty(t, hashes, "no users seeded")
	for _, h := range hashes {
		assert.NotContains(t, h, "Passw0rd1")
		assert.True(t, strings.HasPrefix(h, "$2"), "unexpected hash format: %s", h)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("Passw0rd1")))
	}
}

func TestLoginSuccessFailAndThrottle(t *testing.T) {
	ta := newTestApp(t, func(c *config.Config) { c.LoginRateLimit = 2 })

	resp, body := ta.do(t, "POST", "/api/v1/auth/login", map[string]string{"email": "sekar@kriya.test", "password": "WrongPass9"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", body["error"])

	resp, body = ta.do(t, "POST", "/api/v1/auth/login", map[string]string{"email": "sekar@kriya.test", "password": "Passw0rd1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-sekar", body["id"])
	assert.NotContains(t, body, "hash", "password hash must not be serialized")
	sid := cookie(resp, "sid")
	require.NotNil(t, sid)
	assert.True(t, sid.HttpOnly)

	resp, _ = ta.do(t, "POST", "/api/v1/auth/login", map[string]string{"email": "sekar@kriya.test", "password": "Passw0rd1"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRegisterReportsEveryInvalidField(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.do(t, "POST", "/api/v1/auth/register", map[string]any{
		"name": "A", "email": "nope", "phone": "12", "password": "short",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "Name must be between 2 and 50 characters", fields["name"])
	assert.Equal(t, "Please enter a valid email address", fields["email"])
	assert.Equal(t, "Please enter a valid Indonesian phone number", fields["phone"])
	assert.Contains(t, fields, "password")
	assert.Equal(t, "You must accept the terms and conditions", fields["terms"])

	reg := map[string]any{
		"name": "Dewi Lestari", "email": "dewi@kriya.test", "phone": "+6281298765432",
		"password": "Tenun2024", "acceptTerms": true,
	}
	resp, body = ta.do(t, "POST", "/api/v1/auth/register", reg)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "dewi@kriya.test", body["email"])
	sid := cookie(resp, "sid")

	resp, body = ta.do(t, "GET", "/api/v1/me", nil, sid)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Dewi Lestari", body["name"])

	resp, _ = ta.do(t, "POST", "/api/v1/auth/register", reg)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogoutEndsSession(t *testing.T) {
	ta := newTestApp(t)
	sid := ta.login(t, "bima@kriya.test")

	resp, _ := ta.do(t, "GET", "/api/v1/me", nil, sid)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ta.do(t, "POST", "/api/v1/auth/logout", nil, sid)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = ta.do(t, "GET", "/api/v1/me", nil, sid)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
