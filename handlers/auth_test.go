package handlers_test

import (
	"net/http"
	"testing"

	"smartfood-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginProfile(t *testing.T) {
	e := newEnv(t)

	w := e.do(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Alice",
		"email":    "alice@test.local",
		"password": "s3cret99",
		"role":     "customer",
		"phone":    "555-0101",
		"address":  "1 Main St",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	// Duplicate email is rejected.
	w = e.do(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Alice Again",
		"email":    "alice@test.local",
		"password": "s3cret99",
		"role":     "customer",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Wrong password.
	w = e.do(http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "alice@test.local",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", errKind(t, w))

	// Correct login.
	w = e.do(http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "alice@test.local",
		"password": "s3cret99",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ = decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	// Profile round trip.
	w = e.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "Alice", user["name"])

	w = e.do(http.MethodPut, "/api/profile", token, map[string]interface{}{
		"phone":   "555-0202",
		"address": "2 New Road",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(http.MethodGet, "/api/profile", token, nil)
	user = decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "555-0202", user["phone"])
	assert.Equal(t, "2 New Road", user["address"])
	assert.Equal(t, "alice@test.local", user["email"])
}

func TestAuthGuards(t *testing.T) {
	e := newEnv(t)
	_, customerToken := e.user(models.RoleCustomer)

	// No token at all.
	w := e.do(http.MethodGet, "/api/customer/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", errKind(t, w))

	// Garbage token.
	w = e.do(http.MethodGet, "/api/customer/orders", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong role for admin surface.
	w = e.do(http.MethodGet, "/api/admin/orders", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", errKind(t, w))
}

func TestRegister_InvalidRole(t *testing.T) {
	e := newEnv(t)
	w := e.do(http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Eve",
		"email":    "eve@test.local",
		"password": "s3cret99",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", errKind(t, w))
}
