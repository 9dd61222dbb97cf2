package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartfood-api/config"
	"smartfood-api/handlers"
	"smartfood-api/middleware"
	"smartfood-api/models"
	"smartfood-api/notify"
	"smartfood-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// env wires a full router against an in-memory database.
type env struct {
	t      *testing.T
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
	seq    int
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so every query sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	cfg := &config.Config{
		JWTSecret:       []byte("test-secret"),
		TokenTTL:        time.Hour,
		DeliveryFee:     2.99,
		TaxRate:         0.08,
		SandboxPayments: true,
	}

	h := handlers.New(db, cfg, notify.New(cfg))
	router := gin.New()
	routes.SetupRoutes(router, h, cfg)

	return &env{t: t, db: db, cfg: cfg, router: router}
}

// user creates an account directly and returns it with a valid token.
func (e *env) user(role models.UserRole) (*models.User, string) {
	e.t.Helper()
	e.seq++
	u := &models.User{
		Name:         fmt.Sprintf("%s %d", role, e.seq),
		Email:        fmt.Sprintf("%s%d@test.local", role, e.seq),
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Phone:        "555-0100",
	}
	require.NoError(e.t, e.db.Create(u).Error)
	token, err := middleware.GenerateToken(e.cfg, u)
	require.NoError(e.t, err)
	return u, token
}

func (e *env) restaurant(owner *models.User) *models.Restaurant {
	e.t.Helper()
	r := &models.Restaurant{
		OwnerID: owner.ID,
		Name:    "Testaurant",
		Cuisine: "italian",
		Address: "1 Test Street",
		IsOpen:  true,
	}
	require.NoError(e.t, e.db.Create(r).Error)
	return r
}

func (e *env) menuItem(r *models.Restaurant, name string, price float64, available bool) *models.MenuItem {
	e.t.Helper()
	item := &models.MenuItem{
		RestaurantID: r.ID,
		Name:         name,
		Price:        price,
		Category:     "mains",
		IsAvailable:  available,
	}
	require.NoError(e.t, e.db.Create(item).Error)
	return item
}

// do performs an authenticated JSON request against the router.
func (e *env) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals the response body into a generic map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// errKind pulls the machine-readable kind out of an error envelope.
func errKind(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error envelope, got: %s", w.Body.String())
	kind, _ := errObj["kind"].(string)
	return kind
}

// placeOrder creates an order through the API and returns its id.
func (e *env) placeOrder(token string, restaurantID uint, method string, items ...map[string]interface{}) uint {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/customer/orders", token, map[string]interface{}{
		"restaurant_id":    restaurantID,
		"delivery_address": "42 Hungry Lane",
		"payment_method":   method,
		"items":            items,
	})
	require.Equal(e.t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	body := decode(e.t, w)
	return uint(body["order_id"].(float64))
}

// line is a convenience builder for order request items.
func line(menuItemID uint, qty int) map[string]interface{} {
	return map[string]interface{}{"menu_item_id": menuItemID, "quantity": qty}
}
