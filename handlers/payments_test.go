package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"smartfood-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturePayment_ArbitraryCardAlwaysSucceeds(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(models.RoleCustomer)
	owner, _ := e.user(models.RoleRestaurant)
	r := e.restaurant(owner)
	pizza := e.menuItem(r, "Margherita", 5.00, true)

	orderID := e.placeOrder(token, r.ID, "card", line(pizza.ID, 1))

	w := e.do(http.MethodPost, fmt.Sprintf("/api/customer/orders/%d/payment", orderID),
		token, map[string]interface{}{"card_number": "4111111111111111"})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "confirmed", body["status"])
	assert.Equal(t, "card ****1111", body["reference"])

	var order models.Order
	require.NoError(t, e.db.First(&order, orderID).Error)
	assert.Equal(t, models.StatusConfirmed, order.Status)
	assert.True(t, order.Paid)
	require.NotNil(t, order.PaidAt)

	var payment models.Payment
	require.NoError(t, e.db.Where("order_id = ?", orderID).First(&payment).Error)
	assert.Equal(t, "captured", payment.Status)
	assert.Equal(t, order.Total, payment.Amount)
}

func TestCapturePayment_UPIWithAnyID(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(models.RoleCustomer)
	owner, _ := e.user(models.RoleRestaurant)
	r := e.restaurant(owner)
	pizza := e.menuItem(r, "Margherita", 5.00, true)

	orderID := e.placeOrder(token, r.ID, "upi", line(pizza.ID, 1))

	w := e.do(http.MethodPost, fmt.Sprintf("/api/customer/orders/%d/payment", orderID),
		token, map[string]interface{}{"upi_id": "whoever@bank"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "upi whoever@bank", decode(t, w)["reference"])
}

func TestCapturePayment_CashWithEmptyBody(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(models.RoleCustomer)
	owner, _ := e.user(models.RoleRestaurant)
	r := e.restaurant(owner)
	pizza := e.menuItem(r, "Margherita", 5.00, true)

	// Cash orders start confirmed; capture just records the payment.
	orderID := e.placeOrder(token, r.ID, "cod", line(pizza.ID, 1))

	w := e.do(http.MethodPost, fmt.Sprintf("/api/customer/orders/%d/payment", orderID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var order models.Order
	require.NoError(t, e.db.First(&order, orderID).Error)
	assert.Equal(t, models.StatusConfirmed, order.Status)
	assert.True(t, order.Paid)
}

func TestCapturePayment_Failures(t *testing.T) {
	e := newEnv(t)
	_, token := e.user(models.RoleCustomer)
	_, otherToken := e.user(models.RoleCustomer)
	owner, _ := e.user(models.RoleRestaurant)
	r := e.restaurant(owner)
	pizza := e.menuItem(r, "Margherita", 5.00, true)

	orderID := e.placeOrder(token, r.ID, "card", line(pizza.ID, 1))

	// Unknown order.
	w := e.do(http.MethodPost, "/api/customer/orders/99999/payment", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", errKind(t, w))

	// Someone else's order.
	w = e.do(http.MethodPost, fmt.Sprintf("/api/customer/orders/%d/payment", orderID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", errKind(t, w))

	// Terminal order.
	cw := e.do(http.MethodPut, fmt.Sprintf("/api/customer/orders/%d/cancel", orderID), token, nil)
	require.Equal(t, http.StatusOK, cw.Code)
	w = e.do(http.MethodPost, fmt.Sprintf("/api/customer/orders/%d/payment", orderID), token,
		map[string]interface{}{"card_number": "4111111111111111"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "terminal_state", errKind(t, w))
}
