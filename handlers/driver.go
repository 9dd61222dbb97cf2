package handlers

import (
	"net/http"

	"smartfood-api/apierror"
	"smartfood-api/middleware"
	"smartfood-api/models"

	"github.com/gin-gonic/gin"
)

// GetAvailableOrders shows orders ready for pickup that have no driver yet
func (h *Handler) GetAvailableOrders(c *gin.Context) {
	var orders []models.Order
	h.DB.Preload("Restaurant").
		Where("status = ? AND driver_id IS NULL", models.StatusReady).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{
		"count":  len(orders),
		"orders": orders,
	})
}

// GetMyDeliveries returns all orders assigned to the logged-in driver
func (h *Handler) GetMyDeliveries(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	var orders []models.Order
	h.DB.Preload("Items").Preload("Restaurant").
		Where("driver_id = ?", driverID).
		Order("updated_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// PickupOrder assigns the order to the driver and transitions ready → picked_up.
// The guard runs under the row lock, so two drivers cannot claim the same order.
func (h *Handler) PickupOrder(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	order, err := h.transitionOrder(
		c.Param("id"),
		models.StatusPickedUp,
		"driver",
		driverID,
		"Driver picked up the order",
		func(o *models.Order) error {
			if o.DriverID != nil {
				return apierror.Conflict("order has already been picked up by another driver")
			}
			return nil
		},
		map[string]interface{}{"driver_id": driverID},
	)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// DeliverOrder transitions picked_up → delivered
func (h *Handler) DeliverOrder(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	order, err := h.transitionOrder(
		c.Param("id"),
		models.StatusDelivered,
		"driver",
		driverID,
		"Order delivered to customer",
		func(o *models.Order) error {
			if o.DriverID == nil || *o.DriverID != driverID {
				return apierror.Forbidden("you are not the assigned driver for this order")
			}
			return nil
		},
		nil,
	)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": order.ID,
		"status":   order.Status,
	})
}
