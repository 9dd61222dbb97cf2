package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"smartfood-api/apierror"
	"smartfood-api/middleware"
	"smartfood-api/models"
	"smartfood-api/pricing"
	"smartfood-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	RestaurantID        uint                 `json:"restaurant_id" binding:"required"`
	DeliveryAddress     string               `json:"delivery_address" binding:"required"`
	PaymentMethod       models.PaymentMethod `json:"payment_method" binding:"required,oneof=card upi cod"`
	SpecialInstructions string               `json:"special_instructions"`
	Items               []PlaceOrderItem     `json:"items" binding:"required,min=1,dive"`
}

type PlaceOrderItem struct {
	MenuItemID          uint                   `json:"menu_item_id" binding:"required"`
	Quantity            int                    `json:"quantity" binding:"required,min=1"`
	Customizations      map[string]interface{} `json:"customizations"`
	SpecialInstructions string                 `json:"special_instructions"`
}

// newOrderNumber builds a human-friendly unique order reference.
func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// PlaceOrder creates a new order for the logged-in customer. Everything runs
// in one transaction: validation, price snapshotting, totals and the initial
// status history row.
func (h *Handler) PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, apierror.Validation("%s", err.Error()))
		return
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		apierror.Respond(c, apierror.Validation("delivery address must not be blank"))
		return
	}

	var order models.Order
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, req.RestaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("restaurant %d not found", req.RestaurantID)
			}
			return apierror.Internal("failed to load restaurant: %v", err)
		}
		if !restaurant.IsOpen {
			return apierror.Validation("restaurant %q is currently closed", restaurant.Name)
		}

		var orderItems []models.OrderItem
		var lines []pricing.Line
		for _, reqItem := range req.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apierror.NotFound("menu item %d not found", reqItem.MenuItemID)
				}
				return apierror.Internal("failed to load menu item: %v", err)
			}
			if menuItem.RestaurantID != req.RestaurantID {
				return apierror.Validation("menu item %q does not belong to this restaurant", menuItem.Name)
			}
			if !menuItem.IsAvailable {
				return apierror.Validation("menu item %q is not available", menuItem.Name)
			}

			customizations := ""
			if len(reqItem.Customizations) > 0 {
				raw, err := json.Marshal(reqItem.Customizations)
				if err != nil {
					return apierror.Validation("invalid customizations for item %q", menuItem.Name)
				}
				customizations = string(raw)
			}

			lines = append(lines, pricing.Line{UnitPrice: menuItem.Price, Quantity: reqItem.Quantity})
			orderItems = append(orderItems, models.OrderItem{
				MenuItemID:          menuItem.ID,
				Quantity:            reqItem.Quantity,
				UnitPrice:           menuItem.Price,
				Name:                menuItem.Name,
				Subtotal:            pricing.LineSubtotal(menuItem.Price, reqItem.Quantity),
				Customizations:      customizations,
				SpecialInstructions: reqItem.SpecialInstructions,
			})
		}

		quote := pricing.Compute(lines, h.Cfg.DeliveryFee, h.Cfg.TaxRate)

		// Card and UPI orders wait for capture; cash needs no capture step.
		status := models.StatusPendingPayment
		if req.PaymentMethod == models.PaymentCOD {
			status = models.StatusConfirmed
		}

		eta := time.Now().Add(time.Duration(30+5*len(req.Items)) * time.Minute)

		order = models.Order{
			OrderNumber:         newOrderNumber(),
			CustomerID:          customerID,
			RestaurantID:        req.RestaurantID,
			Status:              status,
			Subtotal:            quote.Subtotal,
			DeliveryFee:         quote.DeliveryFee,
			Tax:                 quote.Tax,
			Total:               quote.Total,
			DeliveryAddress:     req.DeliveryAddress,
			PaymentMethod:       req.PaymentMethod,
			SpecialInstructions: req.SpecialInstructions,
			EstimatedDelivery:   &eta,
			Items:               orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return apierror.Internal("failed to place order: %v", err)
		}

		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  status,
			ChangedBy: customerID,
			Note:      "Order placed by customer",
		}
		if err := tx.Create(&history).Error; err != nil {
			return apierror.Internal("failed to record status history: %v", err)
		}
		return nil
	})
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	h.DB.Preload("Items").Preload("Restaurant").First(&order, order.ID)

	var customer models.User
	if h.DB.First(&customer, customerID).Error == nil {
		h.Notifier.OrderConfirmation(customer.Email, &order)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"order":        order,
	})
}

// GetMyOrders returns all orders for the logged-in customer
func (h *Handler) GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	query := h.DB.Preload("Items").Preload("Restaurant").
		Where("customer_id = ?", customerID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []models.Order
	query.Order("created_at desc").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with history
func (h *Handler) GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	order, err := h.findOrder(c.Param("id"), "Items", "Restaurant", "StatusHistory", "Driver")
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	if order.CustomerID != customerID {
		apierror.Respond(c, apierror.Forbidden("this order does not belong to you"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetTracking returns the polling view of an order: current status, position
// in the delivery sequence, ETA, and driver details once the driver has the
// food. Pure read: calling it twice without a transition in between returns
// identical output.
func (h *Handler) GetTracking(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	order, err := h.findOrder(c.Param("id"), "Driver")
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	if order.CustomerID != customerID {
		apierror.Respond(c, apierror.Forbidden("this order does not belong to you"))
		return
	}

	tracking := gin.H{
		"order_id":    order.ID,
		"status":      order.Status,
		"total_steps": statemachine.Steps(),
	}
	if step, ok := statemachine.Position(order.Status); ok {
		tracking["step"] = step
	}
	if order.EstimatedDelivery != nil {
		tracking["estimated_time"] = order.EstimatedDelivery.Format(time.RFC3339)
	}
	// Driver details only once the order is out of the restaurant.
	if (order.Status == models.StatusPickedUp || order.Status == models.StatusDelivered) && order.Driver != nil {
		tracking["driver_name"] = order.Driver.Name
		tracking["driver_phone"] = order.Driver.Phone
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tracking": tracking})
}

// CancelOrder cancels the customer's own order from any non-terminal state
func (h *Handler) CancelOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	order, err := h.transitionOrder(
		c.Param("id"),
		models.StatusCancelled,
		"customer",
		customerID,
		"Order cancelled by customer",
		func(o *models.Order) error {
			if o.CustomerID != customerID {
				return apierror.Forbidden("this order does not belong to you")
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
