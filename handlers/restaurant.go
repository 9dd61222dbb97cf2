package handlers

import (
	"net/http"

	"smartfood-api/apierror"
	"smartfood-api/middleware"
	"smartfood-api/models"

	"github.com/gin-gonic/gin"
)

// ── Restaurant Management ────────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Cuisine     string `json:"cuisine"`
	Address     string `json:"address" binding:"required"`
	Description string `json:"description"`
}

// CreateRestaurant lets a restaurant-role user create their restaurant
func (h *Handler) CreateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, apierror.Validation("%s", err.Error()))
		return
	}

	restaurant := models.Restaurant{
		OwnerID:     ownerID,
		Name:        req.Name,
		Cuisine:     req.Cuisine,
		Address:     req.Address,
		Description: req.Description,
		IsOpen:      true,
	}
	if err := h.DB.Create(&restaurant).Error; err != nil {
		apierror.Respond(c, apierror.Internal("failed to create restaurant"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "restaurant": restaurant})
}

// myRestaurant loads the restaurant owned by the logged-in user.
func (h *Handler) myRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := h.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		apierror.Respond(c, apierror.NotFound("no restaurant found for your account"))
		return nil, false
	}
	return &restaurant, true
}

// GetMyRestaurant fetches the restaurant owned by the logged-in user
func (h *Handler) GetMyRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := h.DB.Preload("MenuItems").Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		apierror.Respond(c, apierror.NotFound("no restaurant found for your account"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// UpdateRestaurant updates restaurant details
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, apierror.Validation("%s", err.Error()))
		return
	}
	// Only allow safe fields
	allowed := map[string]bool{"name": true, "cuisine": true, "address": true, "description": true, "is_open": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if err := h.DB.Model(restaurant).Updates(update).Error; err != nil {
		apierror.Respond(c, apierror.Internal("failed to update restaurant"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "restaurant": restaurant})
}

// ── Menu Management ─────────────────────────────────────────────────────────

type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category"`
	IsVeg       bool    `json:"is_veg"`
}

// AddMenuItem adds a new item to the restaurant's menu
func (h *Handler) AddMenuItem(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, apierror.Validation("%s", err.Error()))
		return
	}

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		IsVeg:        req.IsVeg,
		IsAvailable:  true,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		apierror.Respond(c, apierror.Internal("failed to add menu item"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
}

// ownedMenuItem loads a menu item and checks ownership.
func (h *Handler) ownedMenuItem(c *gin.Context) (*models.MenuItem, bool) {
	ownerID := middleware.GetUserID(c)

	var item models.MenuItem
	if err := h.DB.First(&item, c.Param("itemId")).Error; err != nil {
		apierror.Respond(c, apierror.NotFound("menu item not found"))
		return nil, false
	}
	var restaurant models.Restaurant
	if err := h.DB.Where("id = ? AND owner_id = ?", item.RestaurantID, ownerID).First(&restaurant).Error; err != nil {
		apierror.Respond(c, apierror.Forbidden("you don't own this menu item"))
		return nil, false
	}
	return &item, true
}

// UpdateMenuItem updates a menu item (only by the owner)
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	item, ok := h.ownedMenuItem(c)
	if !ok {
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, apierror.Validation("%s", err.Error()))
		return
	}
	allowed := map[string]bool{
		"name": true, "description": true, "price": true,
		"category": true, "is_available": true, "is_veg": true,
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if price, ok := update["price"].(float64); ok && price <= 0 {
		apierror.Respond(c, apierror.Validation("price must be greater than zero"))
		return
	}
	if err := h.DB.Model(item).Updates(update).Error; err != nil {
		apierror.Respond(c, apierror.Internal("failed to update menu item"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
}

// DeleteMenuItem removes a menu item
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	item, ok := h.ownedMenuItem(c)
	if !ok {
		return
	}
	if err := h.DB.Delete(item).Error; err != nil {
		apierror.Respond(c, apierror.Internal("failed to delete menu item"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ── Order Management ────────────────────────────────────────────────────────

// GetRestaurantOrders returns all orders for the restaurant owner
func (h *Handler) GetRestaurantOrders(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}

	query := h.DB.Preload("Items").Preload("Customer").Preload("Driver").
		Where("restaurant_id = ?", restaurant.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	query.Order("created_at desc").Find(&orders)

	// Dashboard summary: counts grouped by status
	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus handles the restaurant's state transitions
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	restaurant, ok := h.myRestaurant(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, apierror.Validation("%s", err.Error()))
		return
	}

	order, err := h.transitionOrder(
		c.Param("id"),
		req.Status,
		"restaurant",
		middleware.GetUserID(c),
		req.Note,
		func(o *models.Order) error {
			if o.RestaurantID != restaurant.ID {
				return apierror.Forbidden("this order does not belong to your restaurant")
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
		"order":    order,
	})
}
