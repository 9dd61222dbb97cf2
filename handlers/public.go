package handlers

import (
	"net/http"

	"smartfood-api/apierror"
	"smartfood-api/models"
	"smartfood-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns all restaurants (public)
func (h *Handler) ListRestaurants(c *gin.Context) {
	query := h.DB.Model(&models.Restaurant{})

	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine LIKE ?", "%"+cuisine+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	var restaurants []models.Restaurant
	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant with its menu
func (h *Handler) GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.Preload("MenuItems").First(&restaurant, c.Param("id")).Error; err != nil {
		apierror.Respond(c, apierror.NotFound("restaurant not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMenu returns the menu for a specific restaurant (public)
func (h *Handler) GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, restaurantID).Error; err != nil {
		apierror.Respond(c, apierror.NotFound("restaurant not found"))
		return
	}

	query := h.DB.Where("restaurant_id = ?", restaurantID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if isVeg := c.Query("is_veg"); isVeg == "true" {
		query = query.Where("is_veg = ?", true)
	}
	if available := c.Query("available"); available == "true" {
		query = query.Where("is_available = ?", true)
	}

	var items []models.MenuItem
	query.Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}

// GetStateMachineInfo returns the order status workflow for documentation
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	sequence := make([]string, 0, statemachine.Steps())
	for _, s := range statemachine.ForwardSequence {
		sequence = append(sequence, string(s))
	}
	c.JSON(http.StatusOK, gin.H{
		"sequence":    sequence,
		"terminal":    []string{string(models.StatusDelivered), string(models.StatusCancelled)},
		"transitions": statemachine.Describe(),
	})
}
