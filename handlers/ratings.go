package handlers

import (
	"errors"
	"net/http"

	"smartfood-api/apierror"
	"smartfood-api/middleware"
	"smartfood-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmitRatingRequest struct {
	OrderID           uint   `json:"order_id" binding:"required"`
	RestaurantRating  int    `json:"restaurant_rating" binding:"required,min=1,max=5"`
	DeliveryRating    int    `json:"delivery_rating" binding:"required,min=1,max=5"`
	FoodQualityRating int    `json:"food_quality_rating" binding:"required,min=1,max=5"`
	Comments          string `json:"comments"`
	WouldRecommend    *bool  `json:"would_recommend" binding:"required"`
}

// SubmitRating records the customer's feedback for one of their orders.
// Resubmitting replaces the previous rating for the same order, then the
// restaurant's derived rating is recomputed.
func (h *Handler) SubmitRating(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierror.Respond(c, apierror.Validation("%s", err.Error()))
		return
	}

	var rating models.Rating
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("order %d not found", req.OrderID)
			}
			return apierror.Internal("failed to load order: %v", err)
		}
		if order.CustomerID != userID {
			return apierror.Forbidden("this order does not belong to you")
		}

		// Upsert on (order_id, user_id).
		err := tx.Where("order_id = ? AND user_id = ?", req.OrderID, userID).First(&rating).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.Internal("failed to load existing rating: %v", err)
		}

		rating.OrderID = order.ID
		rating.UserID = userID
		rating.RestaurantID = order.RestaurantID
		rating.RestaurantRating = req.RestaurantRating
		rating.DeliveryRating = req.DeliveryRating
		rating.FoodQualityRating = req.FoodQualityRating
		rating.Comments = req.Comments
		rating.WouldRecommend = *req.WouldRecommend

		if err := tx.Save(&rating).Error; err != nil {
			return apierror.Internal("failed to save rating: %v", err)
		}
		return updateRestaurantRating(tx, order.RestaurantID)
	})
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"rating_id": rating.ID,
		"rating":    rating,
	})
}

// updateRestaurantRating recomputes the restaurant's derived average from
// all submitted restaurant scores, rounded to one decimal place.
func updateRestaurantRating(tx *gorm.DB, restaurantID uint) error {
	var stats struct {
		Avg   float64
		Count int
	}
	err := tx.Model(&models.Rating{}).
		Select("COALESCE(AVG(restaurant_rating), 0) AS avg, COUNT(*) AS count").
		Where("restaurant_id = ?", restaurantID).
		Scan(&stats).Error
	if err != nil {
		return apierror.Internal("failed to compute restaurant rating: %v", err)
	}

	rounded := float64(int(stats.Avg*10+0.5)) / 10
	err = tx.Model(&models.Restaurant{}).Where("id = ?", restaurantID).
		Updates(map[string]interface{}{"rating": rounded, "total_ratings": stats.Count}).Error
	if err != nil {
		return apierror.Internal("failed to update restaurant rating: %v", err)
	}
	return nil
}

// GetMyRatingForOrder returns the caller's rating for one order, if any
func (h *Handler) GetMyRatingForOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var rating models.Rating
	err := h.DB.Where("order_id = ? AND user_id = ?", c.Param("id"), userID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierror.Respond(c, apierror.NotFound("no rating submitted for this order"))
			return
		}
		apierror.Respond(c, apierror.Internal("failed to load rating"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": rating})
}

// GetRestaurantRatings lists all ratings for a restaurant (public)
func (h *Handler) GetRestaurantRatings(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		apierror.Respond(c, apierror.NotFound("restaurant not found"))
		return
	}

	var ratings []models.Rating
	h.DB.Where("restaurant_id = ?", restaurant.ID).
		Order("created_at desc").
		Find(&ratings)

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"rating":        restaurant.Rating,
		"total_ratings": restaurant.TotalRatings,
		"ratings":       ratings,
	})
}
