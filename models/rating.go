package models

import "time"

// Rating is the customer's post-delivery feedback for an order. One rating
// per (order, user) pair; resubmission overwrites the previous one.
type Rating struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	OrderID      uint `json:"order_id" gorm:"not null;uniqueIndex:idx_rating_order_user"`
	UserID       uint `json:"user_id" gorm:"not null;uniqueIndex:idx_rating_order_user"`
	RestaurantID uint `json:"restaurant_id" gorm:"not null"`

	RestaurantRating  int `json:"restaurant_rating" gorm:"not null"`
	DeliveryRating    int `json:"delivery_rating" gorm:"not null"`
	FoodQualityRating int `json:"food_quality_rating" gorm:"not null"`

	Comments       string    `json:"comments"`
	WouldRecommend bool      `json:"would_recommend"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
