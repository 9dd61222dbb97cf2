package models

import "time"

// OrderStatus represents all possible states of a food delivery order
type OrderStatus string

const (
	StatusPendingPayment OrderStatus = "pending_payment"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusPickedUp       OrderStatus = "picked_up"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// PaymentMethod is how the customer chose to pay
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCOD  PaymentMethod = "cod"
)

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentCOD:
		return true
	}
	return false
}

type Order struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	OrderNumber  string     `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID   uint       `json:"customer_id" gorm:"not null"`
	Customer     User       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID uint       `json:"restaurant_id" gorm:"not null"`
	Restaurant   Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	DriverID     *uint      `json:"driver_id"`
	Driver       *User      `json:"driver,omitempty" gorm:"foreignKey:DriverID"`

	Status OrderStatus `json:"status" gorm:"not null;default:'pending_payment'"`

	// Money fields are snapshots computed at order time.
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`

	DeliveryAddress     string        `json:"delivery_address" gorm:"not null"`
	PaymentMethod       PaymentMethod `json:"payment_method" gorm:"not null"`
	Paid                bool          `json:"paid" gorm:"default:false"`
	PaidAt              *time.Time    `json:"paid_at,omitempty"`
	SpecialInstructions string        `json:"special_instructions"`
	EstimatedDelivery   *time.Time    `json:"estimated_delivery,omitempty"`

	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// Terminal reports whether the order can no longer change status.
func (o *Order) Terminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	UnitPrice  float64  `json:"unit_price" gorm:"not null"` // snapshot price at time of order
	Name       string   `json:"name"`                       // snapshot name
	Subtotal   float64  `json:"subtotal"`                   // unit_price * quantity

	// Customizations is an opaque JSON payload passed through from the client.
	Customizations      string `json:"customizations,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// OrderStatusHistory tracks every status change for the tracking timeline
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Payment records a captured payment against an order. With the sandbox stub
// there is exactly one row per successful capture.
type Payment struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	OrderID   uint          `json:"order_id" gorm:"not null"`
	Method    PaymentMethod `json:"method" gorm:"not null"`
	Reference string        `json:"reference"` // masked card number / UPI id
	Amount    float64       `json:"amount"`
	Status    string        `json:"status" gorm:"default:'captured'"`
	CreatedAt time.Time     `json:"created_at"`
}
