package models

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// KnownOrderStatus reports whether s is one of the recognized statuses.
// Transitions between statuses are free-form: an admin may set any status
// from any other.
func KnownOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderItem is a price snapshot of a cart line at checkout time.
type OrderItem struct {
	FoodID     string  `firestore:"foodId" json:"food_id"`
	Name       string  `firestore:"name" json:"name"`
	CategoryID string  `firestore:"categoryId" json:"category_id"`
	Price      float64 `firestore:"price" json:"price"`
	Quantity   int     `firestore:"quantity" json:"quantity"`
	Notes      string  `firestore:"notes,omitempty" json:"notes,omitempty"`
}

// Order is a document in the "orders" collection. Orders are never deleted,
// only referenced historically.
type Order struct {
	ID            string             `firestore:"-" json:"id"`
	UserID        string             `firestore:"userId" json:"user_id"`
	Items         []OrderItem        `firestore:"items" json:"items"`
	Subtotal      float64            `firestore:"subtotal" json:"subtotal"`
	Discounts     map[string]float64 `firestore:"discounts,omitempty" json:"discounts,omitempty"`
	DiscountTotal float64            `firestore:"discountTotal" json:"discount_total"`
	DeliveryFee   float64            `firestore:"deliveryFee" json:"delivery_fee"`
	Total         float64            `firestore:"total" json:"total"`
	Status        OrderStatus        `firestore:"status" json:"status"`
	Address       string             `firestore:"address" json:"address"`
	Notes         string             `firestore:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `firestore:"createdAt" json:"created_at"`
	UpdatedAt     time.Time          `firestore:"updatedAt" json:"updated_at"`
}
