package models

import "time"

// AppSettings is the singleton document in the "appSettings" collection
// (doc id "main").
type AppSettings struct {
	DeliveryFee   float64   `firestore:"deliveryFee" json:"delivery_fee"`
	MinOrderTotal float64   `firestore:"minOrderTotal" json:"min_order_total"`
	OpenHours     string    `firestore:"openHours" json:"open_hours"`
	Maintenance   bool      `firestore:"maintenance" json:"maintenance"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updated_at"`
}
