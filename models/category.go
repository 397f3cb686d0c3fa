package models

import "time"

// Category is a document in the "categories" collection.
type Category struct {
	ID        string            `firestore:"-" json:"id"`
	Names     map[string]string `firestore:"names" json:"names"`
	ImageURL  string            `firestore:"imageUrl" json:"image_url"`
	SortOrder int               `firestore:"sortOrder" json:"sort_order"`
	Active    bool              `firestore:"active" json:"active"`
	CreatedAt time.Time         `firestore:"createdAt" json:"created_at"`
	UpdatedAt time.Time         `firestore:"updatedAt" json:"updated_at"`
}
