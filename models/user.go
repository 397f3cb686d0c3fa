package models

import "time"

// User is a document in the "users" collection, keyed by the auth provider's
// UID. Password material never lives here; it belongs to the auth provider.
type User struct {
	UID       string    `firestore:"-" json:"uid"`
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Phone     string    `firestore:"phone" json:"phone"`
	Address   string    `firestore:"address" json:"address"`
	Role      string    `firestore:"role" json:"role"`
	Language  string    `firestore:"language" json:"language"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updated_at"`
}
