package models

import "time"

// FCMToken is a document in the "fcmTokens" collection, keyed by the token
// itself so that rotation is an upsert.
type FCMToken struct {
	Token     string    `firestore:"token" json:"token"`
	UID       string    `firestore:"uid" json:"uid"`
	Platform  string    `firestore:"platform" json:"platform"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updated_at"`
}
