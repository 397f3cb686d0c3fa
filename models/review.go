package models

import "time"

// Review is a document in the "reviews" collection.
type Review struct {
	ID        string    `firestore:"-" json:"id"`
	FoodID    string    `firestore:"foodId" json:"food_id"`
	UserID    string    `firestore:"userId" json:"user_id"`
	Rating    int       `firestore:"rating" json:"rating"`
	Comment   string    `firestore:"comment" json:"comment"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
}
