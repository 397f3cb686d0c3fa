package models

import "time"

// Translation holds the localized texts of a food item for a single language.
type Translation struct {
	Name        string `firestore:"name" json:"name"`
	Description string `firestore:"description" json:"description"`
	Ingredients string `firestore:"ingredients" json:"ingredients"`
}

// FoodItem is a document in the "food" collection.
//
// Availability is stored twice on purpose: "foodAvailable" is the canonical
// field, "available" is kept in sync for clients that still read it. The
// retired "isAvailable" field may still exist on old documents and is removed
// by the reconciler on first read (see repositories.ResolveAvailability).
type FoodItem struct {
	ID              string                 `firestore:"-" json:"id"`
	Translations    map[string]Translation `firestore:"translations" json:"translations"`
	Price           float64                `firestore:"price" json:"price"`
	DiscountedPrice *float64               `firestore:"discountedPrice,omitempty" json:"discounted_price,omitempty"`
	DiscountPercent *float64               `firestore:"discountPercentage,omitempty" json:"discount_percent,omitempty"`
	DiscountEndDate *time.Time             `firestore:"discountEndDate,omitempty" json:"discount_end_date,omitempty"`
	DiscountMessage string                 `firestore:"discountMessage,omitempty" json:"discount_message,omitempty"`
	CategoryID      string                 `firestore:"categoryId" json:"category_id"`
	ImageURL        string                 `firestore:"imageUrl" json:"image_url"`
	Available       bool                   `firestore:"foodAvailable" json:"available"`
	CreatedAt       time.Time              `firestore:"createdAt" json:"created_at"`
	UpdatedAt       time.Time              `firestore:"updatedAt" json:"updated_at"`
}

// Name returns the translation for lang, falling back to any available one.
func (f *FoodItem) Name(lang string) string {
	if t, ok := f.Translations[lang]; ok && t.Name != "" {
		return t.Name
	}
	for _, t := range f.Translations {
		if t.Name != "" {
			return t.Name
		}
	}
	return ""
}
