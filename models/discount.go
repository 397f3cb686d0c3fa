package models

import "time"

// Discount is a document in the "discounts" collection.
//
// A discount with a non-empty CouponCode is a coupon: it is redeemed by code
// entry and never listed or applied automatically. A blank CategoryID means
// the discount is not bound to a category and is reachable only through the
// coupon path.
type Discount struct {
	ID                 string     `firestore:"-" json:"id"`
	Name               string     `firestore:"name" json:"name"`
	Description        string     `firestore:"description" json:"description"`
	CategoryID         string     `firestore:"categoryId" json:"category_id"`
	PercentOff         float64    `firestore:"percentOff" json:"percent_off"`
	MinQuantity        int        `firestore:"minQuantity" json:"min_quantity"`
	Active             bool       `firestore:"active" json:"active"`
	StartDate          *time.Time `firestore:"startDate,omitempty" json:"start_date,omitempty"`
	EndDate            *time.Time `firestore:"endDate,omitempty" json:"end_date,omitempty"`
	SpecificFoodIDs    []string   `firestore:"specificFoodIds,omitempty" json:"specific_food_ids,omitempty"`
	CouponCode         string     `firestore:"couponCode,omitempty" json:"coupon_code,omitempty"`
	IsCustomerSpecific bool       `firestore:"isCustomerSpecific" json:"is_customer_specific"`
	UsageCount         int64      `firestore:"usageCount" json:"usage_count"`
	CreatedAt          time.Time  `firestore:"createdAt" json:"created_at"`
	UpdatedAt          time.Time  `firestore:"updatedAt" json:"updated_at"`
}

// IsCoupon reports whether the discount is redeemed by code entry.
func (d *Discount) IsCoupon() bool {
	return d.CouponCode != ""
}

// CurrentlyValid reports whether the discount is active and now falls inside
// its validity window. Unset bounds are open.
func (d *Discount) CurrentlyValid(now time.Time) bool {
	if !d.Active {
		return false
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}

// AppliesToFood reports whether foodID is in scope for this discount. An
// empty SpecificFoodIDs list means the whole category is in scope.
func (d *Discount) AppliesToFood(foodID string) bool {
	if len(d.SpecificFoodIDs) == 0 {
		return true
	}
	for _, id := range d.SpecificFoodIDs {
		if id == foodID {
			return true
		}
	}
	return false
}
