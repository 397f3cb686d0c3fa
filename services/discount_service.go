package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/repositories"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

// ErrBlankCouponCode rejects coupon validation before any remote call.
var ErrBlankCouponCode = errors.New("coupon code must not be blank")

// DiscountSource supplies discount records to the evaluator.
type DiscountSource interface {
	ActiveForCategory(ctx context.Context, categoryID string) ([]models.Discount, error)
	CouponByCode(ctx context.Context, code string) (*models.Discount, error)
}

// AppliedDiscount is the evaluator's pick for one category.
type AppliedDiscount struct {
	Discount models.Discount
	Amount   decimal.Decimal
}

// DiscountService computes cart discounts and validates coupons.
type DiscountService struct {
	source DiscountSource
	now    func() time.Time
}

func NewDiscountService(source DiscountSource) *DiscountService {
	return &DiscountService{source: source, now: time.Now}
}

// CartDiscounts maps each cart category to its best applicable discount and
// the resulting deduction. At most one discount applies per category;
// categories with no applicable discount are absent from the result.
//
// A failed per-category lookup contributes no discount and never fails the
// whole calculation; only cancellation propagates.
func (s *DiscountService) CartDiscounts(ctx context.Context, items []models.CartItem) (map[string]AppliedDiscount, error) {
	groups := groupByCategory(items)
	result := make(map[string]AppliedDiscount, len(groups))

	for categoryID, group := range groups {
		discounts, err := s.source.ActiveForCategory(ctx, categoryID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			utils.ErrorLogger.Printf("discount lookup failed for category %s: %v", categoryID, err)
			continue
		}

		if applied, ok := bestDiscount(discounts, group); ok {
			result[categoryID] = applied
		}
	}

	return result, nil
}

// groupByCategory buckets cart items by category. Items with a blank
// categoryId are skipped entirely.
func groupByCategory(items []models.CartItem) map[string][]models.CartItem {
	groups := make(map[string][]models.CartItem)
	for _, item := range items {
		if item.Food.CategoryID == "" {
			continue
		}
		groups[item.Food.CategoryID] = append(groups[item.Food.CategoryID], item)
	}
	return groups
}

// bestDiscount selects the applicable discount with the highest percentOff
// (ties broken by lowest discount ID) and computes the deduction. A discount
// with specificFoodIds counts only matching items toward both the quantity
// gate and the discounted total. Coupons are skipped even if the source
// hands them back: they only ever apply through code entry.
func bestDiscount(discounts []models.Discount, group []models.CartItem) (AppliedDiscount, bool) {
	repositories.SortDiscountCandidates(discounts)

	for _, d := range discounts {
		if d.IsCoupon() {
			continue
		}
		qty, total := eligibleScope(&d, group)
		if qty == 0 || qty < d.MinQuantity {
			continue
		}
		amount := total.Mul(decimal.NewFromFloat(d.PercentOff)).Div(decimal.NewFromInt(100))
		if amount.IsZero() {
			continue
		}
		return AppliedDiscount{Discount: d, Amount: amount}, true
	}
	return AppliedDiscount{}, false
}

// eligibleScope sums quantity and price*quantity over the items a discount
// actually covers.
func eligibleScope(d *models.Discount, group []models.CartItem) (int, decimal.Decimal) {
	qty := 0
	total := decimal.Zero
	for _, item := range group {
		if !d.AppliesToFood(item.Food.ID) {
			continue
		}
		qty += item.Quantity
		line := decimal.NewFromFloat(item.Food.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return qty, total
}

// ValidateCoupon looks up a coupon by exact code among active discounts.
//
// A blank code is a validation error. A missing, inactive or expired coupon
// is a successful empty result: callers cannot tell an expired coupon from
// one that never existed. Only unexpected storage errors fail the lookup.
func (s *DiscountService) ValidateCoupon(ctx context.Context, code string) (*models.Discount, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrBlankCouponCode
	}

	d, err := s.source.CouponByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.CurrentlyValid(s.now()) {
		return nil, nil
	}
	return d, nil
}

// CouponAmount computes the deduction a coupon yields for a cart. A coupon
// bound to a category covers only that category's items; a blank categoryId
// covers the whole cart. The zero result means the coupon does not reach its
// minimum quantity within scope.
func CouponAmount(coupon *models.Discount, items []models.CartItem) decimal.Decimal {
	scope := items
	if coupon.CategoryID != "" {
		scope = nil
		for _, item := range items {
			if item.Food.CategoryID == coupon.CategoryID {
				scope = append(scope, item)
			}
		}
	}

	qty, total := eligibleScope(coupon, scope)
	if qty == 0 || qty < coupon.MinQuantity {
		return decimal.Zero
	}
	return total.Mul(decimal.NewFromFloat(coupon.PercentOff)).Div(decimal.NewFromInt(100))
}
