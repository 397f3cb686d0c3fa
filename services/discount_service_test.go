package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// fakeDiscountSource serves canned discounts per category and coupons by code.
type fakeDiscountSource struct {
	byCategory map[string][]models.Discount
	failFor    map[string]error
	coupons    map[string]*models.Discount
	couponErr  error
	calls      []string
}

func (f *fakeDiscountSource) ActiveForCategory(ctx context.Context, categoryID string) ([]models.Discount, error) {
	f.calls = append(f.calls, categoryID)
	if err, ok := f.failFor[categoryID]; ok {
		return nil, err
	}
	return f.byCategory[categoryID], nil
}

func (f *fakeDiscountSource) CouponByCode(ctx context.Context, code string) (*models.Discount, error) {
	if f.couponErr != nil {
		return nil, f.couponErr
	}
	return f.coupons[code], nil
}

func item(foodID, categoryID string, price float64, qty int) models.CartItem {
	return models.CartItem{
		Food:     models.FoodItem{ID: foodID, CategoryID: categoryID, Price: price},
		Quantity: qty,
	}
}

func TestCartDiscountsPerCategory(t *testing.T) {
	source := &fakeDiscountSource{
		byCategory: map[string][]models.Discount{
			"pizza": {
				{ID: "d1", CategoryID: "pizza", PercentOff: 10, MinQuantity: 3, Active: true},
			},
			"drinks": {
				{ID: "d2", CategoryID: "drinks", PercentOff: 10, MinQuantity: 3, Active: true},
			},
		},
	}
	svc := NewDiscountService(source)

	// 5 pizzas at 10 each meet the gate; a single drink does not.
	cart := []models.CartItem{
		item("p1", "pizza", 10, 5),
		item("dr1", "drinks", 4, 1),
	}

	applied, err := svc.CartDiscounts(context.Background(), cart)
	require.NoError(t, err)

	require.Contains(t, applied, "pizza")
	assert.NotContains(t, applied, "drinks")
	assert.Equal(t, "d1", applied["pizza"].Discount.ID)
	assert.True(t, decimal.NewFromInt(5).Equal(applied["pizza"].Amount),
		"10%% of 50 should be 5, got %s", applied["pizza"].Amount)
}

func TestCartDiscountsPicksHighestPercent(t *testing.T) {
	source := &fakeDiscountSource{
		byCategory: map[string][]models.Discount{
			"pizza": {
				{ID: "d-low", CategoryID: "pizza", PercentOff: 10, Active: true},
				{ID: "d-high", CategoryID: "pizza", PercentOff: 20, Active: true},
			},
		},
	}
	svc := NewDiscountService(source)

	applied, err := svc.CartDiscounts(context.Background(), []models.CartItem{item("p1", "pizza", 10, 2)})
	require.NoError(t, err)
	require.Contains(t, applied, "pizza")
	assert.Equal(t, "d-high", applied["pizza"].Discount.ID)
	assert.True(t, decimal.NewFromInt(4).Equal(applied["pizza"].Amount))
}

func TestCartDiscountsTieBrokenByID(t *testing.T) {
	source := &fakeDiscountSource{
		byCategory: map[string][]models.Discount{
			"pizza": {
				{ID: "zz", CategoryID: "pizza", PercentOff: 15, Active: true},
				{ID: "aa", CategoryID: "pizza", PercentOff: 15, Active: true},
			},
		},
	}
	svc := NewDiscountService(source)

	applied, err := svc.CartDiscounts(context.Background(), []models.CartItem{item("p1", "pizza", 10, 1)})
	require.NoError(t, err)
	assert.Equal(t, "aa", applied["pizza"].Discount.ID)
}

func TestCartDiscountsSpecificFoodScope(t *testing.T) {
	source := &fakeDiscountSource{
		byCategory: map[string][]models.Discount{
			"pizza": {
				{ID: "d1", CategoryID: "pizza", PercentOff: 10, MinQuantity: 2, Active: true,
					SpecificFoodIDs: []string{"a", "b"}},
			},
		},
	}
	svc := NewDiscountService(source)

	// Only a and b count toward the gate and the discounted total; d is in
	// the same category but out of scope.
	cart := []models.CartItem{
		item("a", "pizza", 10, 1),
		item("b", "pizza", 20, 1),
		item("d", "pizza", 100, 5),
	}

	applied, err := svc.CartDiscounts(context.Background(), cart)
	require.NoError(t, err)
	require.Contains(t, applied, "pizza")
	assert.True(t, decimal.NewFromInt(3).Equal(applied["pizza"].Amount),
		"10%% of 30 (a+b only), got %s", applied["pizza"].Amount)
}

func TestCartDiscountsSpecificScopeBelowGate(t *testing.T) {
	source := &fakeDiscountSource{
		byCategory: map[string][]models.Discount{
			"pizza": {
				{ID: "d1", CategoryID: "pizza", PercentOff: 10, MinQuantity: 3, Active: true,
					SpecificFoodIDs: []string{"a"}},
			},
		},
	}
	svc := NewDiscountService(source)

	// 5 items in the category, but only 2 in scope: the gate fails.
	cart := []models.CartItem{
		item("a", "pizza", 10, 2),
		item("d", "pizza", 10, 3),
	}

	applied, err := svc.CartDiscounts(context.Background(), cart)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestCartDiscountsSkipsBlankCategory(t *testing.T) {
	source := &fakeDiscountSource{}
	svc := NewDiscountService(source)

	applied, err := svc.CartDiscounts(context.Background(), []models.CartItem{item("x", "", 10, 1)})
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.Empty(t, source.calls, "blank categoryId must not trigger a lookup")
}

func TestCartDiscountsLookupFailureSkipsCategory(t *testing.T) {
	source := &fakeDiscountSource{
		byCategory: map[string][]models.Discount{
			"pizza": {{ID: "d1", CategoryID: "pizza", PercentOff: 10, Active: true}},
		},
		failFor: map[string]error{"drinks": errors.New("index rebuild in progress")},
	}
	svc := NewDiscountService(source)

	cart := []models.CartItem{
		item("p1", "pizza", 10, 1),
		item("dr1", "drinks", 4, 2),
	}

	applied, err := svc.CartDiscounts(context.Background(), cart)
	require.NoError(t, err, "a single category failure must not fail the evaluation")
	assert.Contains(t, applied, "pizza")
	assert.NotContains(t, applied, "drinks")
}

func TestCartDiscountsCancellationPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &fakeDiscountSource{
		failFor: map[string]error{"pizza": context.Canceled},
	}
	svc := NewDiscountService(source)

	_, err := svc.CartDiscounts(ctx, []models.CartItem{item("p1", "pizza", 10, 1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCartDiscountsNeverAppliesCoupons(t *testing.T) {
	source := &fakeDiscountSource{
		byCategory: map[string][]models.Discount{
			"pizza": {
				{ID: "c1", CategoryID: "pizza", CouponCode: "SECRET20", PercentOff: 20, Active: true},
				{ID: "d1", CategoryID: "pizza", PercentOff: 10, Active: true},
			},
		},
	}
	svc := NewDiscountService(source)

	applied, err := svc.CartDiscounts(context.Background(), []models.CartItem{item("p1", "pizza", 10, 2)})
	require.NoError(t, err)
	require.Contains(t, applied, "pizza")
	assert.Equal(t, "d1", applied["pizza"].Discount.ID,
		"a coupon only applies through code entry, never automatically")
	assert.True(t, decimal.NewFromInt(2).Equal(applied["pizza"].Amount))
}

func TestCartDiscountsCouponOnlyCategoryGetsNothing(t *testing.T) {
	source := &fakeDiscountSource{
		byCategory: map[string][]models.Discount{
			"pizza": {
				{ID: "c1", CategoryID: "pizza", CouponCode: "SECRET20", PercentOff: 20, Active: true},
			},
		},
	}
	svc := NewDiscountService(source)

	applied, err := svc.CartDiscounts(context.Background(), []models.CartItem{item("p1", "pizza", 10, 2)})
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestCartDiscountsZeroAmountSkipped(t *testing.T) {
	source := &fakeDiscountSource{
		byCategory: map[string][]models.Discount{
			"pizza": {{ID: "d1", CategoryID: "pizza", PercentOff: 10, Active: true}},
		},
	}
	svc := NewDiscountService(source)

	applied, err := svc.CartDiscounts(context.Background(), []models.CartItem{item("free", "pizza", 0, 2)})
	require.NoError(t, err)
	assert.Empty(t, applied, "a zero deduction is not a discount")
}

func TestValidateCoupon(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	longPast := now.Add(-2 * time.Hour)

	source := &fakeDiscountSource{
		coupons: map[string]*models.Discount{
			"WELCOME10": {ID: "c1", CouponCode: "WELCOME10", PercentOff: 10, Active: true},
			"EXPIRED":   {ID: "c2", CouponCode: "EXPIRED", PercentOff: 10, Active: true, StartDate: &longPast, EndDate: &past},
		},
	}
	svc := NewDiscountService(source)

	t.Run("blank code is a validation error", func(t *testing.T) {
		_, err := svc.ValidateCoupon(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrBlankCouponCode)
	})

	t.Run("valid coupon is returned", func(t *testing.T) {
		d, err := svc.ValidateCoupon(context.Background(), "WELCOME10")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "c1", d.ID)
	})

	t.Run("code is trimmed before lookup", func(t *testing.T) {
		d, err := svc.ValidateCoupon(context.Background(), "  WELCOME10  ")
		require.NoError(t, err)
		assert.NotNil(t, d)
	})

	t.Run("missing coupon yields empty result", func(t *testing.T) {
		d, err := svc.ValidateCoupon(context.Background(), "NOPE")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("expired coupon is indistinguishable from missing", func(t *testing.T) {
		d, err := svc.ValidateCoupon(context.Background(), "EXPIRED")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("storage errors propagate", func(t *testing.T) {
		boom := errors.New("backend unavailable")
		failing := NewDiscountService(&fakeDiscountSource{couponErr: boom})
		_, err := failing.ValidateCoupon(context.Background(), "WELCOME10")
		assert.ErrorIs(t, err, boom)
	})
}

func TestCouponAmount(t *testing.T) {
	cart := []models.CartItem{
		item("p1", "pizza", 10, 2),
		item("dr1", "drinks", 5, 2),
	}

	t.Run("whole cart when no category bound", func(t *testing.T) {
		coupon := &models.Discount{ID: "c1", CouponCode: "ALL10", PercentOff: 10, Active: true}
		amount := CouponAmount(coupon, cart)
		assert.True(t, decimal.NewFromInt(3).Equal(amount), "10%% of 30, got %s", amount)
	})

	t.Run("category bound covers only matching items", func(t *testing.T) {
		coupon := &models.Discount{ID: "c2", CouponCode: "PIZZA10", CategoryID: "pizza", PercentOff: 10, Active: true}
		amount := CouponAmount(coupon, cart)
		assert.True(t, decimal.NewFromInt(2).Equal(amount), "10%% of 20, got %s", amount)
	})

	t.Run("zero when gate not met within scope", func(t *testing.T) {
		coupon := &models.Discount{ID: "c3", CouponCode: "BULK", CategoryID: "pizza", PercentOff: 10, MinQuantity: 5, Active: true}
		amount := CouponAmount(coupon, cart)
		assert.True(t, amount.IsZero())
	})
}
