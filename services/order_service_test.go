package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
)

type fakeFoodSource struct {
	foods map[string]*models.FoodItem
}

func (f *fakeFoodSource) GetByID(ctx context.Context, id string) (*models.FoodItem, error) {
	return f.foods[id], nil
}

type fakeOrderSink struct {
	mu      sync.Mutex
	created map[string]models.Order
	status  map[string]models.OrderStatus
}

func newFakeOrderSink() *fakeOrderSink {
	return &fakeOrderSink{
		created: make(map[string]models.Order),
		status:  make(map[string]models.OrderStatus),
	}
}

func (f *fakeOrderSink) Create(ctx context.Context, id string, order models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created[id] = order
	return nil
}

func (f *fakeOrderSink) SetStatus(ctx context.Context, id string, s models.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[id] = s
	return nil
}

func (f *fakeOrderSink) GetByID(ctx context.Context, id string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order, ok := f.created[id]; ok {
		o := order
		o.ID = id
		return &o, nil
	}
	return nil, nil
}

type fakeSettings struct {
	settings models.AppSettings
}

func (f *fakeSettings) Get(ctx context.Context) (models.AppSettings, error) {
	return f.settings, nil
}

type fakeUsageCounter struct {
	incremented chan string
}

func newFakeUsageCounter() *fakeUsageCounter {
	return &fakeUsageCounter{incremented: make(chan string, 16)}
}

func (f *fakeUsageCounter) IncrementUsage(id string) {
	f.incremented <- id
}

type fakeNotifier struct {
	sent chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 16)}
}

func (f *fakeNotifier) SendOrderStatus(uid, orderID string, status models.OrderStatus) {
	f.sent <- orderID + ":" + string(status)
}

func availableFood(id, categoryID string, price float64) *models.FoodItem {
	return &models.FoodItem{
		ID:         id,
		CategoryID: categoryID,
		Price:      price,
		Available:  true,
		Translations: map[string]models.Translation{
			"en": {Name: "Food " + id},
		},
	}
}

type checkoutFixture struct {
	svc      *OrderService
	orders   *fakeOrderSink
	usage    *fakeUsageCounter
	notifier *fakeNotifier
	source   *fakeDiscountSource
}

func newCheckoutFixture(foods map[string]*models.FoodItem, settings models.AppSettings) *checkoutFixture {
	source := &fakeDiscountSource{
		byCategory: map[string][]models.Discount{},
		coupons:    map[string]*models.Discount{},
	}
	orders := newFakeOrderSink()
	usage := newFakeUsageCounter()
	notifier := newFakeNotifier()

	svc := NewOrderService(
		&fakeFoodSource{foods: foods},
		orders,
		&fakeSettings{settings: settings},
		NewDiscountService(source),
		usage,
		notifier,
	)
	svc.newID = func() string { return "order-1" }

	return &checkoutFixture{svc: svc, orders: orders, usage: usage, notifier: notifier, source: source}
}

func TestCheckoutHappyPath(t *testing.T) {
	foods := map[string]*models.FoodItem{
		"p1": availableFood("p1", "pizza", 12.5),
	}
	fx := newCheckoutFixture(foods, models.AppSettings{DeliveryFee: 3})

	order, err := fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{
		Items:   []CheckoutLine{{FoodID: "p1", Quantity: 2}},
		Address: "Via Roma 1",
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 25.0, order.Subtotal)
	assert.Equal(t, 0.0, order.DiscountTotal)
	assert.Equal(t, 3.0, order.DeliveryFee)
	assert.Equal(t, 28.0, order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Food p1", order.Items[0].Name)
	assert.Equal(t, 12.5, order.Items[0].Price)

	stored, ok := fx.orders.created["order-1"]
	require.True(t, ok)
	assert.Equal(t, models.OrderPending, stored.Status)
}

func TestCheckoutValidation(t *testing.T) {
	fx := newCheckoutFixture(nil, models.AppSettings{})

	_, err := fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{Address: "x"})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{
		Items:   []CheckoutLine{{FoodID: "p1", Quantity: 0}},
		Address: "x",
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCheckoutStoreClosed(t *testing.T) {
	fx := newCheckoutFixture(nil, models.AppSettings{Maintenance: true})

	_, err := fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{
		Items:   []CheckoutLine{{FoodID: "p1", Quantity: 1}},
		Address: "x",
	})
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestCheckoutUnknownFood(t *testing.T) {
	fx := newCheckoutFixture(map[string]*models.FoodItem{}, models.AppSettings{})

	_, err := fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{
		Items:   []CheckoutLine{{FoodID: "ghost", Quantity: 1}},
		Address: "x",
	})
	var notFound *FoodNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.FoodID)
}

func TestCheckoutUnavailableFood(t *testing.T) {
	off := availableFood("p1", "pizza", 10)
	off.Available = false
	fx := newCheckoutFixture(map[string]*models.FoodItem{"p1": off}, models.AppSettings{})

	_, err := fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{
		Items:   []CheckoutLine{{FoodID: "p1", Quantity: 1}},
		Address: "x",
	})
	var unavailable *FoodUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "p1", unavailable.FoodID)
}

func TestCheckoutBelowMinimum(t *testing.T) {
	foods := map[string]*models.FoodItem{"p1": availableFood("p1", "pizza", 5)}
	fx := newCheckoutFixture(foods, models.AppSettings{MinOrderTotal: 20})

	_, err := fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{
		Items:   []CheckoutLine{{FoodID: "p1", Quantity: 1}},
		Address: "x",
	})
	var minErr *MinOrderError
	require.ErrorAs(t, err, &minErr)
	assert.Equal(t, 20.0, minErr.Min)
}

func TestCheckoutAppliesCategoryDiscount(t *testing.T) {
	foods := map[string]*models.FoodItem{"p1": availableFood("p1", "pizza", 10)}
	fx := newCheckoutFixture(foods, models.AppSettings{})
	fx.source.byCategory["pizza"] = []models.Discount{
		{ID: "d1", CategoryID: "pizza", PercentOff: 10, Active: true},
	}

	order, err := fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{
		Items:   []CheckoutLine{{FoodID: "p1", Quantity: 2}},
		Address: "x",
	})
	require.NoError(t, err)

	assert.Equal(t, 20.0, order.Subtotal)
	assert.Equal(t, 2.0, order.DiscountTotal)
	assert.Equal(t, 18.0, order.Total)
	assert.Equal(t, 2.0, order.Discounts["pizza"])

	select {
	case id := <-fx.usage.incremented:
		assert.Equal(t, "d1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("usage counter was never incremented")
	}
}

func TestCheckoutRejectsInvalidCoupon(t *testing.T) {
	foods := map[string]*models.FoodItem{"p1": availableFood("p1", "pizza", 10)}
	fx := newCheckoutFixture(foods, models.AppSettings{})

	_, err := fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{
		Items:      []CheckoutLine{{FoodID: "p1", Quantity: 1}},
		Address:    "x",
		CouponCode: "NOPE",
	})
	assert.ErrorIs(t, err, ErrCouponNotValid)
}

func TestCheckoutAppliesCoupon(t *testing.T) {
	foods := map[string]*models.FoodItem{"p1": availableFood("p1", "pizza", 10)}
	fx := newCheckoutFixture(foods, models.AppSettings{})
	fx.source.coupons["WELCOME10"] = &models.Discount{
		ID: "c1", CouponCode: "WELCOME10", PercentOff: 10, Active: true,
	}

	order, err := fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{
		Items:      []CheckoutLine{{FoodID: "p1", Quantity: 3}},
		Address:    "x",
		CouponCode: "WELCOME10",
	})
	require.NoError(t, err)

	assert.Equal(t, 30.0, order.Subtotal)
	assert.Equal(t, 3.0, order.DiscountTotal)
	assert.Equal(t, 27.0, order.Total)
	assert.Equal(t, 3.0, order.Discounts["coupon:c1"])
}

func TestCheckoutCouponAppliedOnceDespiteCategoryMatch(t *testing.T) {
	foods := map[string]*models.FoodItem{"p1": availableFood("p1", "pizza", 10)}
	fx := newCheckoutFixture(foods, models.AppSettings{})

	// The same category-bound coupon visible both ways: the evaluator must
	// ignore it, the code-entry path applies it exactly once.
	coupon := models.Discount{
		ID: "c1", CategoryID: "pizza", CouponCode: "PIZZA20", PercentOff: 20, Active: true,
	}
	fx.source.byCategory["pizza"] = []models.Discount{coupon}
	fx.source.coupons["PIZZA20"] = &coupon

	order, err := fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{
		Items:      []CheckoutLine{{FoodID: "p1", Quantity: 2}},
		Address:    "x",
		CouponCode: "PIZZA20",
	})
	require.NoError(t, err)

	assert.Equal(t, 20.0, order.Subtotal)
	assert.Equal(t, 4.0, order.DiscountTotal, "the 20%% coupon must be counted exactly once")
	assert.Equal(t, 16.0, order.Total)
	require.Len(t, order.Discounts, 1)
	assert.Equal(t, 4.0, order.Discounts["coupon:c1"])
}

func TestUpdateStatus(t *testing.T) {
	fx := newCheckoutFixture(map[string]*models.FoodItem{"p1": availableFood("p1", "pizza", 10)}, models.AppSettings{})

	_, err := fx.svc.Checkout(context.Background(), "u1", CheckoutRequest{
		Items:   []CheckoutLine{{FoodID: "p1", Quantity: 1}},
		Address: "x",
	})
	require.NoError(t, err)

	order, err := fx.svc.UpdateStatus(context.Background(), "order-1", models.OrderPreparing)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, models.OrderPreparing, order.Status)
	assert.Equal(t, models.OrderPreparing, fx.orders.status["order-1"])

	select {
	case sent := <-fx.notifier.sent:
		assert.Equal(t, "order-1:PREPARING", sent)
	case <-time.After(2 * time.Second):
		t.Fatal("owner was never notified")
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	fx := newCheckoutFixture(nil, models.AppSettings{})
	_, err := fx.svc.UpdateStatus(context.Background(), "order-1", models.OrderStatus("SHIPPED"))
	assert.Error(t, err)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	fx := newCheckoutFixture(nil, models.AppSettings{})
	order, err := fx.svc.UpdateStatus(context.Background(), "ghost", models.OrderConfirmed)
	require.NoError(t, err)
	assert.Nil(t, order)
}
