package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

// Checkout validation errors.
var (
	ErrEmptyCart       = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	ErrCouponNotValid  = errors.New("coupon code is not valid")
	ErrStoreClosed     = errors.New("ordering is temporarily unavailable")
)

// FoodNotFoundError names the missing item so the client can point at the
// offending cart line.
type FoodNotFoundError struct{ FoodID string }

func (e *FoodNotFoundError) Error() string {
	return fmt.Sprintf("food %s not found", e.FoodID)
}

// FoodUnavailableError marks an item that exists but cannot be ordered.
type FoodUnavailableError struct{ FoodID string }

func (e *FoodUnavailableError) Error() string {
	return fmt.Sprintf("food %s is not available", e.FoodID)
}

// MinOrderError reports a subtotal below the configured minimum.
type MinOrderError struct{ Min float64 }

func (e *MinOrderError) Error() string {
	return fmt.Sprintf("order subtotal is below the minimum of %s", utils.FormatCurrency(decimal.NewFromFloat(e.Min)))
}

// FoodSource resolves cart lines to current food snapshots.
type FoodSource interface {
	GetByID(ctx context.Context, id string) (*models.FoodItem, error)
}

// OrderSink persists finished orders.
type OrderSink interface {
	Create(ctx context.Context, id string, order models.Order) error
	SetStatus(ctx context.Context, id string, s models.OrderStatus) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
}

// SettingsSource supplies the checkout-relevant app settings.
type SettingsSource interface {
	Get(ctx context.Context) (models.AppSettings, error)
}

// UsageCounter records discount redemptions, best-effort.
type UsageCounter interface {
	IncrementUsage(id string)
}

// StatusNotifier pushes order status changes to the order's owner.
type StatusNotifier interface {
	SendOrderStatus(uid, orderID string, status models.OrderStatus)
}

// CheckoutLine is one requested cart entry.
type CheckoutLine struct {
	FoodID   string `json:"food_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Notes    string `json:"notes"`
}

// CheckoutRequest is the input for placing an order.
type CheckoutRequest struct {
	Items      []CheckoutLine `json:"items" binding:"required"`
	Address    string         `json:"address" binding:"required"`
	Notes      string         `json:"notes"`
	CouponCode string         `json:"coupon_code"`
}

// OrderService owns checkout and status updates.
type OrderService struct {
	food      FoodSource
	orders    OrderSink
	settings  SettingsSource
	discounts *DiscountService
	usage     UsageCounter
	notifier  StatusNotifier

	newID func() string
	now   func() time.Time
}

func NewOrderService(
	food FoodSource,
	orders OrderSink,
	settings SettingsSource,
	discounts *DiscountService,
	usage UsageCounter,
	notifier StatusNotifier,
) *OrderService {
	return &OrderService{
		food:      food,
		orders:    orders,
		settings:  settings,
		discounts: discounts,
		usage:     usage,
		notifier:  notifier,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Checkout validates the cart against live food documents, evaluates
// discounts server-side and persists the order in PENDING state. Prices come
// from the stored documents, never from the client.
func (s *OrderService) Checkout(ctx context.Context, uid string, req CheckoutRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings.Maintenance {
		return nil, ErrStoreClosed
	}

	cart := make([]models.CartItem, 0, len(req.Items))
	for _, line := range req.Items {
		food, err := s.food.GetByID(ctx, line.FoodID)
		if err != nil {
			return nil, err
		}
		if food == nil {
			return nil, &FoodNotFoundError{FoodID: line.FoodID}
		}
		if !food.Available {
			return nil, &FoodUnavailableError{FoodID: line.FoodID}
		}
		cart = append(cart, models.CartItem{Food: *food, Quantity: line.Quantity, Notes: line.Notes})
	}

	subtotal := decimal.Zero
	for _, item := range cart {
		line := decimal.NewFromFloat(item.Food.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	if min := decimal.NewFromFloat(settings.MinOrderTotal); subtotal.LessThan(min) {
		return nil, &MinOrderError{Min: settings.MinOrderTotal}
	}

	applied, err := s.discounts.CartDiscounts(ctx, cart)
	if err != nil {
		return nil, err
	}

	discountTotal := decimal.Zero
	discountLines := make(map[string]float64, len(applied))
	appliedIDs := make([]string, 0, len(applied)+1)
	for categoryID, a := range applied {
		discountTotal = discountTotal.Add(a.Amount)
		discountLines[categoryID] = amountFloat(a.Amount)
		appliedIDs = append(appliedIDs, a.Discount.ID)
	}

	if req.CouponCode != "" {
		coupon, err := s.discounts.ValidateCoupon(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
		if coupon == nil {
			return nil, ErrCouponNotValid
		}
		if amount := CouponAmount(coupon, cart); !amount.IsZero() {
			discountTotal = discountTotal.Add(amount)
			discountLines["coupon:"+coupon.ID] = amountFloat(amount)
			appliedIDs = append(appliedIDs, coupon.ID)
		}
	}

	deliveryFee := decimal.NewFromFloat(settings.DeliveryFee)
	total := subtotal.Sub(discountTotal).Add(deliveryFee)

	order := models.Order{
		UserID:        uid,
		Items:         orderItems(cart),
		Subtotal:      amountFloat(subtotal),
		Discounts:     discountLines,
		DiscountTotal: amountFloat(discountTotal),
		DeliveryFee:   settings.DeliveryFee,
		Total:         amountFloat(total),
		Status:        models.OrderPending,
		Address:       req.Address,
		Notes:         req.Notes,
		CreatedAt:     s.now(),
		UpdatedAt:     s.now(),
	}

	id := s.newID()
	if err := s.orders.Create(ctx, id, order); err != nil {
		return nil, err
	}
	order.ID = id

	// Redemption counters are corrective side-writes: spawned, logged,
	// never awaited by the checkout path.
	for _, discountID := range appliedIDs {
		go s.usage.IncrementUsage(discountID)
	}

	utils.InfoLogger.Printf("order %s placed by %s, total %s", id, uid, utils.FormatCurrency(total))
	return &order, nil
}

// UpdateStatus sets a new status on an order and notifies its owner. Any
// known status may replace any other.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !models.KnownOrderStatus(status) {
		return nil, fmt.Errorf("unknown order status %q", status)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	if err := s.orders.SetStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = s.now()

	if s.notifier != nil {
		go s.notifier.SendOrderStatus(order.UserID, orderID, status)
	}
	return order, nil
}

func orderItems(cart []models.CartItem) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cart))
	for _, c := range cart {
		items = append(items, models.OrderItem{
			FoodID:     c.Food.ID,
			Name:       c.Food.Name("en"),
			CategoryID: c.Food.CategoryID,
			Price:      c.Food.Price,
			Quantity:   c.Quantity,
			Notes:      c.Notes,
		})
	}
	return items
}

// amountFloat rounds a money amount to cents at the storage boundary.
func amountFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
