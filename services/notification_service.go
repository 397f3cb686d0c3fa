package services

import (
	"context"
	"time"

	"firebase.google.com/go/v4/messaging"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

const fcmSendTimeout = 10 * time.Second

// fcmSender is the slice of *messaging.Client the service needs; narrowed so
// tests can fake the provider.
type fcmSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// TokenSource resolves the registered device tokens.
type TokenSource interface {
	TokensForUser(ctx context.Context, uid string) ([]string, error)
	AllTokens(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, token string) error
}

// NotificationService pushes FCM messages. Every send is best-effort: the
// outcome is logged and never fails the operation that triggered it.
type NotificationService struct {
	fcm    fcmSender
	tokens TokenSource
}

func NewNotificationService(fcm fcmSender, tokens TokenSource) *NotificationService {
	return &NotificationService{fcm: fcm, tokens: tokens}
}

// statusTexts are the notification bodies per order status.
var statusTexts = map[models.OrderStatus]string{
	models.OrderPending:   "We received your order.",
	models.OrderConfirmed: "Your order has been confirmed.",
	models.OrderPreparing: "Your order is being prepared.",
	models.OrderReady:     "Your order is ready.",
	models.OrderDelivered: "Your order has been delivered. Enjoy!",
	models.OrderCancelled: "Your order has been cancelled.",
}

// BuildOrderStatusMessage renders the message for one device token. The data
// payload carries type=order_status plus the order id so the app can
// deep-link straight into the order screen.
func BuildOrderStatusMessage(token, orderID string, status models.OrderStatus) *messaging.Message {
	body, ok := statusTexts[status]
	if !ok {
		body = "Your order was updated."
	}
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "Order update",
			Body:  body,
		},
		Data: map[string]string{
			"type":    "order_status",
			"orderId": orderID,
			"status":  string(status),
		},
	}
}

// BuildPromoMessage renders a promotional message for one device token.
func BuildPromoMessage(token, title, body string) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type": "promo",
		},
	}
}

// SendOrderStatus pushes a status change to every device of the order's
// owner. Called on its own goroutine by the order service.
func (s *NotificationService) SendOrderStatus(uid, orderID string, status models.OrderStatus) {
	ctx, cancel := context.WithTimeout(context.Background(), fcmSendTimeout)
	defer cancel()

	tokens, err := s.tokens.TokensForUser(ctx, uid)
	if err != nil {
		utils.ErrorLogger.Printf("token lookup failed for user %s: %v", uid, err)
		return
	}

	for _, token := range tokens {
		s.send(ctx, BuildOrderStatusMessage(token, orderID, status))
	}
}

// SendPromo broadcasts a promotional message to every registered device.
func (s *NotificationService) SendPromo(ctx context.Context, title, body string) (int, error) {
	tokens, err := s.tokens.AllTokens(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, token := range tokens {
		if s.send(ctx, BuildPromoMessage(token, title, body)) {
			sent++
		}
	}
	return sent, nil
}

// send delivers one message and prunes tokens the provider reports as dead.
func (s *NotificationService) send(ctx context.Context, msg *messaging.Message) bool {
	if _, err := s.fcm.Send(ctx, msg); err != nil {
		if messaging.IsRegistrationTokenNotRegistered(err) {
			if rmErr := s.tokens.Remove(ctx, msg.Token); rmErr != nil {
				utils.ErrorLogger.Printf("stale token cleanup failed: %v", rmErr)
			}
			return false
		}
		utils.ErrorLogger.Printf("fcm send failed: %v", err)
		return false
	}
	return true
}
