package services

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
)

type fakeFCM struct {
	sent    []*messaging.Message
	failFor map[string]error
}

func (f *fakeFCM) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	if err, ok := f.failFor[msg.Token]; ok {
		return "", err
	}
	f.sent = append(f.sent, msg)
	return "msg-id", nil
}

type fakeTokenSource struct {
	byUser  map[string][]string
	all     []string
	removed []string
}

func (f *fakeTokenSource) TokensForUser(ctx context.Context, uid string) ([]string, error) {
	return f.byUser[uid], nil
}

func (f *fakeTokenSource) AllTokens(ctx context.Context) ([]string, error) {
	return f.all, nil
}

func (f *fakeTokenSource) Remove(ctx context.Context, token string) error {
	f.removed = append(f.removed, token)
	return nil
}

func TestBuildOrderStatusMessage(t *testing.T) {
	msg := BuildOrderStatusMessage("tok-1", "order-42", models.OrderReady)

	assert.Equal(t, "tok-1", msg.Token)
	assert.Equal(t, "Order update", msg.Notification.Title)
	assert.Equal(t, "Your order is ready.", msg.Notification.Body)
	assert.Equal(t, "order_status", msg.Data["type"])
	assert.Equal(t, "order-42", msg.Data["orderId"])
	assert.Equal(t, "READY", msg.Data["status"])
}

func TestBuildOrderStatusMessageUnknownStatus(t *testing.T) {
	msg := BuildOrderStatusMessage("tok-1", "order-42", models.OrderStatus("ODD"))
	assert.Equal(t, "Your order was updated.", msg.Notification.Body)
}

func TestBuildPromoMessage(t *testing.T) {
	msg := BuildPromoMessage("tok-1", "Weekend deal", "Two pizzas for one")
	assert.Equal(t, "Weekend deal", msg.Notification.Title)
	assert.Equal(t, "Two pizzas for one", msg.Notification.Body)
	assert.Equal(t, "promo", msg.Data["type"])
}

func TestSendOrderStatusFansOutToAllDevices(t *testing.T) {
	fcm := &fakeFCM{}
	tokens := &fakeTokenSource{byUser: map[string][]string{
		"u1": {"tok-a", "tok-b"},
	}}
	svc := NewNotificationService(fcm, tokens)

	svc.SendOrderStatus("u1", "order-1", models.OrderConfirmed)

	require.Len(t, fcm.sent, 2)
	assert.Equal(t, "tok-a", fcm.sent[0].Token)
	assert.Equal(t, "tok-b", fcm.sent[1].Token)
}

func TestSendPromoCountsSuccesses(t *testing.T) {
	fcm := &fakeFCM{failFor: map[string]error{
		"tok-dead": errors.New("transient send failure"),
	}}
	tokens := &fakeTokenSource{all: []string{"tok-a", "tok-dead", "tok-b"}}
	svc := NewNotificationService(fcm, tokens)

	sent, err := svc.SendPromo(context.Background(), "Deal", "Body")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Empty(t, tokens.removed, "a generic failure must not prune the token")
}
