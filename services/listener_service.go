package services

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/realtime"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/repositories"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

// ListenerService owns the long-lived snapshot listeners on categories, food
// and pending orders. Every delivery is a full replacement set that is pushed
// through the hub; consumers replace their view, never merge deltas.
//
// Listeners are read-only: availability is resolved in memory here but never
// repaired, that is the food repository's job on the request path.
type ListenerService struct {
	client *firestore.Client
	hub    *realtime.Hub

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewListenerService(client *firestore.Client, hub *realtime.Hub) *ListenerService {
	return &ListenerService{client: client, hub: hub}
}

// Start spawns one goroutine per watched query. Stop (or cancelling the
// parent context) tears all of them down.
func (s *ListenerService) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel

	s.watch(ctx, "categories",
		s.client.Collection("categories").Where("active", "==", true),
		s.publishCategories)
	s.watch(ctx, "food",
		s.client.Collection("food").Query,
		s.publishFood)
	s.watch(ctx, "pending orders",
		s.client.Collection("orders").Where("status", "==", string(models.OrderPending)),
		s.publishPendingOrders)
}

// Stop cancels every listener and waits for the goroutines to exit.
func (s *ListenerService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

const (
	listenerRetryBase = time.Second
	listenerRetryMax  = 30 * time.Second
)

// nextListenerBackoff doubles the resubscribe delay up to the cap.
func nextListenerBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > listenerRetryMax {
		d = listenerRetryMax
	}
	return d
}

func (s *ListenerService) watch(ctx context.Context, name string, q firestore.Query, publish func([]*firestore.DocumentSnapshot)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		backoff := listenerRetryBase
		for {
			err := s.consume(ctx, name, q, publish, &backoff)
			if status.Code(err) == codes.Canceled || ctx.Err() != nil {
				utils.InfoLogger.Printf("%s listener stopped", name)
				return
			}

			// Transient stream failure: resubscribe after a pause instead
			// of leaving the view frozen.
			utils.ErrorLogger.Printf("%s listener failed, resubscribing in %v: %v", name, backoff, err)
			select {
			case <-ctx.Done():
				utils.InfoLogger.Printf("%s listener stopped", name)
				return
			case <-time.After(backoff):
			}
			backoff = nextListenerBackoff(backoff)
		}
	}()
}

// consume drains one snapshot subscription until it fails. The backoff is
// reset after every successful delivery so an established stream that dies
// later retries promptly.
func (s *ListenerService) consume(ctx context.Context, name string, q firestore.Query, publish func([]*firestore.DocumentSnapshot), backoff *time.Duration) error {
	it := q.Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			return err
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			utils.ErrorLogger.Printf("%s listener: reading snapshot failed: %v", name, err)
			continue
		}
		publish(docs)
		*backoff = listenerRetryBase
	}
}

func (s *ListenerService) publishCategories(docs []*firestore.DocumentSnapshot) {
	cats := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		var c models.Category
		if err := doc.DataTo(&c); err != nil {
			continue
		}
		c.ID = doc.Ref.ID
		cats = append(cats, c)
	}
	s.hub.Broadcast(realtime.EventCategoriesSnapshot, cats)
}

func (s *ListenerService) publishFood(docs []*firestore.DocumentSnapshot) {
	items := make([]models.FoodItem, 0, len(docs))
	for _, doc := range docs {
		var item models.FoodItem
		if err := doc.DataTo(&item); err != nil {
			continue
		}
		item.ID = doc.Ref.ID
		item.Available, _ = repositories.ResolveAvailability(doc.Data())
		items = append(items, item)
	}
	s.hub.Broadcast(realtime.EventFoodSnapshot, items)
}

func (s *ListenerService) publishPendingOrders(docs []*firestore.DocumentSnapshot) {
	orders := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		var o models.Order
		if err := doc.DataTo(&o); err != nil {
			continue
		}
		o.ID = doc.Ref.ID
		orders = append(orders, o)
	}
	s.hub.BroadcastToRole("admin", realtime.EventPendingOrders, orders)
}
