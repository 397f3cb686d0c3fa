package repositories

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

// OrderRepository reads and writes the "orders" collection. Orders are never
// deleted.
type OrderRepository struct {
	client *firestore.Client
}

func NewOrderRepository(client *firestore.Client) *OrderRepository {
	return &OrderRepository{client: client}
}

func (r *OrderRepository) col() *firestore.CollectionRef {
	return r.client.Collection("orders")
}

func decodeOrder(snap *firestore.DocumentSnapshot) (models.Order, error) {
	var o models.Order
	if err := snap.DataTo(&o); err != nil {
		return models.Order{}, err
	}
	o.ID = snap.Ref.ID
	return o, nil
}

// Create persists a new order document.
func (r *OrderRepository) Create(ctx context.Context, id string, order models.Order) error {
	_, err := r.col().Doc(id).Set(ctx, order)
	return err
}

// GetByID returns one order, or nil when absent.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	o, err := decodeOrder(snap)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, uid string) ([]models.Order, error) {
	base := r.col().Where("userId", "==", uid)

	snaps, err := base.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		if status.Code(err) != codes.FailedPrecondition {
			return nil, err
		}
		utils.InfoLogger.Printf("composite index missing for user-order query, using degraded query (uid=%s)", uid)
		snaps, err = base.Documents(ctx).GetAll()
		if err != nil {
			return nil, err
		}
	}

	orders := decodeOrders(snaps)
	sortOrdersNewestFirst(orders)
	return orders, nil
}

// ListByStatus returns orders in one status, oldest first, so admins work
// the queue in arrival order.
func (r *OrderRepository) ListByStatus(ctx context.Context, s models.OrderStatus) ([]models.Order, error) {
	base := r.col().Where("status", "==", string(s))

	snaps, err := base.OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		if status.Code(err) != codes.FailedPrecondition {
			return nil, err
		}
		utils.InfoLogger.Printf("composite index missing for status-order query, using degraded query (status=%s)", s)
		snaps, err = base.Documents(ctx).GetAll()
		if err != nil {
			return nil, err
		}
	}

	orders := decodeOrders(snaps)
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
	return orders, nil
}

// ListRecent returns the most recent orders across all users. Admin only.
func (r *OrderRepository) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	snaps, err := r.col().OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return decodeOrders(snaps), nil
}

// SetStatus writes a new status and bumps updatedAt with the server
// timestamp. Transitions are free-form: any status may replace any other.
func (r *OrderRepository) SetStatus(ctx context.Context, id string, s models.OrderStatus) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(s)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	return err
}

func decodeOrders(snaps []*firestore.DocumentSnapshot) []models.Order {
	orders := make([]models.Order, 0, len(snaps))
	for _, snap := range snaps {
		o, err := decodeOrder(snap)
		if err != nil {
			utils.ErrorLogger.Printf("skipping undecodable order doc %s: %v", snap.Ref.ID, err)
			continue
		}
		orders = append(orders, o)
	}
	return orders
}

func sortOrdersNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
}
