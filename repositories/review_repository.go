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

// ReviewRepository reads and writes the "reviews" collection.
type ReviewRepository struct {
	client *firestore.Client
}

func NewReviewRepository(client *firestore.Client) *ReviewRepository {
	return &ReviewRepository{client: client}
}

func (r *ReviewRepository) col() *firestore.CollectionRef {
	return r.client.Collection("reviews")
}

// ListByFood returns the reviews of one food item, newest first.
func (r *ReviewRepository) ListByFood(ctx context.Context, foodID string) ([]models.Review, error) {
	base := r.col().Where("foodId", "==", foodID)

	snaps, err := base.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		if status.Code(err) != codes.FailedPrecondition {
			return nil, err
		}
		utils.InfoLogger.Printf("composite index missing for review query, using degraded query (food=%s)", foodID)
		snaps, err = base.Documents(ctx).GetAll()
		if err != nil {
			return nil, err
		}
	}

	reviews := make([]models.Review, 0, len(snaps))
	for _, snap := range snaps {
		var rev models.Review
		if err := snap.DataTo(&rev); err != nil {
			continue
		}
		rev.ID = snap.Ref.ID
		reviews = append(reviews, rev)
	}
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

// Create persists a new review document.
func (r *ReviewRepository) Create(ctx context.Context, id string, rev models.Review) error {
	_, err := r.col().Doc(id).Set(ctx, map[string]interface{}{
		"foodId":    rev.FoodID,
		"userId":    rev.UserID,
		"rating":    rev.Rating,
		"comment":   rev.Comment,
		"createdAt": firestore.ServerTimestamp,
	})
	return err
}

// Delete removes a review document. Admin only.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}
