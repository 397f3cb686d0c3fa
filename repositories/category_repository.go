package repositories

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

const categoryListTTL = 60 * time.Second

// CategoryRepository reads and writes the "categories" collection with a
// short TTL cache in front of the list read.
type CategoryRepository struct {
	client *firestore.Client
	cache  *listCache[models.Category]
}

func NewCategoryRepository(client *firestore.Client) *CategoryRepository {
	return &CategoryRepository{
		client: client,
		cache:  newListCache[models.Category](categoryListTTL),
	}
}

func (r *CategoryRepository) col() *firestore.CollectionRef {
	return r.client.Collection("categories")
}

// ListActive returns the active categories in sort order, cached for a
// minute.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	if cats, ok := r.cache.get(); ok {
		return cats, nil
	}

	base := r.col().Where("active", "==", true)
	snaps, err := base.OrderBy("sortOrder", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		if status.Code(err) != codes.FailedPrecondition {
			return nil, err
		}
		utils.InfoLogger.Printf("composite index missing for category query, using degraded query")
		snaps, err = base.Documents(ctx).GetAll()
		if err != nil {
			return nil, err
		}
	}

	cats := make([]models.Category, 0, len(snaps))
	for _, snap := range snaps {
		var c models.Category
		if err := snap.DataTo(&c); err != nil {
			utils.ErrorLogger.Printf("skipping undecodable category doc %s: %v", snap.Ref.ID, err)
			continue
		}
		c.ID = snap.Ref.ID
		cats = append(cats, c)
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].SortOrder < cats[j].SortOrder })

	r.cache.set(cats)
	return cats, nil
}

// GetByID returns one category, or nil when absent.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	var c models.Category
	if err := snap.DataTo(&c); err != nil {
		return nil, err
	}
	c.ID = snap.Ref.ID
	return &c, nil
}

// Create writes a new category document.
func (r *CategoryRepository) Create(ctx context.Context, id string, c models.Category) error {
	_, err := r.col().Doc(id).Set(ctx, map[string]interface{}{
		"names":     c.Names,
		"imageUrl":  c.ImageURL,
		"sortOrder": c.SortOrder,
		"active":    c.Active,
		"createdAt": firestore.ServerTimestamp,
		"updatedAt": firestore.ServerTimestamp,
	})
	if err != nil {
		return err
	}
	r.cache.invalidate()
	return nil
}

// Update merges the editable fields of a category document.
func (r *CategoryRepository) Update(ctx context.Context, id string, c models.Category) error {
	_, err := r.col().Doc(id).Set(ctx, map[string]interface{}{
		"names":     c.Names,
		"imageUrl":  c.ImageURL,
		"sortOrder": c.SortOrder,
		"active":    c.Active,
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return err
	}
	r.cache.invalidate()
	return nil
}

// Delete removes a category document.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return err
	}
	r.cache.invalidate()
	return nil
}
