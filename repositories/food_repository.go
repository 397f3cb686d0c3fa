package repositories

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

const foodListTTL = 60 * time.Second

// FoodRepository reads and writes the "food" collection. Every read passes
// through the availability reconciler: documents written by older app
// versions may carry up to three overlapping availability booleans, which
// are collapsed to one canonical value and repaired in the background.
type FoodRepository struct {
	client *firestore.Client
	cache  *listCache[models.FoodItem]

	// repair rewrites a document's availability fields. Fire-and-forget:
	// called on its own goroutine, failures are logged and swallowed.
	// Swapped out by tests.
	repair func(id string, canonical bool)
}

func NewFoodRepository(client *firestore.Client) *FoodRepository {
	r := &FoodRepository{
		client: client,
		cache:  newListCache[models.FoodItem](foodListTTL),
	}
	r.repair = r.repairRemote
	return r
}

func (r *FoodRepository) col() *firestore.CollectionRef {
	return r.client.Collection("food")
}

// decode builds a FoodItem from a snapshot and runs the availability
// reconciler over the raw field map.
func (r *FoodRepository) decode(snap *firestore.DocumentSnapshot) (models.FoodItem, error) {
	var item models.FoodItem
	if err := snap.DataTo(&item); err != nil {
		return models.FoodItem{}, err
	}
	item.ID = snap.Ref.ID
	r.reconcile(&item, snap.Data())
	return item, nil
}

// reconcile resolves availability from the raw field map and schedules a
// corrective write when the stored fields are inconsistent. The item always
// carries the canonical value, whether or not the repair ever lands.
func (r *FoodRepository) reconcile(item *models.FoodItem, data map[string]interface{}) {
	canonical, needsMigration := ResolveAvailability(data)
	item.Available = canonical
	if needsMigration {
		go r.repair(item.ID, canonical)
	}
}

func (r *FoodRepository) repairRemote(id string, canonical bool) {
	// Detached from the read's context: the read has already returned.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: fieldFoodAvailable, Value: canonical},
		{Path: fieldAvailable, Value: canonical},
		{Path: fieldIsAvailable, Value: firestore.Delete},
	})
	if err != nil {
		utils.ErrorLogger.Printf("availability repair failed for food %s: %v", id, err)
		return
	}
	utils.InfoLogger.Printf("availability repaired for food %s (canonical=%v)", id, canonical)
}

// GetByID returns one food item, or nil when absent.
func (r *FoodRepository) GetByID(ctx context.Context, id string) (*models.FoodItem, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	item, err := r.decode(snap)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListAll returns every food item, served from the list cache while fresh.
func (r *FoodRepository) ListAll(ctx context.Context) ([]models.FoodItem, error) {
	if items, ok := r.cache.get(); ok {
		return items, nil
	}

	snaps, err := r.col().Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	items := make([]models.FoodItem, 0, len(snaps))
	for _, snap := range snaps {
		item, err := r.decode(snap)
		if err != nil {
			utils.ErrorLogger.Printf("skipping undecodable food doc %s: %v", snap.Ref.ID, err)
			continue
		}
		items = append(items, item)
	}

	r.cache.set(items)
	return items, nil
}

// ListByCategory returns the food items of one category.
func (r *FoodRepository) ListByCategory(ctx context.Context, categoryID string) ([]models.FoodItem, error) {
	snaps, err := r.col().Where("categoryId", "==", categoryID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	items := make([]models.FoodItem, 0, len(snaps))
	for _, snap := range snaps {
		item, err := r.decode(snap)
		if err != nil {
			utils.ErrorLogger.Printf("skipping undecodable food doc %s: %v", snap.Ref.ID, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Create writes a new food document. Both availability fields are written in
// canonical form so new documents never need reconciliation.
func (r *FoodRepository) Create(ctx context.Context, id string, item models.FoodItem) error {
	_, err := r.col().Doc(id).Set(ctx, r.docFields(item, true))
	if err != nil {
		return err
	}
	r.cache.invalidate()
	return nil
}

// Update merges the editable fields into a food document, leaving createdAt
// and any unrelated legacy fields alone.
func (r *FoodRepository) Update(ctx context.Context, id string, item models.FoodItem) error {
	_, err := r.col().Doc(id).Set(ctx, r.docFields(item, false), firestore.MergeAll)
	if err != nil {
		return err
	}
	r.cache.invalidate()
	return nil
}

// SetAvailability flips only the availability pair.
func (r *FoodRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: fieldFoodAvailable, Value: available},
		{Path: fieldAvailable, Value: available},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return err
	}
	r.cache.invalidate()
	return nil
}

// Delete removes a food document.
func (r *FoodRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return err
	}
	r.cache.invalidate()
	return nil
}

// docFields builds the stored field map. Writes are explicit maps rather
// than the struct so the availability pair and timestamps stay under the
// repository's control.
func (r *FoodRepository) docFields(item models.FoodItem, isCreate bool) map[string]interface{} {
	fields := map[string]interface{}{
		"translations":     item.Translations,
		"price":            item.Price,
		"categoryId":       item.CategoryID,
		"imageUrl":         item.ImageURL,
		fieldFoodAvailable: item.Available,
		fieldAvailable:     item.Available,
		"updatedAt":        firestore.ServerTimestamp,
	}
	if isCreate {
		fields["createdAt"] = firestore.ServerTimestamp
	}
	if item.DiscountedPrice != nil {
		fields["discountedPrice"] = *item.DiscountedPrice
	}
	if item.DiscountPercent != nil {
		fields["discountPercentage"] = *item.DiscountPercent
	}
	if item.DiscountEndDate != nil {
		fields["discountEndDate"] = *item.DiscountEndDate
	}
	if item.DiscountMessage != "" {
		fields["discountMessage"] = item.DiscountMessage
	}
	return fields
}
