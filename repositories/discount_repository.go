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

// DiscountRepository reads and writes the "discounts" collection.
//
// Compound queries (equality filters plus ordering) need a composite index.
// Environments missing the index answer with FailedPrecondition; the
// repository then degrades to the plain filter query and re-sorts client
// side, so a missing index never surfaces to the caller.
type DiscountRepository struct {
	client *firestore.Client
	now    func() time.Time
}

func NewDiscountRepository(client *firestore.Client) *DiscountRepository {
	return &DiscountRepository{client: client, now: time.Now}
}

func (r *DiscountRepository) col() *firestore.CollectionRef {
	return r.client.Collection("discounts")
}

func decodeDiscount(snap *firestore.DocumentSnapshot) (models.Discount, error) {
	var d models.Discount
	if err := snap.DataTo(&d); err != nil {
		return models.Discount{}, err
	}
	d.ID = snap.Ref.ID
	return d, nil
}

// ActiveForCategory returns the currently-valid non-coupon discounts whose
// categoryId equals categoryID, sorted by percentOff descending then ID
// ascending. Coupons are never applied automatically, so they are filtered
// out here alongside the date-window check; discounts with a blank categoryId
// are likewise not returned, both are reachable only through coupon entry.
func (r *DiscountRepository) ActiveForCategory(ctx context.Context, categoryID string) ([]models.Discount, error) {
	base := r.col().Where("categoryId", "==", categoryID).Where("active", "==", true)

	snaps, err := base.OrderBy("percentOff", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		if status.Code(err) != codes.FailedPrecondition {
			return nil, err
		}
		// Missing composite index: degrade to the unordered query and sort
		// below.
		utils.InfoLogger.Printf("composite index missing for discount query, using degraded query (category=%s)", categoryID)
		snaps, err = base.Documents(ctx).GetAll()
		if err != nil {
			return nil, err
		}
	}

	now := r.now()
	discounts := make([]models.Discount, 0, len(snaps))
	for _, snap := range snaps {
		d, err := decodeDiscount(snap)
		if err != nil {
			utils.ErrorLogger.Printf("skipping undecodable discount doc %s: %v", snap.Ref.ID, err)
			continue
		}
		if d.IsCoupon() || !d.CurrentlyValid(now) {
			continue
		}
		discounts = append(discounts, d)
	}

	SortDiscountCandidates(discounts)
	return discounts, nil
}

// SortDiscountCandidates orders discounts by percentOff descending, then ID
// ascending. The secondary key makes the "best discount" pick deterministic
// when two candidates share the same percentage.
func SortDiscountCandidates(discounts []models.Discount) {
	sort.SliceStable(discounts, func(i, j int) bool {
		if discounts[i].PercentOff != discounts[j].PercentOff {
			return discounts[i].PercentOff > discounts[j].PercentOff
		}
		return discounts[i].ID < discounts[j].ID
	})
}

// CouponByCode returns the active discount carrying the exact coupon code, or
// nil when no such document exists. Date-window validity is the caller's
// concern: an expired coupon document is still returned here.
func (r *DiscountRepository) CouponByCode(ctx context.Context, code string) (*models.Discount, error) {
	snaps, err := r.col().
		Where("couponCode", "==", code).
		Where("active", "==", true).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	d, err := decodeDiscount(snaps[0])
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListRegular returns the currently-valid discounts shown to every customer:
// coupons and customer-specific records are excluded from the listing.
func (r *DiscountRepository) ListRegular(ctx context.Context) ([]models.Discount, error) {
	snaps, err := r.col().Where("active", "==", true).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	now := r.now()
	discounts := make([]models.Discount, 0, len(snaps))
	for _, snap := range snaps {
		d, err := decodeDiscount(snap)
		if err != nil {
			continue
		}
		if d.IsCoupon() || d.IsCustomerSpecific || !d.CurrentlyValid(now) {
			continue
		}
		discounts = append(discounts, d)
	}
	SortDiscountCandidates(discounts)
	return discounts, nil
}

// ListAll returns every discount document. Admin only.
func (r *DiscountRepository) ListAll(ctx context.Context) ([]models.Discount, error) {
	snaps, err := r.col().Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	discounts := make([]models.Discount, 0, len(snaps))
	for _, snap := range snaps {
		d, err := decodeDiscount(snap)
		if err != nil {
			continue
		}
		discounts = append(discounts, d)
	}
	return discounts, nil
}

// Create writes a new discount document.
func (r *DiscountRepository) Create(ctx context.Context, id string, d models.Discount) error {
	d.CreatedAt = r.now()
	d.UpdatedAt = d.CreatedAt
	_, err := r.col().Doc(id).Set(ctx, d)
	return err
}

// Update rewrites a discount document.
func (r *DiscountRepository) Update(ctx context.Context, id string, d models.Discount) error {
	d.UpdatedAt = r.now()
	_, err := r.col().Doc(id).Set(ctx, d)
	return err
}

// Delete removes a discount document.
func (r *DiscountRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

// IncrementUsage bumps the usage counter with the server-side increment
// sentinel. Best-effort: called fire-and-forget after checkout, a failure is
// logged and never fails the order.
func (r *DiscountRepository) IncrementUsage(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "usageCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		utils.ErrorLogger.Printf("usage counter increment failed for discount %s: %v", id, err)
	}
}
