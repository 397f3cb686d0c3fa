package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
)

const (
	userCacheTTL     = 60 * time.Second
	userFetchTimeout = 2500 * time.Millisecond
)

var (
	// ErrUserNotFound means the profile document does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserFetchTimeout means the remote fetch exceeded its wall-clock
	// bound. Callers translate it to a "check your connection" message.
	ErrUserFetchTimeout = errors.New("user fetch timed out")
)

type cachedUser struct {
	user    models.User
	fetched time.Time
}

// UserRepository reads and writes the "users" collection with a short-lived
// per-UID cache in front of it. The cache is unbounded and never swept;
// stale entries are overwritten on the next miss.
type UserRepository struct {
	client *firestore.Client

	mu    sync.RWMutex
	cache map[string]cachedUser

	// Swapped out by tests.
	fetch func(ctx context.Context, uid string) (*models.User, error)
	now   func() time.Time
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	r := &UserRepository{
		client: client,
		cache:  make(map[string]cachedUser),
		now:    time.Now,
	}
	r.fetch = r.fetchRemote
	return r
}

func (r *UserRepository) col() *firestore.CollectionRef {
	return r.client.Collection("users")
}

// GetUser returns the profile for uid, served from cache while the entry is
// younger than 60 seconds. A remote fetch is bounded by a 2.5s timeout; on
// expiry the cache is left untouched and ErrUserFetchTimeout is returned.
func (r *UserRepository) GetUser(ctx context.Context, uid string) (*models.User, error) {
	r.mu.RLock()
	entry, ok := r.cache[uid]
	r.mu.RUnlock()
	if ok && r.now().Sub(entry.fetched) < userCacheTTL {
		u := entry.user
		return &u, nil
	}

	return r.refresh(ctx, uid)
}

// RefreshUser bypasses the cache and forces a remote read, repopulating the
// entry on success.
func (r *UserRepository) RefreshUser(ctx context.Context, uid string) (*models.User, error) {
	r.Invalidate(uid)
	return r.refresh(ctx, uid)
}

func (r *UserRepository) refresh(ctx context.Context, uid string) (*models.User, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, userFetchTimeout)
	defer cancel()

	user, err := r.fetch(fetchCtx, uid)
	if err != nil {
		// The caller's own cancellation propagates as-is; only the local
		// deadline is translated to a timeout result.
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, ErrUserFetchTimeout
		}
		return nil, err
	}

	r.mu.Lock()
	r.cache[uid] = cachedUser{user: *user, fetched: r.now()}
	r.mu.Unlock()

	out := *user
	return &out, nil
}

// Invalidate removes the cache entry for uid so the next read goes remote.
// Must be called after any profile mutation.
func (r *UserRepository) Invalidate(uid string) {
	r.mu.Lock()
	delete(r.cache, uid)
	r.mu.Unlock()
}

func (r *UserRepository) fetchRemote(ctx context.Context, uid string) (*models.User, error) {
	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrUserNotFound
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, err
	}
	user.UID = snap.Ref.ID
	return &user, nil
}

// UpdateUser merges the given fields into the profile document and drops the
// cache entry so the next read observes the change.
func (r *UserRepository) UpdateUser(ctx context.Context, uid string, updates []firestore.Update) error {
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
	if _, err := r.col().Doc(uid).Update(ctx, updates); err != nil {
		return err
	}
	r.Invalidate(uid)
	return nil
}

// CreateUser writes a fresh profile document keyed by uid.
func (r *UserRepository) CreateUser(ctx context.Context, user models.User) error {
	user.CreatedAt = r.now()
	user.UpdatedAt = user.CreatedAt
	if _, err := r.col().Doc(user.UID).Set(ctx, user); err != nil {
		return err
	}
	r.Invalidate(user.UID)
	return nil
}

// ListUsers returns every profile document. Admin only.
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	snaps, err := r.col().Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(snaps))
	for _, snap := range snaps {
		var u models.User
		if err := snap.DataTo(&u); err != nil {
			continue
		}
		u.UID = snap.Ref.ID
		users = append(users, u)
	}
	return users, nil
}
