package repositories

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
)

// TokenRepository reads and writes the "fcmTokens" collection. Documents are
// keyed by the token string so registration and rotation are both a single
// upsert.
type TokenRepository struct {
	client *firestore.Client
}

func NewTokenRepository(client *firestore.Client) *TokenRepository {
	return &TokenRepository{client: client}
}

func (r *TokenRepository) col() *firestore.CollectionRef {
	return r.client.Collection("fcmTokens")
}

// Register upserts a token for a user.
func (r *TokenRepository) Register(ctx context.Context, t models.FCMToken) error {
	_, err := r.col().Doc(t.Token).Set(ctx, map[string]interface{}{
		"token":     t.Token,
		"uid":       t.UID,
		"platform":  t.Platform,
		"updatedAt": firestore.ServerTimestamp,
	})
	return err
}

// TokensForUser returns every registered token of one user.
func (r *TokenRepository) TokensForUser(ctx context.Context, uid string) ([]string, error) {
	snaps, err := r.col().Where("uid", "==", uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	tokens := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		var t models.FCMToken
		if err := snap.DataTo(&t); err != nil {
			continue
		}
		if t.Token != "" {
			tokens = append(tokens, t.Token)
		}
	}
	return tokens, nil
}

// AllTokens returns every registered token, for promotional broadcasts.
func (r *TokenRepository) AllTokens(ctx context.Context) ([]string, error) {
	snaps, err := r.col().Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	tokens := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		var t models.FCMToken
		if err := snap.DataTo(&t); err != nil {
			continue
		}
		if t.Token != "" {
			tokens = append(tokens, t.Token)
		}
	}
	return tokens, nil
}

// Remove deletes a token document, used when the provider reports the token
// is no longer registered.
func (r *TokenRepository) Remove(ctx context.Context, token string) error {
	_, err := r.col().Doc(token).Delete(ctx)
	return err
}
