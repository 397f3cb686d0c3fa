package repositories

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
)

const settingsDocID = "main"

// SettingsRepository reads and writes the "appSettings" singleton document.
type SettingsRepository struct {
	client *firestore.Client
}

func NewSettingsRepository(client *firestore.Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

func (r *SettingsRepository) doc() *firestore.DocumentRef {
	return r.client.Collection("appSettings").Doc(settingsDocID)
}

// Get returns the settings document, or zero-valued defaults when it has
// never been written.
func (r *SettingsRepository) Get(ctx context.Context) (models.AppSettings, error) {
	snap, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.AppSettings{}, nil
		}
		return models.AppSettings{}, err
	}
	return decodeSettings(snap.Data()), nil
}

// decodeSettings reads the singleton through the raw accessors. The document
// predates the typed model: fees were once written as integers and the
// maintenance flag as a string, so typed decoding alone is not safe.
func decodeSettings(data map[string]interface{}) models.AppSettings {
	s := models.AppSettings{
		DeliveryFee:   docFloat(data, "deliveryFee"),
		MinOrderTotal: docFloat(data, "minOrderTotal"),
		OpenHours:     docString(data, "openHours"),
	}
	if v, ok := docBool(data, "maintenance"); ok {
		s.Maintenance = v
	}
	if t := docTime(data, "updatedAt"); t != nil {
		s.UpdatedAt = *t
	}
	return s
}

// Set merges the given settings into the document.
func (r *SettingsRepository) Set(ctx context.Context, s models.AppSettings) error {
	_, err := r.doc().Set(ctx, map[string]interface{}{
		"deliveryFee":   s.DeliveryFee,
		"minOrderTotal": s.MinOrderTotal,
		"openHours":     s.OpenHours,
		"maintenance":   s.Maintenance,
		"updatedAt":     firestore.ServerTimestamp,
	}, firestore.MergeAll)
	return err
}
