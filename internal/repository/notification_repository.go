package repository

import (
	"context"

	"github.com/Marga-Ghale/flatmeals-backend/internal/kv"
	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
)

// NotificationRepository keeps the last cook notification per group and date.
type NotificationRepository interface {
	Save(ctx context.Context, groupID, date string, n *models.Notification) error
	// Find returns nil, nil when no notification was sent for the date.
	Find(ctx context.Context, groupID, date string) (*models.Notification, error)
}

type kvNotificationRepository struct {
	store kv.Store
}

func NewNotificationRepository(store kv.Store) NotificationRepository {
	return &kvNotificationRepository{store: store}
}

func (r *kvNotificationRepository) Save(ctx context.Context, groupID, date string, n *models.Notification) error {
	return kv.SetJSON(ctx, r.store, notificationKey(groupID, date), n)
}

func (r *kvNotificationRepository) Find(ctx context.Context, groupID, date string) (*models.Notification, error) {
	var n models.Notification
	found, err := kv.GetJSON(ctx, r.store, notificationKey(groupID, date), &n)
	if err != nil || !found {
		return nil, err
	}
	return &n, nil
}
