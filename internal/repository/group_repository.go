package repository

import (
	"context"
	"fmt"

	"github.com/Marga-Ghale/flatmeals-backend/internal/kv"
	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
)

type GroupRepository interface {
	// FindByID returns nil, nil when the group does not exist.
	FindByID(ctx context.Context, groupID string) (*models.Group, error)
	Save(ctx context.Context, group *models.Group) error

	// FindGroupIDForUser returns "" when the user has no group pointer.
	FindGroupIDForUser(ctx context.Context, userID string) (string, error)
	SetUserGroup(ctx context.Context, userID, groupID string) error

	// ListIDs returns every group id registered in the index.
	ListIDs(ctx context.Context) ([]string, error)
	AddToIndex(ctx context.Context, groupID string) error
}

type kvGroupRepository struct {
	store kv.Store
}

func NewGroupRepository(store kv.Store) GroupRepository {
	return &kvGroupRepository{store: store}
}

func (r *kvGroupRepository) FindByID(ctx context.Context, groupID string) (*models.Group, error) {
	var group models.Group
	found, err := kv.GetJSON(ctx, r.store, groupKey(groupID), &group)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &group, nil
}

func (r *kvGroupRepository) Save(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		return fmt.Errorf("save group: empty id")
	}
	return kv.SetJSON(ctx, r.store, groupKey(group.ID), group)
}

func (r *kvGroupRepository) FindGroupIDForUser(ctx context.Context, userID string) (string, error) {
	var groupID string
	found, err := kv.GetJSON(ctx, r.store, userGroupKey(userID), &groupID)
	if err != nil || !found {
		return "", err
	}
	return groupID, nil
}

func (r *kvGroupRepository) SetUserGroup(ctx context.Context, userID, groupID string) error {
	return kv.SetJSON(ctx, r.store, userGroupKey(userID), groupID)
}

func (r *kvGroupRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if _, err := kv.GetJSON(ctx, r.store, groupIndexKey, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// AddToIndex is a read-modify-write on a single key; concurrent creates
// can drop an id from the index (but never from group storage).
func (r *kvGroupRepository) AddToIndex(ctx context.Context, groupID string) error {
	ids, err := r.ListIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == groupID {
			return nil
		}
	}
	return kv.SetJSON(ctx, r.store, groupIndexKey, append(ids, groupID))
}
