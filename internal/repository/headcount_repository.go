package repository

import (
	"context"

	"github.com/Marga-Ghale/flatmeals-backend/internal/kv"
	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
)

type HeadcountRepository interface {
	// Find returns an empty record when nothing was submitted for the date.
	Find(ctx context.Context, groupID, date string) (models.HeadcountRecord, error)
	Save(ctx context.Context, groupID, date string, record models.HeadcountRecord) error
}

type kvHeadcountRepository struct {
	store kv.Store
}

func NewHeadcountRepository(store kv.Store) HeadcountRepository {
	return &kvHeadcountRepository{store: store}
}

func (r *kvHeadcountRepository) Find(ctx context.Context, groupID, date string) (models.HeadcountRecord, error) {
	record := models.HeadcountRecord{}
	if _, err := kv.GetJSON(ctx, r.store, headcountKey(groupID, date), &record); err != nil {
		return nil, err
	}
	if record == nil {
		record = models.HeadcountRecord{}
	}
	return record, nil
}

func (r *kvHeadcountRepository) Save(ctx context.Context, groupID, date string, record models.HeadcountRecord) error {
	return kv.SetJSON(ctx, r.store, headcountKey(groupID, date), record)
}
