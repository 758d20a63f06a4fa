package repository

import (
	"github.com/Marga-Ghale/flatmeals-backend/internal/kv"
)

// Key layout shared by every backend.
const (
	groupIndexKey = "groups:index"
)

func groupKey(groupID string) string {
	return "group:" + groupID
}

func userGroupKey(userID string) string {
	return "user:" + userID + ":group"
}

func headcountKey(groupID, date string) string {
	return "headcount:" + groupID + ":" + date
}

func notificationKey(groupID, date string) string {
	return "notification:" + groupID + ":" + date
}

type Repositories struct {
	GroupRepo        GroupRepository
	HeadcountRepo    HeadcountRepository
	NotificationRepo NotificationRepository
}

func NewRepositories(store kv.Store) *Repositories {
	return &Repositories{
		GroupRepo:        NewGroupRepository(store),
		HeadcountRepo:    NewHeadcountRepository(store),
		NotificationRepo: NewNotificationRepository(store),
	}
}
