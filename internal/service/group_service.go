package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Marga-Ghale/flatmeals-backend/internal/metrics"
	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/repository"
	"github.com/Marga-Ghale/flatmeals-backend/internal/socket"
	"github.com/Marga-Ghale/flatmeals-backend/internal/types"
	"github.com/google/uuid"
)

// ============================================
// Group Service
// ============================================

type GroupService interface {
	Create(ctx context.Context, name, creatorID string, prefs models.MemberPreferences) (*models.Group, error)
	Join(ctx context.Context, groupID, userID string, prefs models.MemberPreferences) (*models.Group, error)
	// GetForUser returns nil, nil when the user has no group.
	GetForUser(ctx context.Context, userID string) (*models.Group, error)
	Get(ctx context.Context, groupID string) (*models.Group, error)
	// UpdateSettings replaces the non-empty deadlines in settings.
	UpdateSettings(ctx context.Context, groupID string, settings models.GroupSettings) (*models.Group, error)
}

type groupService struct {
	groupRepo   repository.GroupRepository
	deadlines   Deadlines
	broadcaster *socket.Broadcaster
	now         func() time.Time
}

func NewGroupService(groupRepo repository.GroupRepository, deadlines Deadlines, broadcaster *socket.Broadcaster, now func() time.Time) GroupService {
	return &groupService{
		groupRepo:   groupRepo,
		deadlines:   deadlines,
		broadcaster: broadcaster,
		now:         now,
	}
}

func (s *groupService) Create(ctx context.Context, name, creatorID string, prefs models.MemberPreferences) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(creatorID) == "" {
		return nil, fmt.Errorf("%w: name and creatorId are required", ErrInvalidInput)
	}
	if err := validatePreferences(prefs); err != nil {
		return nil, err
	}

	now := s.now()
	group := &models.Group{
		ID:        newGroupID(now),
		Name:      name,
		CreatedAt: now,
		Members:   []models.Member{newMember(creatorID, prefs, types.RoleAdmin)},
		Settings: models.GroupSettings{
			LunchDeadline:  s.deadlines.Lunch,
			DinnerDeadline: s.deadlines.Dinner,
		},
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	if err := s.groupRepo.SetUserGroup(ctx, creatorID, group.ID); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	if err := s.groupRepo.AddToIndex(ctx, group.ID); err != nil {
		// the group is usable without the index; only scheduled notifications miss it
		slog.WarnContext(ctx, "failed to index group", "group_id", group.ID, "error", err)
	}

	metrics.GroupsCreated.Inc()
	slog.InfoContext(ctx, "Group created", "group_id", group.ID, "creator_id", creatorID)
	return group, nil
}

// Join appends userID as a regular member. A user already in the group
// gets ErrConflict and nothing is written.
func (s *groupService) Join(ctx context.Context, groupID, userID string, prefs models.MemberPreferences) (*models.Group, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if err := validatePreferences(prefs); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("join group: %w", err)
	}
	if group == nil {
		return nil, ErrNotFound
	}
	if group.FindMember(userID) != nil {
		return nil, ErrConflict
	}

	member := newMember(userID, prefs, types.RoleMember)
	group.Members = append(group.Members, member)

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("join group: %w", err)
	}
	if err := s.groupRepo.SetUserGroup(ctx, userID, groupID); err != nil {
		return nil, fmt.Errorf("join group: %w", err)
	}

	s.broadcaster.BroadcastMemberJoined(groupID, member)
	slog.InfoContext(ctx, "Member joined group", "group_id", groupID, "user_id", userID, "members_count", len(group.Members))
	return group, nil
}

func (s *groupService) GetForUser(ctx context.Context, userID string) (*models.Group, error) {
	groupID, err := s.groupRepo.FindGroupIDForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user group: %w", err)
	}
	if groupID == "" {
		return nil, nil
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get user group: %w", err)
	}
	return group, nil
}

func (s *groupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if group == nil {
		return nil, ErrNotFound
	}
	return group, nil
}

func (s *groupService) UpdateSettings(ctx context.Context, groupID string, settings models.GroupSettings) (*models.Group, error) {
	for _, d := range []string{settings.LunchDeadline, settings.DinnerDeadline} {
		if d != "" && !types.IsHHMM(d) {
			return nil, fmt.Errorf("%w: deadline %q must be HH:MM", ErrInvalidInput, d)
		}
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	if group == nil {
		return nil, ErrNotFound
	}

	if settings.LunchDeadline != "" {
		group.Settings.LunchDeadline = settings.LunchDeadline
	}
	if settings.DinnerDeadline != "" {
		group.Settings.DinnerDeadline = settings.DinnerDeadline
	}
	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	slog.InfoContext(ctx, "Group settings updated", "group_id", groupID,
		"lunch_deadline", group.Settings.LunchDeadline, "dinner_deadline", group.Settings.DinnerDeadline)
	return group, nil
}

func validatePreferences(prefs models.MemberPreferences) error {
	if !types.IsValidDietType(prefs.DietType) {
		return fmt.Errorf("%w: dietType must be one of %v", ErrInvalidInput, types.ValidDietTypes)
	}
	if prefs.RotiCount < 1 {
		return fmt.Errorf("%w: rotiCount must be at least 1", ErrInvalidInput)
	}
	return nil
}

func newMember(id string, prefs models.MemberPreferences, role string) models.Member {
	dishes := make([]string, 0, len(prefs.FavoriteDishes))
	seen := make(map[string]bool)
	for _, d := range prefs.FavoriteDishes {
		d = strings.TrimSpace(d)
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		dishes = append(dishes, d)
	}

	return models.Member{
		ID:             id,
		Name:           prefs.Name,
		DietType:       prefs.DietType,
		RotiCount:      prefs.RotiCount,
		FavoriteDishes: dishes,
		Dislikes:       prefs.Dislikes,
		Role:           role,
	}
}

func newGroupID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("group_%d_%s", now.UnixMilli(), suffix)
}
