package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Marga-Ghale/flatmeals-backend/internal/metrics"
	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/planner"
	"github.com/Marga-Ghale/flatmeals-backend/internal/repository"
	"github.com/Marga-Ghale/flatmeals-backend/internal/socket"
	"github.com/Marga-Ghale/flatmeals-backend/internal/types"
)

// ============================================
// Headcount Service
// ============================================

type HeadcountService interface {
	// Submit records userID's confirmation for date, replacing any earlier one.
	// Membership is not checked.
	Submit(ctx context.Context, groupID, date, userID string, lunch, dinner bool) (models.HeadcountRecord, error)
	Summarize(ctx context.Context, groupID, date string) (*models.DailySummary, error)
}

type headcountService struct {
	groupRepo     repository.GroupRepository
	headcountRepo repository.HeadcountRepository
	rules         planner.Rules
	broadcaster   *socket.Broadcaster
	now           func() time.Time
}

func NewHeadcountService(
	groupRepo repository.GroupRepository,
	headcountRepo repository.HeadcountRepository,
	rules planner.Rules,
	broadcaster *socket.Broadcaster,
	now func() time.Time,
) HeadcountService {
	return &headcountService{
		groupRepo:     groupRepo,
		headcountRepo: headcountRepo,
		rules:         rules,
		broadcaster:   broadcaster,
		now:           now,
	}
}

func (s *headcountService) Submit(ctx context.Context, groupID, date, userID string, lunch, dinner bool) (models.HeadcountRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	record, err := s.headcountRepo.Find(ctx, groupID, date)
	if err != nil {
		return nil, fmt.Errorf("submit headcount: %w", err)
	}

	record[userID] = models.HeadcountEntry{
		Lunch:       lunch,
		Dinner:      dinner,
		SubmittedAt: s.now(),
	}
	if err := s.headcountRepo.Save(ctx, groupID, date, record); err != nil {
		return nil, fmt.Errorf("submit headcount: %w", err)
	}

	metrics.HeadcountSubmissions.Inc()
	s.broadcaster.BroadcastHeadcountSubmitted(groupID, date, userID, lunch, dinner)
	slog.InfoContext(ctx, "Headcount submitted", "group_id", groupID, "date", date, "user_id", userID, "lunch", lunch, "dinner", dinner)
	return record, nil
}

func (s *headcountService) Summarize(ctx context.Context, groupID, date string) (*models.DailySummary, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("summarize headcount: %w", err)
	}
	if group == nil {
		return nil, ErrNotFound
	}

	record, err := s.headcountRepo.Find(ctx, groupID, date)
	if err != nil {
		return nil, fmt.Errorf("summarize headcount: %w", err)
	}

	summary := &models.DailySummary{}
	summary.Lunch.Dish, summary.Dinner.Dish = s.dishesFor(group, day)

	for userID, entry := range record {
		rotis := DefaultRotiCount
		if m := group.FindMember(userID); m != nil && m.RotiCount > 0 {
			rotis = m.RotiCount
		}
		if entry.Lunch {
			summary.Lunch.People++
			summary.Lunch.Rotis += rotis
		}
		if entry.Dinner {
			summary.Dinner.People++
			summary.Dinner.Rotis += rotis
		}
	}
	return summary, nil
}

func (s *headcountService) dishesFor(group *models.Group, day time.Time) (string, string) {
	lunch, dinner := s.rules.DefaultLunch, s.rules.DefaultDinner
	if group.MealPlan == nil {
		return lunch, dinner
	}
	meals, ok := group.MealPlan.Days[WeekdayName(day)]
	if !ok {
		return lunch, dinner
	}
	if meals.Lunch != "" {
		lunch = meals.Lunch
	}
	if meals.Dinner != "" {
		dinner = meals.Dinner
	}
	return lunch, dinner
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(types.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return t, nil
}

// WeekdayName returns the English three-letter weekday ("Mon", "Tue", ...).
func WeekdayName(t time.Time) string {
	return t.Weekday().String()[:3]
}
