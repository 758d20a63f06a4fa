package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Marga-Ghale/flatmeals-backend/internal/kv"
	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/notification"
	"github.com/Marga-Ghale/flatmeals-backend/internal/planner"
	"github.com/Marga-Ghale/flatmeals-backend/internal/repository"
	"github.com/Marga-Ghale/flatmeals-backend/internal/service"
	"github.com/Marga-Ghale/flatmeals-backend/internal/types"
)

func setupScheduler(t *testing.T) (*Scheduler, *service.Services, *time.Time) {
	t.Helper()

	rules := planner.Rules{DefaultLunch: "Dal Chawal 🍛", DefaultDinner: "Rajma Chawal 🍛"}
	repos := repository.NewRepositories(kv.NewMemoryStore())
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	services := service.NewServices(&service.ServiceDeps{
		Repos:     repos,
		Generator: planner.NewSeededGenerator(rules, 1),
		Rules:     rules,
		Deadlines: service.Deadlines{Lunch: "10:00", Dinner: "16:00"},
		NotifSvc:  notification.NewService(repos.NotificationRepo, nil),
		Clock:     clock,
	})

	s := NewScheduler(repos.GroupRepo, services.Cook)
	s.SetClock(clock)
	return s, services, &now
}

func TestRunDeadlineCheck(t *testing.T) {
	s, services, now := setupScheduler(t)
	ctx := context.Background()

	prefs := models.MemberPreferences{DietType: types.DietVeg, RotiCount: 2}
	early, err := services.Group.Create(ctx, "Early", "u1", prefs)
	if err != nil {
		t.Fatal(err)
	}
	late, err := services.Group.Create(ctx, "Late", "u2", prefs)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := services.Group.UpdateSettings(ctx, late.ID, models.GroupSettings{LunchDeadline: "11:30"}); err != nil {
		t.Fatal(err)
	}
	if _, err := services.Headcount.Submit(ctx, early.ID, "2024-01-15", "u1", true, true); err != nil {
		t.Fatal(err)
	}

	if got := s.RunDeadlineCheck(ctx); got != 0 {
		t.Errorf("09:00: sent %d, want 0", got)
	}

	*now = time.Date(2024, 1, 15, 10, 0, 30, 0, time.UTC)
	if got := s.RunDeadlineCheck(ctx); got != 1 {
		t.Fatalf("10:00: sent %d, want 1", got)
	}
	n, err := services.Cook.GetNotification(ctx, early.ID, "2024-01-15")
	if err != nil {
		t.Fatalf("expected notification for early group: %v", err)
	}
	if n.Summary.Lunch.People != 1 || n.Summary.Lunch.Rotis != 2 {
		t.Errorf("unexpected summary: %+v", n.Summary)
	}
	if _, err := services.Cook.GetNotification(ctx, late.ID, "2024-01-15"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("late group should not be notified yet, got %v", err)
	}

	*now = time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC)
	if got := s.RunDeadlineCheck(ctx); got != 2 {
		t.Errorf("16:00: sent %d, want 2 (both dinner deadlines)", got)
	}
}

func TestRunDeadlineCheckNoGroups(t *testing.T) {
	s, _, _ := setupScheduler(t)
	if got := s.RunDeadlineCheck(context.Background()); got != 0 {
		t.Errorf("sent %d, want 0", got)
	}
}

func TestStartStop(t *testing.T) {
	s, _, _ := setupScheduler(t)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.Stop()
}
