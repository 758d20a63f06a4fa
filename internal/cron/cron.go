package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/Marga-Ghale/flatmeals-backend/internal/repository"
	"github.com/Marga-Ghale/flatmeals-backend/internal/service"
	"github.com/Marga-Ghale/flatmeals-backend/internal/types"
	"github.com/robfig/cron/v3"
)

// jobTimeout bounds one pass over all groups.
const jobTimeout = 50 * time.Second

// Scheduler sends cook notifications when a group's lunch or dinner
// deadline is reached.
type Scheduler struct {
	cron      *cron.Cron
	groupRepo repository.GroupRepository
	cook      service.CookService
	now       func() time.Time
}

// NewScheduler creates a new scheduler. Deadlines are compared against
// the server's local wall clock.
func NewScheduler(groupRepo repository.GroupRepository, cook service.CookService) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		groupRepo: groupRepo,
		cook:      cook,
		now:       time.Now,
	}
}

// SetClock overrides the time source.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	// Run every minute - deadlines are HH:MM
	if _, err := s.cron.AddFunc("* * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		s.RunDeadlineCheck(ctx)
	}); err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("[Cron] Scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("[Cron] Scheduler stopped")
}

// RunDeadlineCheck notifies the cook for every indexed group whose lunch or
// dinner deadline equals the current minute. It returns the number of
// notifications sent.
func (s *Scheduler) RunDeadlineCheck(ctx context.Context) int {
	now := s.now()
	clock := now.Format(types.ClockLayout)
	date := now.Format(types.DateLayout)

	ids, err := s.groupRepo.ListIDs(ctx)
	if err != nil {
		slog.Error("[Cron] Error listing groups", "error", err)
		return 0
	}

	sent := 0
	for _, id := range ids {
		group, err := s.groupRepo.FindByID(ctx, id)
		if err != nil {
			slog.Error("[Cron] Error loading group", "group_id", id, "error", err)
			continue
		}
		if group == nil {
			continue
		}

		var meal string
		switch clock {
		case group.Settings.LunchDeadline:
			meal = types.MealLunch
		case group.Settings.DinnerDeadline:
			meal = types.MealDinner
		default:
			continue
		}

		if _, err := s.cook.Notify(ctx, id, date, nil, service.TriggerScheduled); err != nil {
			slog.Error("[Cron] Error notifying cook", "group_id", id, "date", date, "meal", meal, "error", err)
			continue
		}
		slog.Info("[Cron] Sent deadline notification", "group_id", id, "date", date, "meal", meal)
		sent++
	}
	return sent
}
