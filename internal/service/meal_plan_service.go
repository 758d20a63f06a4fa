package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Marga-Ghale/flatmeals-backend/internal/metrics"
	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/planner"
	"github.com/Marga-Ghale/flatmeals-backend/internal/repository"
	"github.com/Marga-Ghale/flatmeals-backend/internal/socket"
)

// ============================================
// Meal Plan Service
// ============================================

type MealPlanService interface {
	// Generate replaces the group's plan. Fails with ErrPlanLocked once locked.
	Generate(ctx context.Context, groupID string) (*models.MealPlan, error)
	// Lock freezes the plan. Locking twice keeps the first lockedAt;
	// locking without a plan is ErrInvalidState.
	Lock(ctx context.Context, groupID string) (*models.MealPlan, error)
}

type mealPlanService struct {
	groupRepo   repository.GroupRepository
	generator   *planner.Generator
	broadcaster *socket.Broadcaster
	now         func() time.Time
}

func NewMealPlanService(groupRepo repository.GroupRepository, generator *planner.Generator, broadcaster *socket.Broadcaster, now func() time.Time) MealPlanService {
	return &mealPlanService{
		groupRepo:   groupRepo,
		generator:   generator,
		broadcaster: broadcaster,
		now:         now,
	}
}

func (s *mealPlanService) Generate(ctx context.Context, groupID string) (*models.MealPlan, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	if group == nil {
		return nil, ErrNotFound
	}
	if group.MealPlan != nil && group.MealPlan.Locked {
		return nil, ErrPlanLocked
	}

	group.MealPlan = s.generator.Generate(group.Members, s.now())
	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	metrics.PlansGenerated.Inc()
	s.broadcaster.BroadcastPlanGenerated(groupID, group.MealPlan)
	slog.InfoContext(ctx, "Meal plan generated", "group_id", groupID, "pool_size", len(planner.CandidatePool(group.Members)))
	return group.MealPlan, nil
}

func (s *mealPlanService) Lock(ctx context.Context, groupID string) (*models.MealPlan, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("lock plan: %w", err)
	}
	if group == nil {
		return nil, ErrNotFound
	}
	if group.MealPlan == nil {
		return nil, fmt.Errorf("%w: no meal plan to lock", ErrInvalidState)
	}
	if group.MealPlan.Locked {
		return group.MealPlan, nil
	}

	lockedAt := s.now()
	group.MealPlan.Locked = true
	group.MealPlan.LockedAt = &lockedAt
	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("lock plan: %w", err)
	}

	metrics.PlansLocked.Inc()
	s.broadcaster.BroadcastPlanLocked(groupID, group.MealPlan)
	slog.InfoContext(ctx, "Meal plan locked", "group_id", groupID)
	return group.MealPlan, nil
}
