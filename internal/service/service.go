package service

import (
	"errors"
	"time"

	"github.com/Marga-Ghale/flatmeals-backend/internal/notification"
	"github.com/Marga-Ghale/flatmeals-backend/internal/planner"
	"github.com/Marga-Ghale/flatmeals-backend/internal/repository"
	"github.com/Marga-Ghale/flatmeals-backend/internal/socket"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("resource already exists")
	ErrInvalidState = errors.New("invalid state")
	ErrPlanLocked   = errors.New("meal plan is locked")
)

// DefaultRotiCount is used for confirmations from users missing from the group.
const DefaultRotiCount = 3

// ============================================
// Services Container
// ============================================

type Services struct {
	Group     GroupService
	MealPlan  MealPlanService
	Headcount HeadcountService
	Cook      CookService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Repos       *repository.Repositories
	Generator   *planner.Generator
	Rules       planner.Rules
	Deadlines   Deadlines
	NotifSvc    *notification.Service
	Broadcaster *socket.Broadcaster
	// Clock defaults to time.Now in UTC.
	Clock func() time.Time
}

// Deadlines are the settings given to new groups.
type Deadlines struct {
	Lunch  string
	Dinner string
}

func NewServices(deps *ServiceDeps) *Services {
	clock := deps.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}

	headcount := NewHeadcountService(deps.Repos.GroupRepo, deps.Repos.HeadcountRepo, deps.Rules, deps.Broadcaster, clock)

	return &Services{
		Group:     NewGroupService(deps.Repos.GroupRepo, deps.Deadlines, deps.Broadcaster, clock),
		MealPlan:  NewMealPlanService(deps.Repos.GroupRepo, deps.Generator, deps.Broadcaster, clock),
		Headcount: headcount,
		Cook:      NewCookService(headcount, deps.NotifSvc, deps.Broadcaster),
	}
}
