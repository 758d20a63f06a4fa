// internal/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/service"
	"github.com/Marga-Ghale/flatmeals-backend/internal/types"
)

// DemoAdminID owns the demo flat. Its group pointer marks the seed as done.
const DemoAdminID = "demo-marga"

type demoMember struct {
	id    string
	prefs models.MemberPreferences
}

var demoMembers = []demoMember{
	{DemoAdminID, models.MemberPreferences{
		Name:           "Marga",
		DietType:       types.DietNonVeg,
		RotiCount:      3,
		FavoriteDishes: []string{"Chicken Curry", "Dal Tadka", "Aloo Gobi"},
	}},
	{"demo-bipin", models.MemberPreferences{
		Name:           "Bipin",
		DietType:       types.DietVeg,
		RotiCount:      4,
		FavoriteDishes: []string{"Palak Paneer", "Rajma Chawal", "Chole Bhature"},
		Dislikes:       "Karela",
	}},
	{"demo-kritim", models.MemberPreferences{
		Name:           "Kritim",
		DietType:       types.DietNonVeg,
		RotiCount:      2,
		FavoriteDishes: []string{"Fish Fry", "Egg Curry", "Veg Pulao"},
	}},
}

// SeedDemo creates a "Demo Flat" with three members and a generated meal
// plan. It does nothing when the demo admin already has a group.
func SeedDemo(ctx context.Context, services *service.Services) (*models.Group, error) {
	existing, err := services.Group.GetForUser(ctx, DemoAdminID)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	if existing != nil {
		slog.Info("[Seed] Demo flat already exists, skipping", "group_id", existing.ID)
		return existing, nil
	}

	slog.Info("[Seed] 🌱 Creating demo flat...")

	admin := demoMembers[0]
	group, err := services.Group.Create(ctx, "Demo Flat", admin.id, admin.prefs)
	if err != nil {
		return nil, fmt.Errorf("seed: create group: %w", err)
	}
	for _, m := range demoMembers[1:] {
		if group, err = services.Group.Join(ctx, group.ID, m.id, m.prefs); err != nil {
			return nil, fmt.Errorf("seed: join %s: %w", m.id, err)
		}
	}

	plan, err := services.MealPlan.Generate(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("seed: generate plan: %w", err)
	}
	group.MealPlan = plan

	slog.Info("[Seed] ✅ Demo flat ready", "group_id", group.ID, "members", len(group.Members))
	return group, nil
}
