package models

import "time"

// ============================================
// Group Models
// ============================================

type Member struct {
	ID             string   `json:"id"`
	Name           string   `json:"name,omitempty"`
	DietType       string   `json:"dietType"`
	RotiCount      int      `json:"rotiCount"`
	FavoriteDishes []string `json:"favoriteDishes"`
	Dislikes       string   `json:"dislikes"`
	Role           string   `json:"role"`
}

type GroupSettings struct {
	LunchDeadline  string `json:"lunchDeadline"`
	DinnerDeadline string `json:"dinnerDeadline"`
}

type Group struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"createdAt"`
	Members   []Member      `json:"members"`
	MealPlan  *MealPlan     `json:"mealPlan"`
	Settings  GroupSettings `json:"settings"`
}

// FindMember returns the member with the given id, or nil.
func (g *Group) FindMember(userID string) *Member {
	for i := range g.Members {
		if g.Members[i].ID == userID {
			return &g.Members[i]
		}
	}
	return nil
}

// ============================================
// Meal Plan Models
// ============================================

type DayMeals struct {
	Lunch  string `json:"lunch"`
	Dinner string `json:"dinner"`
}

type MealPlan struct {
	Days        map[string]DayMeals `json:"days"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Locked      bool                `json:"locked"`
	LockedAt    *time.Time          `json:"lockedAt,omitempty"`
}

// ============================================
// Headcount Models
// ============================================

type HeadcountEntry struct {
	Lunch       bool      `json:"lunch"`
	Dinner      bool      `json:"dinner"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// HeadcountRecord maps member id to that member's confirmation for one date.
type HeadcountRecord map[string]HeadcountEntry

type MealSummary struct {
	Dish   string `json:"dish"`
	People int    `json:"people"`
	Rotis  int    `json:"rotis"`
}

type DailySummary struct {
	Lunch  MealSummary `json:"lunch"`
	Dinner MealSummary `json:"dinner"`
}

// ============================================
// Cook Notification Models
// ============================================

type Notification struct {
	Message string       `json:"message"`
	SentAt  time.Time    `json:"sentAt"`
	Summary DailySummary `json:"summary"`
}
