package types

import "time"

// Diet types
const (
	DietVeg    = "veg"
	DietNonVeg = "non-veg"
)

// Group member roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Meals
const (
	MealLunch  = "lunch"
	MealDinner = "dinner"
)

// DateLayout is the ISO calendar date used in headcount and notification keys.
const DateLayout = "2006-01-02"

// ClockLayout is the 24h "HH:MM" used for meal deadlines.
const ClockLayout = "15:04"

// Weekdays covered by a meal plan, in plan order.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var ValidDietTypes = []string{DietVeg, DietNonVeg}

func IsValidDietType(diet string) bool {
	for _, d := range ValidDietTypes {
		if d == diet {
			return true
		}
	}
	return false
}

// IsHHMM reports whether s is a zero-padded 24h time such as "09:30".
func IsHHMM(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

func IsISODate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
