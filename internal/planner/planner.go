// Package planner builds weekly meal plans from member preferences.
package planner

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/types"
)

// Rules are the dish rules the generator applies.
type Rules struct {
	NonVegKeywords []string
	DefaultLunch   string
	DefaultDinner  string
}

// Generator derives meal plans. It is safe for concurrent use.
type Generator struct {
	rules Rules

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from rng. Callers that need
// reproducible plans pass a rand.New(rand.NewSource(seed)).
func NewGenerator(rules Rules, rng *rand.Rand) *Generator {
	return &Generator{rules: rules, rng: rng}
}

// NewSeededGenerator seeds from seed, or from the clock when seed is 0.
func NewSeededGenerator(rules Rules, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewGenerator(rules, rand.New(rand.NewSource(seed)))
}

// Generate builds an unlocked six-day plan stamped with now. It does not
// look at any existing plan or its lock state.
func (g *Generator) Generate(members []models.Member, now time.Time) *models.MealPlan {
	pool := CandidatePool(members)
	weighted := pool
	if hasVegMember(members) {
		weighted = g.weightVeg(pool)
	}

	perm := g.shuffle(weighted)

	days := make(map[string]models.DayMeals, len(types.Weekdays))
	for i, day := range types.Weekdays {
		days[day] = models.DayMeals{
			Lunch:  pick(perm, 2*i, pool, 0, g.rules.DefaultLunch),
			Dinner: pick(perm, 2*i+1, pool, 1, g.rules.DefaultDinner),
		}
	}

	return &models.MealPlan{
		Days:        days,
		GeneratedAt: now,
		Locked:      false,
	}
}

// IsVeg reports whether dish contains none of the non-veg keywords.
func (g *Generator) IsVeg(dish string) bool {
	for _, kw := range g.rules.NonVegKeywords {
		if strings.Contains(dish, kw) {
			return false
		}
	}
	return true
}

// CandidatePool is the union of every member's favorite dishes in
// first-seen order.
func CandidatePool(members []models.Member) []string {
	seen := make(map[string]bool)
	var pool []string
	for _, m := range members {
		for _, dish := range m.FavoriteDishes {
			if seen[dish] {
				continue
			}
			seen[dish] = true
			pool = append(pool, dish)
		}
	}
	return pool
}

// weightVeg lists veg dishes twice followed by the rest once, so veg
// dishes are favoured without shutting out non-veg ones.
func (g *Generator) weightVeg(pool []string) []string {
	var veg, rest []string
	for _, dish := range pool {
		if g.IsVeg(dish) {
			veg = append(veg, dish)
		} else {
			rest = append(rest, dish)
		}
	}
	if len(veg) == 0 {
		return pool
	}

	weighted := make([]string, 0, 2*len(veg)+len(rest))
	weighted = append(weighted, veg...)
	weighted = append(weighted, veg...)
	weighted = append(weighted, rest...)
	return weighted
}

func (g *Generator) shuffle(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)

	g.mu.Lock()
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	g.mu.Unlock()
	return out
}

func hasVegMember(members []models.Member) bool {
	for _, m := range members {
		if m.DietType == types.DietVeg {
			return true
		}
	}
	return false
}

// pick returns perm[i], falling back to pool[fallback] and then def.
func pick(perm []string, i int, pool []string, fallback int, def string) string {
	if i < len(perm) && perm[i] != "" {
		return perm[i]
	}
	if fallback < len(pool) && pool[fallback] != "" {
		return pool[fallback]
	}
	return def
}
