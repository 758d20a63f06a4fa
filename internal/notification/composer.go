package notification

import (
	"fmt"

	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
)

const cookTemplate = `🍽️ *FlatMeals Order for %s*

🌞 *Lunch: %s*
👥 People: %d
🥖 Rotis: %d

🌙 *Dinner: %s*
👥 People: %d
🥖 Rotis: %d

Thanks! 🙏`

// Compose renders the cook-facing message for one date.
func Compose(date string, summary models.DailySummary) string {
	return fmt.Sprintf(cookTemplate,
		date,
		summary.Lunch.Dish, summary.Lunch.People, summary.Lunch.Rotis,
		summary.Dinner.Dish, summary.Dinner.People, summary.Dinner.Rotis,
	)
}
