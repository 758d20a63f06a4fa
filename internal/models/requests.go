package models

// ============================================
// Request Models
// ============================================

// MemberPreferences is the creatorData / userData payload.
type MemberPreferences struct {
	Name           string   `json:"name"`
	DietType       string   `json:"dietType" binding:"required,diettype"`
	RotiCount      int      `json:"rotiCount" binding:"required,min=1,max=50"`
	FavoriteDishes []string `json:"favoriteDishes" binding:"dive,required"`
	Dislikes       string   `json:"dislikes"`
}

type CreateGroupRequest struct {
	Name        string             `json:"name" binding:"required"`
	CreatorID   string             `json:"creatorId" binding:"required"`
	CreatorData *MemberPreferences `json:"creatorData" binding:"required"`
}

type JoinGroupRequest struct {
	UserID   string             `json:"userId" binding:"required"`
	UserData *MemberPreferences `json:"userData" binding:"required"`
}

// UpdateSettingsRequest changes the deadlines; empty fields are left as is.
type UpdateSettingsRequest struct {
	LunchDeadline  string `json:"lunchDeadline" binding:"omitempty,hhmm"`
	DinnerDeadline string `json:"dinnerDeadline" binding:"omitempty,hhmm"`
}

type SubmitHeadcountRequest struct {
	UserID string `json:"userId" binding:"required"`
	Date   string `json:"date" binding:"required,isodate"`
	Lunch  bool   `json:"lunch"`
	Dinner bool   `json:"dinner"`
}

type NotifyCookRequest struct {
	Date    string        `json:"date" binding:"required,isodate"`
	Summary *DailySummary `json:"summary"`
}

// ============================================
// Response Models
// ============================================

type CreateGroupResponse struct {
	Success   bool   `json:"success"`
	GroupID   string `json:"groupId"`
	GroupData *Group `json:"groupData"`
}

type JoinGroupResponse struct {
	Success bool   `json:"success"`
	Group   *Group `json:"group"`
}

type UserGroupResponse struct {
	Group *Group `json:"group"`
}

type UpdateSettingsResponse struct {
	Success  bool          `json:"success"`
	Settings GroupSettings `json:"settings"`
}

type GeneratePlanResponse struct {
	Success  bool      `json:"success"`
	MealPlan *MealPlan `json:"mealPlan"`
}

type SubmitHeadcountResponse struct {
	Success   bool            `json:"success"`
	Headcount HeadcountRecord `json:"headcount"`
}

type NotifyCookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
