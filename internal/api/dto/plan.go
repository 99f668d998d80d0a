package dto

// GenerateRequest carries the user-supplied parameters for plan generation
type GenerateRequest struct {
	Subject      string `json:"subject" validate:"required"`
	Goal         string `json:"goal" validate:"required"`
	StartDate    string `json:"startDate" validate:"required"`
	EndDate      string `json:"endDate" validate:"required"`
	DailyMinutes int    `json:"dailyMinutes" validate:"required,gt=0"`
	Difficulty   string `json:"difficulty" validate:"required"`
}
