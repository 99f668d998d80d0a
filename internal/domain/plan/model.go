package plan

// Task is a single actionable item within a study day
type Task struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Minutes     int    `json:"minutes"`
}

// Day is one entry in the schedule. DayOffset is 0 for the start date,
// 1 for the next day, and so on.
type Day struct {
	DayOffset int    `json:"dayOffset"`
	Theme     string `json:"theme"`
	Tasks     []Task `json:"tasks"`
}

// Document is the full plan: an overview plus a chronological day-by-day
// schedule. It round-trips through persistence structurally unchanged.
type Document struct {
	Overview string `json:"overview"`
	Schedule []Day  `json:"schedule"`
}

// GenerateParams are the user-supplied inputs to plan generation
type GenerateParams struct {
	Subject      string
	Goal         string
	StartDate    string // YYYY-MM-DD
	EndDate      string // YYYY-MM-DD
	DailyMinutes int
	Difficulty   string
}
