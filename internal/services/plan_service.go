package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mindarch/studyplan/internal/domain/plan"
	"github.com/mindarch/studyplan/internal/pkg/errors"
	"github.com/mindarch/studyplan/internal/pkg/logger"
	"github.com/mindarch/studyplan/internal/pkg/metrics"
)

const dateLayout = "2006-01-02"

// PlanService implements plan.Service
type PlanService struct {
	repo      plan.Repository
	generator plan.Generator
	logger    *logger.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(repo plan.Repository, gen plan.Generator, log *logger.Logger) plan.Service {
	return &PlanService{
		repo:      repo,
		generator: gen,
		logger:    log,
	}
}

// Generate validates params, invokes the provider and parses the result.
// The returned document is not persisted; saving is a separate call.
func (s *PlanService) Generate(ctx context.Context, params plan.GenerateParams) (*plan.Document, error) {
	start, err := time.Parse(dateLayout, params.StartDate)
	if err != nil {
		return nil, errors.Validation("startDate must be a valid date in YYYY-MM-DD form")
	}
	end, err := time.Parse(dateLayout, params.EndDate)
	if err != nil {
		return nil, errors.Validation("endDate must be a valid date in YYYY-MM-DD form")
	}

	days := Duration(start, end)
	if days < 1 {
		return nil, errors.Validation("End date must be after start date")
	}

	prompt := BuildPrompt(params, days)

	callStart := time.Now()
	raw, err := s.generator.GeneratePlan(ctx, prompt)
	metrics.ObserveGeneration(s.generator.Name(), time.Since(callStart), err)
	if err != nil {
		s.logger.ErrorWithErr(err, "Plan generation failed")
		return nil, errors.Generation(err)
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		s.logger.ErrorWithErr(err, "Provider returned malformed plan")
		return nil, errors.Generation(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"provider": s.generator.Name(),
		"days":     days,
		"subject":  params.Subject,
	}).Info("Plan generated")

	return doc, nil
}

// Save upserts the user's plan, replacing any previous one
func (s *PlanService) Save(ctx context.Context, userID int64, doc *plan.Document) error {
	if err := s.repo.Save(ctx, userID, doc); err != nil {
		s.logger.ErrorWithErr(err, "Failed to save plan")
		return err
	}

	s.logger.With("user_id", userID).Info("Plan saved")
	return nil
}

// Get returns the user's plan, or (nil, nil) when none is stored
func (s *PlanService) Get(ctx context.Context, userID int64) (*plan.Document, error) {
	return s.repo.Get(ctx, userID)
}

// Duration computes the inclusive day count between two calendar dates
func Duration(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// BuildPrompt composes the generation instruction from the validated
// parameters and the computed duration.
func BuildPrompt(params plan.GenerateParams, days int) string {
	return fmt.Sprintf(`Create a detailed study plan for: %s.
Goal: %s.
Difficulty Level: %s.
Duration: %d days (from %s to %s).
Daily availability: %d minutes.

Return a structured JSON response with a day-by-day breakdown.
Each day should have a specific theme and a list of actionable tasks.
The tasks should sum up approximately to the daily availability minutes.`,
		params.Subject, params.Goal, params.Difficulty,
		days, params.StartDate, params.EndDate, params.DailyMinutes)
}

// rawDocument mirrors plan.Document with pointer fields so missing
// mandatory keys are distinguishable from zero values.
type rawDocument struct {
	Overview *string  `json:"overview"`
	Schedule []rawDay `json:"schedule"`
}

type rawDay struct {
	DayOffset *int      `json:"dayOffset"`
	Theme     *string   `json:"theme"`
	Tasks     []rawTask `json:"tasks"`
}

type rawTask struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Minutes     *int    `json:"minutes"`
}

// ParseDocument parses provider output as a plan document, enforcing the
// declared schema shape. Semantic checks (offset ranges, minute sums) are
// deliberately not performed.
func ParseDocument(raw string) (*plan.Document, error) {
	var rd rawDocument
	if err := json.Unmarshal([]byte(raw), &rd); err != nil {
		return nil, fmt.Errorf("invalid plan JSON: %w", err)
	}

	if rd.Overview == nil {
		return nil, fmt.Errorf("plan is missing overview")
	}
	if rd.Schedule == nil {
		return nil, fmt.Errorf("plan is missing schedule")
	}

	doc := &plan.Document{
		Overview: *rd.Overview,
		Schedule: make([]plan.Day, 0, len(rd.Schedule)),
	}

	for i, d := range rd.Schedule {
		if d.DayOffset == nil || d.Theme == nil || d.Tasks == nil {
			return nil, fmt.Errorf("schedule entry %d is missing dayOffset, theme or tasks", i)
		}
		day := plan.Day{
			DayOffset: *d.DayOffset,
			Theme:     *d.Theme,
			Tasks:     make([]plan.Task, 0, len(d.Tasks)),
		}
		for j, t := range d.Tasks {
			if t.Title == nil || t.Description == nil || t.Minutes == nil {
				return nil, fmt.Errorf("task %d of schedule entry %d is missing title, description or minutes", j, i)
			}
			day.Tasks = append(day.Tasks, plan.Task{
				Title:       *t.Title,
				Description: *t.Description,
				Minutes:     *t.Minutes,
			})
		}
		doc.Schedule = append(doc.Schedule, day)
	}

	return doc, nil
}
