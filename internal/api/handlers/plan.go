package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mindarch/studyplan/internal/api/dto"
	"github.com/mindarch/studyplan/internal/api/middleware"
	"github.com/mindarch/studyplan/internal/domain/plan"
	"github.com/mindarch/studyplan/internal/pkg/errors"
	"github.com/mindarch/studyplan/internal/pkg/logger"
	"github.com/mindarch/studyplan/internal/pkg/utils"
	"github.com/mindarch/studyplan/internal/pkg/validator"
)

// PlanHandler handles plan retrieval, persistence and generation
type PlanHandler struct {
	planService plan.Service
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planService plan.Service, log *logger.Logger, val *validator.Validator) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		logger:      log,
		validator:   val,
	}
}

// Get returns the stored plan document, or null when none exists
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Authentication required"))
		return
	}

	doc, err := h.planService.Get(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to get plan")
		if appErr, ok := err.(*errors.AppError); ok {
			utils.WriteError(w, appErr)
		} else {
			utils.WriteError(w, errors.Internal("Failed to get plan", err))
		}
		return
	}

	// doc is nil when no plan is stored; encodes as JSON null
	utils.WriteJSON(w, http.StatusOK, doc)
}

// Save upserts the caller's plan document
func (h *PlanHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Authentication required"))
		return
	}

	var doc plan.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid plan document"))
		return
	}

	if err := h.planService.Save(r.Context(), userID, &doc); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			utils.WriteError(w, appErr)
		} else {
			utils.WriteError(w, errors.Internal("Failed to save plan", err))
		}
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Plan saved successfully")
}

// Generate produces a plan from the supplied parameters. The result is
// returned to the caller and not persisted.
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r); !ok {
		utils.WriteError(w, errors.Unauthorized("Authentication required"))
		return
	}

	var req dto.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if msgs := h.validator.Validate(req); len(msgs) > 0 {
		utils.WriteError(w, errors.Validation(strings.Join(msgs, "; ")))
		return
	}

	doc, err := h.planService.Generate(r.Context(), plan.GenerateParams{
		Subject:      req.Subject,
		Goal:         req.Goal,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		DailyMinutes: req.DailyMinutes,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			utils.WriteError(w, appErr)
		} else {
			utils.WriteError(w, errors.Internal("Failed to generate plan", err))
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, doc)
}
