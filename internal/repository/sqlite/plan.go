package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mindarch/studyplan/internal/domain/plan"
	"github.com/mindarch/studyplan/internal/pkg/errors"
)

// PlanRepository implements plan.Repository. Documents are stored
// serialized as JSON text, one row per user.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *sql.DB) plan.Repository {
	return &PlanRepository{db: db}
}

// Save upserts the plan for the given user, replacing any previous
// document entirely.
func (r *PlanRepository) Save(ctx context.Context, userID int64, doc *plan.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Internal("Failed to serialize plan", err)
	}

	var existingID int64
	err = r.db.QueryRowContext(ctx, "SELECT id FROM plans WHERE user_id = ?", userID).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		_, err = r.db.ExecContext(ctx,
			"INSERT INTO plans (user_id, plan_data) VALUES (?, ?)", userID, string(data))
	case err != nil:
		return errors.DatabaseError("Failed to look up plan", err)
	default:
		_, err = r.db.ExecContext(ctx,
			"UPDATE plans SET plan_data = ? WHERE user_id = ?", string(data), userID)
	}

	if err != nil {
		return errors.DatabaseError("Failed to save plan", err)
	}
	return nil
}

// Get returns the stored plan, or (nil, nil) when the user has none
func (r *PlanRepository) Get(ctx context.Context, userID int64) (*plan.Document, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		"SELECT plan_data FROM plans WHERE user_id = ?", userID).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get plan", err)
	}

	var doc plan.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, errors.Internal("Failed to deserialize plan", err)
	}
	return &doc, nil
}
