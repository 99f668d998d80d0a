package plan

import "context"

// Repository defines the interface for plan persistence. At most one plan
// exists per user; Save replaces any prior document entirely.
type Repository interface {
	// Save upserts the plan for the given user. Last write wins.
	Save(ctx context.Context, userID int64, doc *Document) error

	// Get returns the stored plan, or (nil, nil) when the user has none.
	Get(ctx context.Context, userID int64) (*Document, error)
}
