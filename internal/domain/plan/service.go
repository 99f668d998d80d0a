package plan

import "context"

// Generator is the external text-generation capability, constrained to
// return JSON conforming to the Document schema. Substitutable with a
// deterministic fake in tests.
type Generator interface {
	// GeneratePlan sends the prompt and returns the raw JSON text.
	GeneratePlan(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider for logs and metrics.
	Name() string
}

// Service defines the interface for plan business logic
type Service interface {
	// Generate validates params, invokes the provider and returns the
	// parsed document. The result is not persisted.
	Generate(ctx context.Context, params GenerateParams) (*Document, error)

	// Save upserts the user's plan, replacing any previous one.
	Save(ctx context.Context, userID int64, doc *Document) error

	// Get returns the user's plan, or (nil, nil) when none is stored.
	Get(ctx context.Context, userID int64) (*Document, error)
}
