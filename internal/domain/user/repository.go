package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user. Returns a conflict error when the
	// username is already taken (case-sensitive exact match).
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByUsername retrieves a user by exact username
	GetByUsername(ctx context.Context, username string) (*User, error)
}
