package user

import "context"

// Service defines the interface for credential business logic
type Service interface {
	// Create registers a new account, storing a salted one-way hash of
	// the password. Fails with a conflict error on duplicate username.
	Create(ctx context.Context, username, password string) (*User, error)

	// Authenticate verifies a username/password pair. Absent users and
	// wrong passwords are indistinguishable to callers.
	Authenticate(ctx context.Context, username, password string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)
}
