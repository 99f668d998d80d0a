package user

import "time"

// User represents an account in the system. Records are immutable after
// signup apart from any future password-change flow.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Not exposed in JSON
	CreatedAt    time.Time `json:"created_at"`
}
