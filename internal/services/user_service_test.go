package services

import (
	"context"
	"testing"

	"github.com/mindarch/studyplan/internal/pkg/errors"
	"github.com/mindarch/studyplan/internal/pkg/logger"
	"github.com/mindarch/studyplan/internal/testutil"
)

// Low cost keeps bcrypt fast in tests
const testBcryptCost = 4

func TestUserService_Create(t *testing.T) {
	mockRepo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewUserService(mockRepo, log, testBcryptCost)

	ctx := context.Background()
	u, err := service.Create(ctx, "alice", "s3cret-pw")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if u.ID == 0 {
		t.Error("Create() returned zero ID")
	}
	if u.Username != "alice" {
		t.Errorf("Create() username = %v, want alice", u.Username)
	}
	if u.PasswordHash == "" || u.PasswordHash == "s3cret-pw" {
		t.Error("Create() must store a hash, never the plaintext password")
	}
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	mockRepo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewUserService(mockRepo, log, testBcryptCost)

	ctx := context.Background()
	first, err := service.Create(ctx, "bob", "password-one")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = service.Create(ctx, "bob", "password-two")
	if err == nil {
		t.Fatal("Create() with duplicate username expected error, got nil")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeConflict {
		t.Errorf("Create() error = %v, want conflict", err)
	}

	// The first account is unaffected
	got, err := service.Authenticate(ctx, "bob", "password-one")
	if err != nil {
		t.Fatalf("Authenticate() after duplicate attempt error = %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("Authenticate() ID = %v, want %v", got.ID, first.ID)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	mockRepo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	service := NewUserService(mockRepo, log, testBcryptCost)

	ctx := context.Background()
	created, err := service.Create(ctx, "carol", "correct-horse")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{
			name:     "correct credentials",
			username: "carol",
			password: "correct-horse",
			wantErr:  false,
		},
		{
			name:     "wrong password",
			username: "carol",
			password: "battery-staple",
			wantErr:  true,
		},
		{
			name:     "unknown user",
			username: "mallory",
			password: "correct-horse",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Authenticate(ctx, tt.username, tt.password)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				appErr, ok := err.(*errors.AppError)
				if !ok || appErr.Code != errors.ErrCodeUnauthorized {
					t.Errorf("Authenticate() error = %v, want unauthorized", err)
				}
				// Unknown user and wrong password must be
				// indistinguishable to the caller.
				if appErr.Message != "Invalid credentials" {
					t.Errorf("Authenticate() message = %q, want %q", appErr.Message, "Invalid credentials")
				}
				return
			}

			if u.ID != created.ID {
				t.Errorf("Authenticate() ID = %v, want %v", u.ID, created.ID)
			}
		})
	}
}
