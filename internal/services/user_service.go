package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/mindarch/studyplan/internal/domain/user"
	"github.com/mindarch/studyplan/internal/pkg/errors"
	"github.com/mindarch/studyplan/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo       user.Repository
	logger     *logger.Logger
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, log *logger.Logger, bcryptCost int) user.Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		repo:       repo,
		logger:     log,
		bcryptCost: bcryptCost,
	}
}

// Create registers a new account with a bcrypt hash of the password
func (s *UserService) Create(ctx context.Context, username, password string) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Username:     username,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":  u.ID,
		"username": u.Username,
	}).Info("User created")

	return u, nil
}

// Authenticate verifies a username/password pair. An absent user and a
// wrong password both yield the same unauthorized error so callers cannot
// enumerate usernames.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*user.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, errors.Unauthorized("Invalid credentials")
	}

	return u, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}
