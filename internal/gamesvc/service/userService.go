package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pastanaga/killer-services/internal/gamesvc/models"
)

// UserService struct represents the user service layer
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService instance
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetOrCreateUser looks a user up by email and creates a PLAYER account if
// none exists. Used by the organizer roster flow, where accounts are
// provisioned alongside participants.
func (s *UserService) GetOrCreateUser(ctx context.Context, email, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	user := &models.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Role:  models.RolePlayer,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
