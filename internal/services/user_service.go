package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"supaboard/internal/apperrors"
	"supaboard/internal/models"
)

type UserService struct {
	users  UserStore
	logger *zap.Logger
}

func NewUserService(users UserStore, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// GetMe returns the user with their projects, newest first.
func (s *UserService) GetMe(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindWithProjects(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load user", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to load user", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return user, nil
}
