package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/tables-trainer-bot/internal/domain/entities"
)

type UserService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// EnsureUser creates the user on first contact and refreshes chat details after.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, username string) error {
	created, err := s.userRepo.Save(ctx, entities.NewUser(userID, chatID, username))
	if err != nil {
		return err
	}

	if created {
		s.logger.Info("new user registered", zap.Int64("user_id", userID))
	}
	return nil
}
