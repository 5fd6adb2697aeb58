package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/repository"
)

type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		logFailure(s.logger, "failed to list users", err)
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
