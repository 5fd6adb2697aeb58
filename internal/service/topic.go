package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/repository"
)

type TopicService struct {
	repo   repository.TopicRepository
	logger *slog.Logger
}

func NewTopicService(repo repository.TopicRepository, logger *slog.Logger) *TopicService {
	return &TopicService{repo: repo, logger: logger}
}

func (s *TopicService) List(ctx context.Context) ([]model.Topic, error) {
	topics, err := s.repo.ListTopics(ctx)
	if err != nil {
		logFailure(s.logger, "failed to list topics", err)
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	return topics, nil
}
