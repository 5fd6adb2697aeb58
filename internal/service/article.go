package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/repository"
	"github.com/sakif/news-api/internal/validation"
)

// ArticleService reads articles and adjusts their votes.
//
// It also needs the topic repository: the set of valid ?topic= values is
// whatever topics exist right now, so the allow-list is loaded per request
// rather than hard-coded.
type ArticleService struct {
	articles repository.ArticleRepository
	topics   repository.TopicRepository
	logger   *slog.Logger
}

func NewArticleService(articles repository.ArticleRepository, topics repository.TopicRepository, logger *slog.Logger) *ArticleService {
	return &ArticleService{articles: articles, topics: topics, logger: logger}
}

// List validates the query string and returns the matching articles. params
// is usually r.URL.Query().
func (s *ArticleService) List(ctx context.Context, params map[string][]string) ([]model.Article, error) {
	topics, err := s.topics.ListTopics(ctx)
	if err != nil {
		logFailure(s.logger, "failed to load topic allow-list", err)
		return nil, fmt.Errorf("loading topics: %w", err)
	}
	slugs := make([]string, len(topics))
	for i, t := range topics {
		slugs[i] = t.Slug
	}

	opts, err := validation.ArticleListQuery(params, slugs)
	if err != nil {
		return nil, err
	}

	articles, err := s.articles.ListArticles(ctx, opts)
	if err != nil {
		logFailure(s.logger, "failed to list articles", err)
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return articles, nil
}

// Get returns one article, body included.
func (s *ArticleService) Get(ctx context.Context, rawID string) (*model.Article, error) {
	id, err := validation.ID(rawID)
	if err != nil {
		return nil, err
	}

	article, err := s.articles.GetArticle(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to get article", err, slog.Int64("article_id", id))
		return nil, fmt.Errorf("getting article %d: %w", id, err)
	}
	return article, nil
}

// AdjustVotes applies inc_votes to an article. rawDelta is the decoded JSON
// value, so a missing field arrives as nil.
func (s *ArticleService) AdjustVotes(ctx context.Context, rawID string, rawDelta any) (*model.Article, error) {
	id, err := validation.ID(rawID)
	if err != nil {
		return nil, err
	}
	delta, err := validation.VoteDelta(rawDelta)
	if err != nil {
		return nil, err
	}

	article, err := s.articles.UpdateArticleVotes(ctx, id, delta)
	if err != nil {
		logFailure(s.logger, "failed to update votes", err, slog.Int64("article_id", id))
		return nil, fmt.Errorf("updating votes on article %d: %w", id, err)
	}

	s.logger.Info("article votes updated",
		slog.Int64("article_id", id),
		slog.Int("delta", delta),
		slog.Int("votes", article.Votes),
	)
	return article, nil
}
