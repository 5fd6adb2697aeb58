package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/repository"
	"github.com/sakif/news-api/internal/validation"
)

type CommentService struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
	logger   *slog.Logger
}

func NewCommentService(articles repository.ArticleRepository, comments repository.CommentRepository, logger *slog.Logger) *CommentService {
	return &CommentService{articles: articles, comments: comments, logger: logger}
}

// ListForArticle returns an article's comments, newest first.
//
// An article with no comments and a missing article both produce zero
// comment rows, so the article is looked up too. The two queries are
// independent and run concurrently; the first failure cancels the other.
func (s *CommentService) ListForArticle(ctx context.Context, rawID string) ([]model.Comment, error) {
	id, err := validation.ID(rawID)
	if err != nil {
		return nil, err
	}

	var comments []model.Comment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.articles.GetArticle(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.ListComments(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		logFailure(s.logger, "failed to list comments", err, slog.Int64("article_id", id))
		return nil, fmt.Errorf("listing comments for article %d: %w", id, err)
	}
	return comments, nil
}

// Add validates and stores a new comment. An unknown article or username is
// reported by the store as a foreign-key violation.
func (s *CommentService) Add(ctx context.Context, rawID string, username, body any) (*model.Comment, error) {
	id, err := validation.ID(rawID)
	if err != nil {
		return nil, err
	}
	user, text, err := validation.NewComment(username, body)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.InsertComment(ctx, id, user, text)
	if err != nil {
		logFailure(s.logger, "failed to add comment", err,
			slog.Int64("article_id", id),
			slog.String("username", user),
		)
		return nil, fmt.Errorf("adding comment to article %d: %w", id, err)
	}

	s.logger.Info("comment added",
		slog.Int64("comment_id", comment.CommentID),
		slog.Int64("article_id", id),
		slog.String("username", user),
	)
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, rawID string) error {
	id, err := validation.ID(rawID)
	if err != nil {
		return err
	}

	if err := s.comments.DeleteComment(ctx, id); err != nil {
		logFailure(s.logger, "failed to delete comment", err, slog.Int64("comment_id", id))
		return fmt.Errorf("deleting comment %d: %w", id, err)
	}

	s.logger.Info("comment deleted", slog.Int64("comment_id", id))
	return nil
}
