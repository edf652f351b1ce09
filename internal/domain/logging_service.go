package domain

import (
	"context"
	"errors"
	"log/slog"
)

type loggingBlogService struct {
	logger *slog.Logger
	next   BlogService
}

// NewLoggingBlogService wraps next with slog logging. It is the single place
// service failures are logged; callers only map them to responses.
func NewLoggingBlogService(logger *slog.Logger, next BlogService) BlogService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingBlogService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingBlogService) ListPosts(ctx context.Context) ([]Post, error) {
	posts, err := s.next.ListPosts(ctx)
	if err != nil {
		s.logFailure(ctx, "list posts", err)
		return nil, err
	}

	s.logger.DebugContext(ctx, "posts listed", "count", len(posts))
	return posts, nil
}

func (s *loggingBlogService) GetPost(ctx context.Context, id string) (Post, error) {
	post, err := s.next.GetPost(ctx, id)
	if err != nil {
		s.logFailure(ctx, "get post", err, "id", id)
		return Post{}, err
	}
	return post, nil
}

func (s *loggingBlogService) CreatePost(ctx context.Context, input CreatePostInput) (Post, error) {
	post, err := s.next.CreatePost(ctx, input)
	if err != nil {
		s.logFailure(ctx, "create post", err, "author_id", input.AuthorID)
		return Post{}, err
	}

	s.logger.InfoContext(ctx, "post created", "id", post.ID, "author_id", post.AuthorID)
	return post, nil
}

func (s *loggingBlogService) UpdatePost(ctx context.Context, editorID string, input UpdatePostInput) (Post, error) {
	post, err := s.next.UpdatePost(ctx, editorID, input)
	if err != nil {
		s.logFailure(ctx, "update post", err, "id", input.ID, "editor_id", editorID)
		return Post{}, err
	}

	s.logger.InfoContext(ctx, "post updated", "id", post.ID, "editor_id", editorID)
	return post, nil
}

// logFailure logs caller mistakes at Debug and everything else at Error.
func (s *loggingBlogService) logFailure(ctx context.Context, op string, err error, attrs ...any) {
	attrs = append(attrs, "err", err.Error())
	if isClientError(err) {
		s.logger.DebugContext(ctx, op+" rejected", attrs...)
		return
	}
	s.logger.ErrorContext(ctx, op+" failed", attrs...)
}

func isClientError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrUnauthorized)
}
