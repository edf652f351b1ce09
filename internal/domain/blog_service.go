package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type blogService struct {
	posts         PostRepository
	enforceAuthor bool
	newID         func() string
}

type BlogServiceOption func(*blogService)

// WithAuthorEnforcement restricts updates to the post's author.
func WithAuthorEnforcement(enabled bool) BlogServiceOption {
	return func(s *blogService) {
		s.enforceAuthor = enabled
	}
}

func NewBlogService(posts PostRepository, opts ...BlogServiceOption) BlogService {
	s := &blogService{
		posts: posts,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *blogService) ListPosts(ctx context.Context) ([]Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []Post{}
	}
	return posts, nil
}

func (s *blogService) GetPost(ctx context.Context, id string) (Post, error) {
	id, err := canonicalPostID(id)
	if err != nil {
		return Post{}, err
	}
	return s.posts.FindByID(ctx, id)
}

func (s *blogService) CreatePost(ctx context.Context, input CreatePostInput) (Post, error) {
	if input.AuthorID == "" {
		return Post{}, ErrUnauthorized
	}
	return s.posts.Create(ctx, CreatePostRecord{
		ID:       s.newID(),
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: input.AuthorID,
	})
}

func (s *blogService) UpdatePost(ctx context.Context, editorID string, input UpdatePostInput) (Post, error) {
	id, err := canonicalPostID(input.ID)
	if err != nil {
		return Post{}, err
	}
	input.ID = id

	if s.enforceAuthor {
		current, err := s.posts.FindByID(ctx, input.ID)
		if err != nil {
			return Post{}, err
		}
		if current.AuthorID != editorID {
			return Post{}, ErrForbidden
		}
	}

	return s.posts.Update(ctx, input)
}

// canonicalPostID accepts any form uuid.Parse does and returns the lowercase
// hyphenated form posts are stored under.
func canonicalPostID(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: missing post id", ErrInvalidInput)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: invalid post id", ErrInvalidInput)
	}
	return parsed.String(), nil
}
