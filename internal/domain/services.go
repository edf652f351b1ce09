package domain

import "context"

type BlogService interface {
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id string) (Post, error)
	CreatePost(ctx context.Context, input CreatePostInput) (Post, error)
	UpdatePost(ctx context.Context, editorID string, input UpdatePostInput) (Post, error)
}
