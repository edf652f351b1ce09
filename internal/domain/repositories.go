package domain

import "context"

type PostRepository interface {
	List(ctx context.Context) ([]Post, error)
	FindByID(ctx context.Context, id string) (Post, error)
	Create(ctx context.Context, record CreatePostRecord) (Post, error)
	Update(ctx context.Context, input UpdatePostInput) (Post, error)
}
