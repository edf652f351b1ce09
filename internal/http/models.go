package http

import (
	"time"

	"github.com/Flarenzy/blog-api/internal/domain"
)

// PostResponse is the client view of a post.
type PostResponse struct {
	ID        string    `json:"id" example:"0b6f6a3e-8f0e-4c1e-9d2a-3f1c2b4a5d6e"`
	Title     string    `json:"title" example:"Hello"`
	Content   string    `json:"content" example:"First post"`
	AuthorID  string    `json:"authorId" example:"u1"`
	CreatedAt time.Time `json:"createdAt" example:"2024-05-10T15:04:05Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-05-10T15:04:05Z"`
}

// CreatePostRequest is the payload accepted when creating a post. Author is
// accepted for compatibility and ignored; the owner comes from the token.
type CreatePostRequest struct {
	Title   string `json:"title" example:"Hello"`
	Content string `json:"content" example:"First post"`
	Author  string `json:"author" example:"ignored"`
}

// UpdatePostRequest is the payload accepted when updating a post.
type UpdatePostRequest struct {
	ID      string `json:"id" example:"0b6f6a3e-8f0e-4c1e-9d2a-3f1c2b4a5d6e" validate:"required"`
	Title   string `json:"title" example:"Hello again"`
	Content string `json:"content" example:"Edited"`
}

// CreatePostResponse carries the id of a new post.
type CreatePostResponse struct {
	ID string `json:"id" example:"0b6f6a3e-8f0e-4c1e-9d2a-3f1c2b4a5d6e"`
}

// BlogResponse wraps a single post.
type BlogResponse struct {
	Blog PostResponse `json:"blog"`
}

// BlogListResponse wraps every post.
type BlogListResponse struct {
	Blog []PostResponse `json:"blog"`
}

// ErrorResponse is a simple envelope for error messages.
type ErrorResponse struct {
	Error string `json:"error" example:"post not found"`
}

// MessageResponse is returned by the auth gate.
type MessageResponse struct {
	Message string `json:"message" example:"Not authorized"`
}

func postToResponse(p domain.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func postsToResponse(posts []domain.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, postToResponse(p))
	}
	return out
}

func (r UpdatePostRequest) toInput() domain.UpdatePostInput {
	return domain.UpdatePostInput{
		ID:      r.ID,
		Title:   r.Title,
		Content: r.Content,
	}
}
