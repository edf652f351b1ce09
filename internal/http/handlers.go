package http

import (
	"errors"
	"net/http"

	"github.com/Flarenzy/blog-api/internal/auth"
	"github.com/Flarenzy/blog-api/internal/domain"
)

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "db unavailable"
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if a.Health == nil {
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := a.Health.Ping(ctx); err != nil {
		a.Logger.ErrorContext(ctx, "db ping failed", "err", err)
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary Create post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body CreatePostRequest true "Post payload"
// @Success 200 {object} CreatePostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/blog [post]
func (a *API) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		a.respond(w, r, http.StatusForbidden, MessageResponse{Message: notAuthorizedMessage})
		return
	}

	req, err := decode[CreatePostRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.DebugContext(ctx, "unmarshaling post from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	post, err := a.Blog.CreatePost(ctx, domain.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: userID,
	})
	if err != nil {
		a.respondServiceError(w, r, err, http.StatusInternalServerError, "internal server error while saving post")
		return
	}

	a.respond(w, r, http.StatusOK, CreatePostResponse{ID: post.ID})
}

// @Summary Update post
// @Tags blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body UpdatePostRequest true "Post id and new title/content"
// @Success 200 {object} BlogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/blog [put]
func (a *API) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		a.respond(w, r, http.StatusForbidden, MessageResponse{Message: notAuthorizedMessage})
		return
	}

	req, err := decode[UpdatePostRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.DebugContext(ctx, "unmarshaling post update from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}
	if err := validateRequest(req); err != nil {
		a.Logger.DebugContext(ctx, "invalid post update", "id", req.ID, "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request, valid post id required"})
		return
	}

	post, err := a.Blog.UpdatePost(ctx, userID, req.toInput())
	if err != nil {
		a.respondServiceError(w, r, err, http.StatusInternalServerError, "internal server error while updating post")
		return
	}

	a.respond(w, r, http.StatusOK, BlogResponse{Blog: postToResponse(post)})
}

// @Summary List posts
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BlogListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} MessageResponse
// @Router /api/v1/blog/bulk [get]
func (a *API) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.Blog.ListPosts(r.Context())
	if err != nil {
		a.respondServiceError(w, r, err, http.StatusBadRequest, "failed to list posts")
		return
	}

	a.respond(w, r, http.StatusOK, BlogListResponse{Blog: postsToResponse(posts)})
}

// @Summary Get post by ID
// @Tags blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} BlogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/blog/{id} [get]
func (a *API) handleGetPostByID(w http.ResponseWriter, r *http.Request) {
	post, err := a.Blog.GetPost(r.Context(), r.PathValue("id"))
	if err != nil {
		a.respondServiceError(w, r, err, http.StatusBadRequest, "failed to fetch post")
		return
	}

	a.respond(w, r, http.StatusOK, BlogResponse{Blog: postToResponse(post)})
}

// respondServiceError maps every service error to a response. Errors the
// domain does not name fall back to status/message. Logging is left to the
// service decorator.
func (a *API) respondServiceError(w http.ResponseWriter, r *http.Request, err error, status int, message string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.respond(w, r, http.StatusNotFound, ErrorResponse{Error: "post not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
	case errors.Is(err, domain.ErrForbidden):
		a.respond(w, r, http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, domain.ErrUnauthorized):
		a.respond(w, r, http.StatusForbidden, MessageResponse{Message: notAuthorizedMessage})
	default:
		a.respond(w, r, status, ErrorResponse{Error: message})
	}
}
