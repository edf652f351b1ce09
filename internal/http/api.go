package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Flarenzy/blog-api/internal/auth"
	"github.com/Flarenzy/blog-api/internal/domain"
	httpSwagger "github.com/swaggo/http-swagger"
)

const blogPrefix = "/api/v1/blog"

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type API struct {
	Logger *slog.Logger
	Health HealthChecker
	Blog   domain.BlogService
	Auth   auth.Authenticator
}

func NewAPI(logger *slog.Logger, health HealthChecker, blog domain.BlogService, authenticator auth.Authenticator) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		Logger: logger,
		Health: health,
		Blog:   blog,
		Auth:   authenticator,
	}
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealthz)
	mux.HandleFunc("/readyz", a.handleReadyz)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	mount(mux, blogPrefix, a.authMiddleware(limitBody(a.blogRouter())))

	return a.withMiddleware(mux)
}

// blogRouter serves the post routes relative to blogPrefix. Every route here
// sits behind the auth gate.
func (a *API) blogRouter() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /{$}", a.handleCreatePost)
	mux.HandleFunc("PUT /{$}", a.handleUpdatePost)
	mux.HandleFunc("GET /bulk", a.handleListPosts)
	mux.HandleFunc("GET /{id}", a.handleGetPostByID)

	return mux
}

// mount serves h under prefix, with both "prefix" and "prefix/" reaching h's "/" route.
func mount(mux *http.ServeMux, prefix string, h http.Handler) {
	mux.Handle(prefix+"/", http.StripPrefix(prefix, h))
	mux.HandleFunc(prefix, func(w http.ResponseWriter, r *http.Request) {
		root := r.Clone(r.Context())
		root.URL.Path = "/"
		root.URL.RawPath = ""
		h.ServeHTTP(w, root)
	})
}
