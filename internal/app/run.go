package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Flarenzy/blog-api/internal/auth"
	appdb "github.com/Flarenzy/blog-api/internal/db"
	"github.com/Flarenzy/blog-api/internal/domain"
	apihttp "github.com/Flarenzy/blog-api/internal/http"
)

const shutdownTimeout = 5 * time.Second

func newAuthenticator(ctx context.Context, cfg Config) (auth.Authenticator, error) {
	return auth.New(ctx, auth.Config{
		Secret:   cfg.JWTSecret,
		JWKSURL:  cfg.JWKSURL,
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
	})
}

// Run listens on cfg.Port and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}
	return Serve(ctx, cfg, listener)
}

// Serve wires storage, authentication and the HTTP API, then serves on
// listener until ctx is cancelled. Storage and authenticator failures are
// returned before the listener accepts any request.
func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger := slog.Default()

	store, err := appdb.Open(ctx, cfg.DSN, appdb.Options{
		Migrate: cfg.Migrate,
		Logger:  logger,
	})
	if err != nil {
		_ = listener.Close()
		return err
	}
	defer store.Close()

	authenticator, err := newAuthenticator(ctx, cfg)
	if err != nil {
		_ = listener.Close()
		return fmt.Errorf("configure authenticator: %w", err)
	}

	blog := domain.NewLoggingBlogService(logger,
		domain.NewBlogService(store.Posts, domain.WithAuthorEnforcement(cfg.EnforceAuthor)),
	)
	api := apihttp.NewAPI(logger, store, blog, authenticator)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("serving http", "addr", listener.Addr().String(), "storage", store.Driver)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
