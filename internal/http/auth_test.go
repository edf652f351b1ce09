package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Flarenzy/blog-api/internal/auth"
	"github.com/Flarenzy/blog-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func newTestAPI(service domain.BlogService) *API {
	return NewAPI(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		stubHealthChecker{},
		service,
		auth.NewSecretAuthenticator(auth.Config{Secret: testSecret}),
	)
}

func signToken(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func makeClaims(userID string) jwt.MapClaims {
	now := time.Now()
	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	if userID != "" {
		claims["id"] = userID
	}
	return claims
}

func validToken(t *testing.T, userID string) string {
	t.Helper()
	return signToken(t, makeClaims(userID), []byte(testSecret))
}

func assertNotAuthorized(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected %d, got %d", http.StatusForbidden, rec.Code)
	}
	var body MessageResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Not authorized" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	api := newTestAPI(stubService{})
	called := false
	handler := api.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/bulk", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assertNotAuthorized(t, rec)
	if called {
		t.Fatal("expected downstream handler not to be called")
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	api := newTestAPI(stubService{})
	handler := api.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/bulk", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assertNotAuthorized(t, rec)
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	api := newTestAPI(stubService{})
	handler := api.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	token := signToken(t, makeClaims("u1"), []byte("other-secret"))
	req := httptest.NewRequest(http.MethodGet, "/bulk", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assertNotAuthorized(t, rec)
}

func TestAuthMiddlewareRejectsTokenWithoutID(t *testing.T) {
	api := newTestAPI(stubService{})
	called := false
	handler := api.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/bulk", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t, ""))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assertNotAuthorized(t, rec)
	if called {
		t.Fatal("expected downstream handler not to be called")
	}
}

func TestAuthMiddlewareRejectsWhenNoAuthenticator(t *testing.T) {
	api := NewAPI(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, stubService{}, nil)
	handler := api.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/bulk", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t, "u1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assertNotAuthorized(t, rec)
}

func TestAuthMiddlewareAllowsValidToken(t *testing.T) {
	api := newTestAPI(stubService{})
	called := false
	handler := api.authMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			t.Error("expected user id in context")
		}
		if userID != "u1" {
			t.Errorf("unexpected user id: %v", userID)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/bulk", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t, "u1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected %d, got %d", http.StatusNoContent, rec.Code)
	}
	if !called {
		t.Fatal("expected downstream handler to be called")
	}
}

func TestEveryBlogRouteRejectsUnauthenticatedRequests(t *testing.T) {
	serviceCalled := false
	touch := func() { serviceCalled = true }
	api := newTestAPI(stubService{
		listPostsFn: func(context.Context) ([]domain.Post, error) {
			touch()
			return nil, nil
		},
		getPostFn: func(context.Context, string) (domain.Post, error) {
			touch()
			return domain.Post{}, nil
		},
		createPostFn: func(context.Context, domain.CreatePostInput) (domain.Post, error) {
			touch()
			return domain.Post{}, nil
		},
		updatePostFn: func(context.Context, string, domain.UpdatePostInput) (domain.Post, error) {
			touch()
			return domain.Post{}, nil
		},
	})
	router := api.Router()

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/api/v1/blog", `{"title":"T","content":"C"}`},
		{http.MethodPost, "/api/v1/blog/", `{"title":"T","content":"C"}`},
		{http.MethodPut, "/api/v1/blog", `{"id":"0b6f6a3e-8f0e-4c1e-9d2a-3f1c2b4a5d6e"}`},
		{http.MethodGet, "/api/v1/blog/bulk", ""},
		{http.MethodGet, "/api/v1/blog/0b6f6a3e-8f0e-4c1e-9d2a-3f1c2b4a5d6e", ""},
		{http.MethodDelete, "/api/v1/blog/anything", ""},
	}

	for _, route := range routes {
		for _, header := range []string{"", "Bearer", "Bearer not-a-jwt", "Basic dXNlcjpwYXNz"} {
			req := httptest.NewRequest(route.method, route.path, strings.NewReader(route.body))
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusForbidden {
				t.Fatalf("%s %s with %q: expected 403, got %d", route.method, route.path, header, rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != `{"message":"Not authorized"}` {
				t.Fatalf("%s %s with %q: unexpected body %s", route.method, route.path, header, got)
			}
		}
	}

	if serviceCalled {
		t.Fatal("expected the service never to be called for rejected requests")
	}
}

func TestHealthEndpointsAreNotGated(t *testing.T) {
	api := newTestAPI(stubService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
}
