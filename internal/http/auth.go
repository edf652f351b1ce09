package http

import (
	"errors"
	"net/http"

	"github.com/Flarenzy/blog-api/internal/auth"
)

const notAuthorizedMessage = "Not authorized"

// authMiddleware is the gate in front of every blog route. It either calls
// next with the principal in the context or writes a 403; there is no third path.
func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		decision := auth.Decide(ctx, a.Auth, r.Header.Get("Authorization"))

		switch decision.Outcome {
		case auth.OutcomeAuthorized:
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(ctx, decision.Principal)))
		default:
			reason := "unknown"
			if decision.Reason != nil {
				reason = decision.Reason.Error()
			}
			if errors.Is(decision.Reason, auth.ErrNoAuthenticator) {
				a.Logger.ErrorContext(ctx, "request rejected, no authenticator configured", "path", r.URL.Path)
			} else {
				a.Logger.DebugContext(ctx, "request not authorized", "path", r.URL.Path, "reason", reason)
			}
			a.respond(w, r, http.StatusForbidden, MessageResponse{Message: notAuthorizedMessage})
		}
	})
}
