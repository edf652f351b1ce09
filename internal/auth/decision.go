package auth

import (
	"context"
	"strings"
)

type Outcome int

const (
	OutcomeRejected Outcome = iota
	OutcomeAuthorized
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAuthorized:
		return "authorized"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Decision is the gate's verdict for one request. Principal is set only when
// Outcome is OutcomeAuthorized; Reason only when it is OutcomeRejected.
type Decision struct {
	Outcome   Outcome
	Principal Principal
	Reason    error
}

func Authorized(principal Principal) Decision {
	return Decision{Outcome: OutcomeAuthorized, Principal: principal}
}

func Rejected(reason error) Decision {
	return Decision{Outcome: OutcomeRejected, Reason: reason}
}

// BearerToken returns the second whitespace-separated field of an
// Authorization header value, or "" when there is none.
func BearerToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

func Decide(ctx context.Context, authenticator Authenticator, authorizationHeader string) Decision {
	if authenticator == nil {
		return Rejected(ErrNoAuthenticator)
	}

	principal, err := authenticator.Authenticate(ctx, BearerToken(authorizationHeader))
	if err != nil {
		return Rejected(err)
	}
	if principal.UserID == "" {
		return Rejected(ErrMissingSubject)
	}
	return Authorized(principal)
}
