// Package guard gates navigation on the state of the session store.
//
// Guards are evaluated on every navigation attempt and consult the store
// each time, so a session that expired while the user was idle is caught on
// the next move. A denied guard names the route to go to instead.
package guard

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/admissions/internal/client/session"
	"github.com/dmitrijs2005/admissions/internal/common"
)

// Sessions is the part of the session store guards consult.
type Sessions interface {
	Current(ctx context.Context) (*session.Session, error)
	Token(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

// Decision is the outcome of one guard.
type Decision struct {
	Allow    bool
	Redirect string
	Query    url.Values
	// Cleanup holds a failure to clear the session while denying.
	Cleanup error
}

// Target returns the redirect path with its query, or "" for Allow.
func (d Decision) Target() string {
	if d.Allow {
		return ""
	}
	if len(d.Query) == 0 {
		return d.Redirect
	}
	return d.Redirect + "?" + d.Query.Encode()
}

// Guard decides whether navigation may proceed.
type Guard func(ctx context.Context, s Sessions) Decision

func allow() Decision { return Decision{Allow: true} }

func redirect(path string) Decision { return Decision{Redirect: path} }

// Authenticated allows navigation while a non-expired session exists.
//
// Without a stored token it redirects to the login route. With a token but
// no valid session (expired or unreadable) it clears what is left and
// redirects to the login route tagged expired=true.
func Authenticated(ctx context.Context, s Sessions) Decision {
	token, err := s.Token(ctx)
	if err != nil || token == "" {
		return redirect(common.PathLogin)
	}

	sess, err := s.Current(ctx)
	if err == nil && sess != nil {
		return allow()
	}

	return Decision{
		Redirect: common.PathLogin,
		Query:    url.Values{common.QueryExpired: []string{"true"}},
		Cleanup:  s.Logout(ctx),
	}
}

// RequireRole allows navigation for a session holding role. An
// authenticated user without the role is sent home; anyone else is sent to
// the login route.
func RequireRole(role string) Guard {
	return func(ctx context.Context, s Sessions) Decision {
		sess, err := s.Current(ctx)
		if err != nil || sess == nil {
			return redirect(common.PathLogin)
		}
		if !sess.HasRole(role) {
			return redirect(common.PathHome)
		}
		return allow()
	}
}

var (
	AdminOnly     = RequireRole(common.RoleAdmin)
	ApplicantOnly = RequireRole(common.RoleApplicant)
)

// Evaluate runs guards in order and returns the first denial.
func Evaluate(ctx context.Context, s Sessions, guards ...Guard) Decision {
	for _, g := range guards {
		if d := g(ctx, s); !d.Allow {
			return d
		}
	}
	return allow()
}
