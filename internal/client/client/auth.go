package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/admissions/internal/common"
	"github.com/dmitrijs2005/admissions/internal/logging"
	"github.com/google/uuid"
)

// TokenSource is the part of the session store the authenticator needs.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

// Navigator moves the application to another route.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

const maxRedirects = 10

// Authenticator is an http.RoundTripper that attaches the bearer token and a
// request id to every request for the API origin, and terminates the session
// when the backend rejects it.
//
// A 401 response, or a transport failure for a URL that points into the
// OAuth handshake, clears the session and navigates to the login route. The
// original response or error still reaches the caller.
type Authenticator struct {
	next   http.RoundTripper
	origin *url.URL
	tokens TokenSource
	nav    Navigator
	log    logging.Logger
	newID  func() string
}

func NewAuthenticator(next http.RoundTripper, baseURL string, tokens TokenSource, nav Navigator, log logging.Logger) (*Authenticator, error) {
	origin, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if next == nil {
		next = http.DefaultTransport
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Authenticator{
		next:   next,
		origin: origin,
		tokens: tokens,
		nav:    nav,
		log:    log,
		newID:  uuid.NewString,
	}, nil
}

func (a *Authenticator) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	r := req.Clone(ctx)

	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, a.newID())
	}
	if a.sameOrigin(r.URL) {
		token, err := a.tokens.Token(ctx)
		if err != nil {
			a.log.Warn(ctx, "failed to read session token", "error", err)
		}
		if token != "" {
			r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	log := a.log.With("request_id", r.Header.Get(common.RequestIDHeaderName), "method", r.Method, "path", r.URL.Path)
	start := time.Now()

	resp, err := a.next.RoundTrip(r)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		if IsAuthRedirectURL(r.URL.String()) {
			a.terminate(ctx, "transport failure during oauth redirect")
		}
		return nil, err
	}

	log.Debug(ctx, "response received", "status", resp.StatusCode, "elapsed", time.Since(start))
	if resp.StatusCode == http.StatusUnauthorized {
		a.terminate(ctx, "backend rejected the session")
	}
	return resp, nil
}

// CheckRedirect is installed on the http.Client. A redirect into the OAuth
// handshake terminates the session and fails the request with
// ErrAuthRedirect.
func (a *Authenticator) CheckRedirect(req *http.Request, via []*http.Request) error {
	if IsAuthRedirectURL(req.URL.String()) {
		a.terminate(req.Context(), "redirected to oauth authorization")
		return ErrAuthRedirect
	}
	if len(via) >= maxRedirects {
		return errors.New("stopped after 10 redirects")
	}
	return nil
}

func (a *Authenticator) terminate(ctx context.Context, reason string) {
	ctx = context.WithoutCancel(ctx)
	a.log.Info(ctx, "terminating session", "reason", reason)
	if err := a.tokens.Logout(ctx); err != nil {
		a.log.Error(ctx, "forced logout failed", "error", err)
	}
	if a.nav == nil {
		return
	}
	if err := a.nav.Navigate(ctx, common.PathLogin); err != nil {
		a.log.Warn(ctx, "navigation to login failed", "error", err)
	}
}

func (a *Authenticator) sameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, a.origin.Scheme) && strings.EqualFold(u.Host, a.origin.Host)
}

// IsAuthRedirectURL reports whether rawURL points into the backend's OAuth
// authorization flow.
func IsAuthRedirectURL(rawURL string) bool {
	return strings.Contains(rawURL, common.OAuthRedirectURL)
}
