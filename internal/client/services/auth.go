// Package services contains the data-access services of the admissions
// client. Each service wraps the REST client for one resource and turns
// every failure into a client.DisplayError carrying a message that can be
// shown as is.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/session"
	"github.com/dmitrijs2005/admissions/internal/common"
)

const emailTaken = "Error: Email address is already taken!"

// Sessions is the part of the session store the auth service mutates.
type Sessions interface {
	Login(ctx context.Context, resp models.AuthResponse) (*session.Session, error)
	Logout(ctx context.Context) error
}

// AuthService signs users in and out.
//
// Login and Register both establish a session on success. Logout is
// idempotent.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*session.Session, error)
	Register(ctx context.Context, req models.RegisterRequest) (*session.Session, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions Sessions
}

// NewAuthService constructs an AuthService bound to the given API client
// and session store.
func NewAuthService(client client.Client, sessions Sessions) AuthService {
	return &authService{client: client, sessions: sessions}
}

var loginMessages = messages{
	fallback: "Login failed",
	byStatus: map[int]string{401: "Invalid email or password"},
}

func (a *authService) Login(ctx context.Context, req models.LoginRequest) (*session.Session, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	resp, err := a.client.Login(ctx, req)
	if err != nil {
		return nil, loginMessages.translate(err)
	}
	return a.start(ctx, resp)
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*session.Session, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	resp, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, registerError(err)
	}
	return a.start(ctx, resp)
}

func registerError(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if client.NormalizeBody(apiErr.Body) == emailTaken {
			return client.Display("Email address is already taken", err)
		}
		if msg, ok := client.ObjectValues(apiErr.Body); ok && strings.TrimSpace(msg) != "" {
			return client.Display(msg, err)
		}
	}
	return client.Display("Registration failed", err)
}

func (a *authService) start(ctx context.Context, resp *models.AuthResponse) (*session.Session, error) {
	if resp == nil || resp.AccessToken == "" {
		return nil, client.Display("Login failed", common.ErrInvalidToken)
	}
	s, err := a.sessions.Login(ctx, *resp)
	if err != nil {
		return nil, client.Display("Login failed", err)
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Logout(ctx)
}

// LandingPath is where a freshly signed-in user is sent.
func LandingPath(s *session.Session) string {
	switch {
	case s.HasRole(common.RoleAdmin):
		return common.PathAdmin
	case s.HasRole(common.RoleApplicant):
		return common.PathApplicant
	default:
		return common.PathHome
	}
}
