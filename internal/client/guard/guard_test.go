package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/admissions/internal/client/session"
	"github.com/dmitrijs2005/admissions/internal/common"
	"github.com/stretchr/testify/assert"
)

type fakeSessions struct {
	token     string
	sess      *session.Session
	err       error
	logoutErr error
	logouts   int
}

func (f *fakeSessions) Current(context.Context) (*session.Session, error) { return f.sess, f.err }
func (f *fakeSessions) Token(context.Context) (string, error)             { return f.token, nil }
func (f *fakeSessions) Logout(context.Context) error {
	f.logouts++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.token, f.sess = "", nil
	return nil
}

func withRoles(roles ...string) *fakeSessions {
	return &fakeSessions{
		token: "tok",
		sess:  &session.Session{Token: "tok", UserID: 1, Roles: roles, TokenExpiry: time.Now().Add(time.Hour)},
	}
}

func TestAuthenticated(t *testing.T) {
	ctx := context.Background()

	t.Run("valid session", func(t *testing.T) {
		d := Authenticated(ctx, withRoles(common.RoleApplicant))
		assert.True(t, d.Allow)
		assert.Empty(t, d.Target())
	})

	t.Run("no token", func(t *testing.T) {
		s := &fakeSessions{}
		d := Authenticated(ctx, s)
		assert.False(t, d.Allow)
		assert.Equal(t, "/auth/login", d.Target())
		assert.Zero(t, s.logouts)
	})

	t.Run("token without valid session is expired", func(t *testing.T) {
		s := &fakeSessions{token: "tok"}
		d := Authenticated(ctx, s)
		assert.False(t, d.Allow)
		assert.Equal(t, "/auth/login?expired=true", d.Target())
		assert.Equal(t, 1, s.logouts)
		assert.NoError(t, d.Cleanup)
	})

	t.Run("failed cleanup is reported", func(t *testing.T) {
		s := &fakeSessions{token: "tok", logoutErr: errors.New("disk full")}
		d := Authenticated(ctx, s)
		assert.False(t, d.Allow)
		assert.Equal(t, "/auth/login?expired=true", d.Target())
		assert.EqualError(t, d.Cleanup, "disk full")
	})

	t.Run("storage error", func(t *testing.T) {
		s := &fakeSessions{token: "tok", err: errors.New("io")}
		d := Authenticated(ctx, s)
		assert.False(t, d.Allow)
		assert.Equal(t, common.PathLogin, d.Redirect)
	})
}

func TestRoleGuards_TwoDenialPathsAreDistinct(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		guard    Guard
		sessions *fakeSessions
		want     Decision
	}{
		{"admin allowed", AdminOnly, withRoles(common.RoleAdmin), Decision{Allow: true}},
		{"applicant on admin goes home", AdminOnly, withRoles(common.RoleApplicant), Decision{Redirect: "/"}},
		{"anonymous on admin goes to login", AdminOnly, &fakeSessions{}, Decision{Redirect: "/auth/login"}},
		{"applicant allowed", ApplicantOnly, withRoles(common.RoleApplicant), Decision{Allow: true}},
		{"admin on applicant goes home", ApplicantOnly, withRoles(common.RoleAdmin), Decision{Redirect: "/"}},
		{"anonymous on applicant goes to login", ApplicantOnly, &fakeSessions{}, Decision{Redirect: "/auth/login"}},
		{"both roles", AdminOnly, withRoles(common.RoleApplicant, common.RoleAdmin), Decision{Allow: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := tt.guard(ctx, tt.sessions)
			second := tt.guard(ctx, tt.sessions)
			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, second, "evaluation must be deterministic")
		})
	}
}

func TestEvaluate_FirstDenialWins(t *testing.T) {
	s := &fakeSessions{}
	d := Evaluate(context.Background(), s, Authenticated, ApplicantOnly)
	assert.Equal(t, "/auth/login", d.Target())

	d = Evaluate(context.Background(), s)
	assert.True(t, d.Allow)
}
