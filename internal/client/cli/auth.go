package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/services"
	"github.com/dmitrijs2005/admissions/internal/common"
)

// Login screen notices.
const (
	MsgRegistered     = "Registration successful! Please log in with your credentials."
	MsgSessionExpired = services.MsgSessionExpired
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// loginNotice is the message the login route shows for its query.
func loginNotice(q url.Values) string {
	var msgs []string
	if q.Get(common.QueryRegistered) == "true" {
		msgs = append(msgs, MsgRegistered)
	}
	if q.Get(common.QueryExpired) == "true" {
		msgs = append(msgs, MsgSessionExpired)
	}
	return strings.Join(msgs, "\n")
}

// Register prompts for the account fields and creates the account. The new
// session is used right away: the user lands on their role's home route.
//
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Register(ctx, models.RegisterRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(password),
	})
	if err != nil {
		return err
	}

	a.log.Info(ctx, "registered", "user_id", s.UserID)
	fmt.Fprintln(a.out, "Success!")
	return a.router.Navigate(ctx, services.LandingPath(s))
}

// Login prompts for credentials and signs in. On success the user is sent
// to /admin, /applicant or / depending on their roles.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Login(ctx, models.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		return err
	}

	a.log.Info(ctx, "login successful", "user_id", s.UserID)
	fmt.Fprintf(a.out, "Logged in as %s\n", s.Email)
	return a.router.Navigate(ctx, services.LandingPath(s))
}

// Logout ends the session and returns to the login route.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return a.router.Navigate(ctx, common.PathLogin)
}

// WhoAmI prints the signed-in identity.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.currentSession(ctx)
	if s == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (user %d)\nRoles: %s\nSession expires: %s\n",
		s.Email, s.UserID, strings.Join(s.Roles, ", "), s.TokenExpiry.Format("2006-01-02 15:04:05"))
	return nil
}

// Go navigates to path. Guards may redirect elsewhere.
func (a *App) Go(ctx context.Context, path string) error {
	if err := a.router.Navigate(ctx, path); err != nil {
		return err
	}
	if loc := a.router.Current(); loc.Path != path {
		a.log.Debug(ctx, "redirected", "requested", path, "path", loc.Path)
	}
	return nil
}
