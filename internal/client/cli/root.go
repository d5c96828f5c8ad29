package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/admissions/internal/client/services"
	"github.com/dmitrijs2005/admissions/internal/common"
)

// getStatus is shown in the prompt: the signed-in email and the current path.
func (a *App) getStatus(ctx context.Context) string {
	s := ""
	if sess := a.currentSession(ctx); sess != nil {
		s = sess.Email + " "
	}
	if loc := a.router.Current(); loc.Path != "" {
		s += loc.Path
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root resumes a stored session, or opens the login route, and runs the
// REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the admissions CLI (type 'help' for commands)")

	start := common.PathLogin
	if s := a.currentSession(ctx); s != nil {
		start = services.LandingPath(s)
	}
	if err := a.router.Navigate(ctx, start); err != nil {
		a.log.Error(ctx, "initial navigation failed", "error", err)
	}

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}
