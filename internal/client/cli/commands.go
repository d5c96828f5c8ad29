package cli

import (
	"context"

	"github.com/dmitrijs2005/admissions/internal/client/guard"
)

// scope says where a command is offered.
type scope int

const (
	scopeAny scope = iota
	scopeGuest
	scopeUser
	scopeApplicant
	scopeAdmin
	scopeReview
)

type command struct {
	name  string
	args  string
	help  string
	scope scope
	run   func(ctx context.Context, args []string) error
}

func noArgs(fn func(ctx context.Context) error) func(context.Context, []string) error {
	return func(ctx context.Context, _ []string) error { return fn(ctx) }
}

func (a *App) commands() []command {
	return []command{
		{name: "register", help: "create an account", scope: scopeGuest, run: noArgs(a.Register)},
		{name: "login", help: "sign in", scope: scopeGuest, run: noArgs(a.Login)},
		{name: "logout", help: "sign out", scope: scopeUser, run: noArgs(a.Logout)},
		{name: "whoami", help: "show the signed-in user", scope: scopeAny, run: noArgs(a.WhoAmI)},
		{name: "go", args: "<path>", help: "navigate, e.g. /applicant, /admin/users/7", scope: scopeAny, run: a.goTo},

		{name: "steps", help: "list the application steps", scope: scopeApplicant, run: a.Steps},
		{name: "show", help: "show the active step", scope: scopeApplicant, run: a.Show},
		{name: "next", help: "go to the next step", scope: scopeApplicant, run: a.Next},
		{name: "prev", help: "go to the previous step", scope: scopeApplicant, run: a.Prev},
		{name: "step", args: "<1-4>", help: "go to a step", scope: scopeApplicant, run: a.Step},
		{name: "restart", help: "reload the application from step 1", scope: scopeApplicant, run: a.Restart},
		{name: "personal", help: "edit personal information", scope: scopeApplicant, run: a.EditPersonalInfo},
		{name: "types", help: "list document types and limits", scope: scopeApplicant, run: a.DocumentTypes},
		{name: "select", args: "<type> <path>", help: "choose a file to upload", scope: scopeApplicant, run: a.SelectDocument},
		{name: "unselect", help: "drop the chosen file", scope: scopeApplicant, run: a.UnselectDocument},
		{name: "upload", help: "upload the chosen file", scope: scopeApplicant, run: a.UploadDocument},
		{name: "rmdoc", args: "<id>", help: "delete a document", scope: scopeApplicant, run: a.DeleteDocument},
		{name: "download", args: "<id> [dir|s3://bucket/prefix]", help: "save a document", scope: scopeApplicant, run: a.DownloadDocument},
		{name: "addacademic", help: "add academic history", scope: scopeApplicant, run: a.AddAcademicHistory},
		{name: "editacademic", args: "<id>", help: "edit academic history", scope: scopeApplicant, run: a.EditAcademicHistory},
		{name: "rmacademic", args: "<id>", help: "delete academic history", scope: scopeApplicant, run: a.DeleteAcademicHistory},
		{name: "contact", help: "edit contact information", scope: scopeApplicant, run: a.EditContactInfo},
		{name: "notifications", help: "list notifications", scope: scopeApplicant, run: a.Notifications},
		{name: "read", args: "<id>", help: "mark a notification as read", scope: scopeApplicant, run: a.MarkRead},
		{name: "readall", help: "mark all notifications as read", scope: scopeApplicant, run: a.MarkAllRead},

		{name: "dashboard", help: "show application statistics", scope: scopeAdmin, run: a.Dashboard},
		{name: "users", args: "[page]", help: "list users", scope: scopeAdmin, run: a.Users},
		{name: "page", args: "<n>", help: "go to a page of the user list", scope: scopeAdmin, run: a.Page},
		{name: "sort", args: "<field>", help: "sort the user list (repeat to flip)", scope: scopeAdmin, run: a.SortUsers},
		{name: "user", args: "<id>", help: "open a user's application", scope: scopeAdmin, run: a.OpenUser},

		{name: "app", help: "show the open application", scope: scopeReview, run: a.ShowApplication},
		{name: "validate", args: "<document id>", help: "validate a document", scope: scopeReview, run: a.ValidateDocument},
		{name: "reject", args: "<document id>", help: "reject a document", scope: scopeReview, run: a.RejectDocument},
		{name: "appstatus", args: "<status>", help: "set the application status", scope: scopeReview, run: a.SetApplicationStatus},
	}
}

func (a *App) goTo(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.Go(ctx, "/")
	}
	return a.Go(ctx, args[0])
}

// available returns the commands offered at the current route.
func (a *App) available(ctx context.Context) []command {
	route := a.router.Current().Route
	loggedIn := a.isLoggedIn(ctx)

	out := make([]command, 0, 32)
	for _, c := range a.commands() {
		if offered(c.scope, route, loggedIn) {
			out = append(out, c)
		}
	}
	return out
}

func offered(s scope, route string, loggedIn bool) bool {
	switch s {
	case scopeGuest:
		return !loggedIn
	case scopeUser:
		return loggedIn
	case scopeApplicant:
		return loggedIn && route == guard.RouteApplicant
	case scopeAdmin:
		return loggedIn && (route == guard.RouteAdminDashboard || route == guard.RouteAdminUsers || route == guard.RouteAdminUser)
	case scopeReview:
		return loggedIn && route == guard.RouteAdminUser
	default:
		return true
	}
}
