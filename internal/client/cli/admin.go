package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/admissions/internal/client/admin"
	"github.com/dmitrijs2005/admissions/internal/client/banner"
	"github.com/dmitrijs2005/admissions/internal/client/guard"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/common"
)

// sortFields maps what the user types to the backend's sort properties.
var sortFields = map[string]string{
	"created": "createdAt",
	"email":   "email",
	"first":   "firstName",
	"last":    "lastName",
	"status":  "applicationStatus",
}

// applicationStatuses are the statuses an admin may set on an application.
var applicationStatuses = []string{models.ReviewApproved, models.ReviewRejected, models.ReviewPendingReview}

func (a *App) reviewBanner(string) (banner.Message, bool) {
	return a.review.Banner()
}

// Dashboard reloads the statistics and recent applications.
func (a *App) Dashboard(ctx context.Context, _ []string) error {
	_ = a.dashboard.Load(ctx)
	a.showDashboard()
	return nil
}

// Users shows the user listing, optionally at a 1-based page.
func (a *App) Users(ctx context.Context, args []string) error {
	if a.router.Current().Route != guard.RouteAdminUsers {
		return a.Go(ctx, common.PathAdminUsers)
	}
	if len(args) == 0 {
		_ = a.listing.Load(ctx)
		a.showUsers()
		return nil
	}
	return a.Page(ctx, args)
}

// Page moves the listing to a 1-based page.
func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid page %q", args[0])
	}
	_ = a.listing.GoToPage(ctx, n-1)
	a.showUsers()
	return nil
}

// SortUsers toggles the listing's sort: the same field flips direction, a
// new field starts ascending.
func (a *App) SortUsers(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: sort <%s>", strings.Join(sortKeys(), "|"))
	}
	field, ok := sortFields[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown sort field %q", args[0])
	}
	_ = a.listing.ToggleSort(ctx, field)
	a.showUsers()
	return nil
}

func sortKeys() []string {
	return slices.Sorted(maps.Keys(sortFields))
}

// OpenUser navigates to a user's application.
func (a *App) OpenUser(ctx context.Context, args []string) error {
	id, err := parseID(args, "user <id>")
	if err != nil {
		return err
	}
	return a.Go(ctx, fmt.Sprintf("%s/%d", common.PathAdminUsers, id))
}

// ShowApplication prints the application under review.
func (a *App) ShowApplication(context.Context, []string) error {
	a.showApplication()
	return nil
}

// ValidateDocument marks a document of the open application as validated.
func (a *App) ValidateDocument(ctx context.Context, args []string) error {
	return a.reviewDocument(ctx, args, models.ReviewValidated)
}

// RejectDocument marks a document of the open application as rejected.
func (a *App) RejectDocument(ctx context.Context, args []string) error {
	return a.reviewDocument(ctx, args, models.ReviewRejected)
}

func (a *App) reviewDocument(ctx context.Context, args []string, status string) error {
	id, err := parseID(args, "validate|reject <document id>")
	if err != nil {
		return err
	}
	notes, err := GetMultiline(a.reader, "Validation notes (optional)", a.out)
	if err != nil {
		return err
	}
	return a.outcome(a.reviewBanner, admin.SlotReview, a.review.UpdateDocumentStatus(ctx, id, status, notes))
}

// SetApplicationStatus changes the status of the open application.
func (a *App) SetApplicationStatus(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: appstatus <%s>", strings.Join(applicationStatuses, "|"))
	}
	status := strings.ToUpper(args[0])
	if !slices.Contains(applicationStatuses, status) {
		return fmt.Errorf("unknown application status %q", args[0])
	}
	return a.outcome(a.reviewBanner, admin.SlotReview, a.review.UpdateApplicationStatus(ctx, status))
}
