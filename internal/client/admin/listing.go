// Package admin holds the admin console controllers: the paginated user
// listing, the per-application review and the dashboard.
package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/reqseq"
	"github.com/dmitrijs2005/admissions/internal/client/services"
	"github.com/dmitrijs2005/admissions/internal/logging"
)

const (
	DefaultPageSize = 10
	DefaultSort     = "createdAt"

	SortAsc  = "asc"
	SortDesc = "desc"

	maxVisiblePages = 5
)

// Listing pages through users. Nothing is cached between pages: every
// page change or sort change asks the backend again.
type Listing struct {
	svc services.AdminService
	log logging.Logger
	seq reqseq.Sequencer

	mu        sync.Mutex
	page      int
	size      int
	sortField string
	sortDir   string
	users     []models.UserSummary
	total     int64
	pages     int
	err       error
}

func NewListing(svc services.AdminService, size int, log logging.Logger) *Listing {
	if size <= 0 {
		size = DefaultPageSize
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Listing{
		svc:       svc,
		log:       log.With("component", "admin-listing"),
		size:      size,
		sortField: DefaultSort,
		sortDir:   SortDesc,
	}
}

// Load fetches the current page.
func (l *Listing) Load(ctx context.Context) error {
	l.mu.Lock()
	page, size, sort := l.page, l.size, l.sortParam()
	l.mu.Unlock()

	t := l.seq.Next()
	p, err := l.svc.ListUsers(ctx, page, size, sort)

	l.mu.Lock()
	defer l.mu.Unlock()
	applied := l.seq.Apply(t, func() {
		if err != nil {
			l.err = err
			return
		}
		l.err = nil
		l.users = p.Content
		l.total = p.TotalElements
		l.pages = p.TotalPages
	})
	if !applied {
		l.log.Debug(ctx, "dropping stale page", "page", page, "sort", sort)
		return nil
	}
	return err
}

// GoToPage loads page. Pages outside the known range are ignored.
func (l *Listing) GoToPage(ctx context.Context, page int) error {
	l.mu.Lock()
	if page < 0 || (l.pages > 0 && page >= l.pages) {
		l.mu.Unlock()
		return nil
	}
	l.page = page
	l.mu.Unlock()
	return l.Load(ctx)
}

// ToggleSort flips the direction when field is already the sort field and
// otherwise sorts ascending by field.
func (l *Listing) ToggleSort(ctx context.Context, field string) error {
	l.mu.Lock()
	if l.sortField == field {
		if l.sortDir == SortAsc {
			l.sortDir = SortDesc
		} else {
			l.sortDir = SortAsc
		}
	} else {
		l.sortField = field
		l.sortDir = SortAsc
	}
	l.mu.Unlock()
	return l.Load(ctx)
}

// Sort returns the active field and direction.
func (l *Listing) Sort() (field, dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sortField, l.sortDir
}

func (l *Listing) sortParam() string {
	return fmt.Sprintf("%s,%s", l.sortField, l.sortDir)
}

func (l *Listing) Users() []models.UserSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.UserSummary(nil), l.users...)
}

// Page returns the 0-based current page, the page count and the total
// number of users.
func (l *Listing) Page() (page, pages int, total int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page, l.pages, l.total
}

// Err returns the last load failure, or nil.
func (l *Listing) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Pages returns at most five page indexes around the current page.
func (l *Listing) Pages() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return pageWindow(l.page, l.pages)
}

func pageWindow(current, total int) []int {
	if total <= 0 {
		return nil
	}
	start, end := 0, total-1
	if total > maxVisiblePages {
		start = max(0, current-maxVisiblePages/2)
		end = min(total-1, start+maxVisiblePages-1)
		if end == total-1 {
			start = max(0, end-maxVisiblePages+1)
		}
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
