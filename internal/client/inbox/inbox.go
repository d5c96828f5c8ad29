// Package inbox is the applicant's notification list with its unread
// counter.
package inbox

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/reqseq"
	"github.com/dmitrijs2005/admissions/internal/client/services"
	"github.com/dmitrijs2005/admissions/internal/logging"
)

// Inbox keeps the loaded notifications in sync with read marks made
// through it, without reloading.
type Inbox struct {
	svc services.NotificationService
	log logging.Logger
	seq reqseq.Sequencer

	mu     sync.Mutex
	items  []models.Notification
	unread int64
}

func New(svc services.NotificationService, log logging.Logger) *Inbox {
	if log == nil {
		log = logging.Nop()
	}
	return &Inbox{svc: svc, log: log.With("component", "inbox")}
}

// Load fetches the notifications and the unread count. A failed count
// keeps the previous one.
func (in *Inbox) Load(ctx context.Context) error {
	t := in.seq.Next()
	items, err := in.svc.List(ctx)
	if err != nil {
		return err
	}
	count, cerr := in.svc.UnreadCount(ctx)

	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.seq.Current(t) {
		return nil
	}
	in.items = items
	if cerr != nil {
		in.log.Warn(ctx, "unread count unavailable", "error", cerr)
		return nil
	}
	in.unread = max(count, 0)
	return nil
}

// MarkRead marks id as read. A notification already shown as read is not
// sent again. The unread count never drops below zero.
func (in *Inbox) MarkRead(ctx context.Context, id int64) error {
	in.mu.Lock()
	idx := in.indexOf(id)
	if idx >= 0 && in.items[idx].Read {
		in.mu.Unlock()
		return nil
	}
	in.mu.Unlock()

	if err := in.svc.MarkRead(ctx, id); err != nil {
		return err
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if idx = in.indexOf(id); idx >= 0 && !in.items[idx].Read {
		in.items[idx].Read = true
		in.unread = max(in.unread-1, 0)
	}
	return nil
}

func (in *Inbox) MarkAllRead(ctx context.Context) error {
	if err := in.svc.MarkAllRead(ctx); err != nil {
		return err
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	for i := range in.items {
		in.items[i].Read = true
	}
	in.unread = 0
	return nil
}

func (in *Inbox) indexOf(id int64) int {
	for i := range in.items {
		if in.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (in *Inbox) Items() []models.Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]models.Notification(nil), in.items...)
}

func (in *Inbox) Unread() int64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.unread
}
