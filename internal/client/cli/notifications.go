package cli

import (
	"context"
	"fmt"
)

// Notifications reloads and prints the notification list.
func (a *App) Notifications(ctx context.Context, _ []string) error {
	if err := a.inbox.Load(ctx); err != nil {
		return err
	}
	a.showNotifications()
	return nil
}

func (a *App) MarkRead(ctx context.Context, args []string) error {
	id, err := parseID(args, "read <id>")
	if err != nil {
		return err
	}
	if err := a.inbox.MarkRead(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Unread: %d\n", a.inbox.Unread())
	return nil
}

func (a *App) MarkAllRead(ctx context.Context, _ []string) error {
	if err := a.inbox.MarkAllRead(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "All notifications marked as read")
	return nil
}
