package services

import (
	"context"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
)

type NotificationService interface {
	List(ctx context.Context) ([]models.Notification, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
}

type notificationService struct {
	client client.Client
}

func NewNotificationService(client client.Client) NotificationService {
	return &notificationService{client: client}
}

var (
	listNotificationsMessages = messages{fallback: "Failed to load notifications"}
	unreadCountMessages       = messages{fallback: "Failed to load unread notification count"}
	markReadMessages          = messages{fallback: "Failed to mark notification as read"}
	markAllReadMessages       = messages{fallback: "Failed to mark notifications as read"}
)

func (s *notificationService) List(ctx context.Context) ([]models.Notification, error) {
	list, err := s.client.ListNotifications(ctx)
	return list, listNotificationsMessages.translate(err)
}

func (s *notificationService) UnreadCount(ctx context.Context) (int64, error) {
	n, err := s.client.UnreadNotificationCount(ctx)
	return n, unreadCountMessages.translate(err)
}

func (s *notificationService) MarkRead(ctx context.Context, id int64) error {
	return markReadMessages.translate(s.client.MarkNotificationRead(ctx, id))
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	return markAllReadMessages.translate(s.client.MarkAllNotificationsRead(ctx))
}
