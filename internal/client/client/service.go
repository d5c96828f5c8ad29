package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/admissions/internal/client/models"
)

// Dashboard statistic endpoints under /api/admin/users/dashboard/.
const (
	StatTotalApplications = "total-applications"
	StatPendingCount      = "pending-count"
	StatApprovedCount     = "approved-count"
	StatRejectedCount     = "rejected-count"
	StatCompletionRate    = "completion-rate"
)

// Download is a streamed document body. The caller closes Body.
type Download struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
	Size        int64
}

// Client is the backend REST contract.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)

	GetPersonalInfo(ctx context.Context) (*models.PersonalInfo, error)
	SavePersonalInfo(ctx context.Context, info models.PersonalInfo) (*models.PersonalInfo, error)

	ListAcademicHistory(ctx context.Context) ([]models.AcademicHistory, error)
	AddAcademicHistory(ctx context.Context, h models.AcademicHistory) (*models.AcademicHistory, error)
	UpdateAcademicHistory(ctx context.Context, id int64, h models.AcademicHistory) (*models.AcademicHistory, error)
	DeleteAcademicHistory(ctx context.Context, id int64) error

	GetContactInfo(ctx context.Context) (*models.ContactInfo, error)
	SaveContactInfo(ctx context.Context, info models.ContactInfo) (*models.ContactInfo, error)

	ListDocuments(ctx context.Context) ([]models.Document, error)
	UploadDocument(ctx context.Context, docType models.DocumentType, filename, contentType string, content io.Reader) (*models.Document, error)
	DownloadDocument(ctx context.Context, id int64) (*Download, error)
	DeleteDocument(ctx context.Context, id int64) error

	ListNotifications(ctx context.Context) ([]models.Notification, error)
	UnreadNotificationCount(ctx context.Context) (int64, error)
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context) error

	ListUsers(ctx context.Context, page, size int, sort string) (*models.Page[models.UserSummary], error)
	GetUserApplication(ctx context.Context, userID int64) (*models.ApplicationDetail, error)
	UpdateDocumentStatus(ctx context.Context, documentID int64, update models.DocumentStatusUpdate) (*models.AdminDocument, error)
	UpdateApplicationStatus(ctx context.Context, userID int64, status string) (*models.UserSummary, error)
	Statistic(ctx context.Context, name string) (float64, error)
}
