package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
)

// AdminService backs the admin console: user listing, application review
// and dashboard statistics.
type AdminService interface {
	ListUsers(ctx context.Context, page, size int, sort string) (*models.Page[models.UserSummary], error)
	GetApplication(ctx context.Context, userID int64) (*models.ApplicationDetail, error)
	UpdateDocumentStatus(ctx context.Context, documentID int64, update models.DocumentStatusUpdate) (*models.AdminDocument, error)
	UpdateApplicationStatus(ctx context.Context, userID int64, status string) (*models.UserSummary, error)
	Statistic(ctx context.Context, name string) (float64, error)
}

type adminService struct {
	client client.Client
}

func NewAdminService(client client.Client) AdminService {
	return &adminService{client: client}
}

var expired = map[int]string{401: MsgSessionExpired}

var (
	listUsersMessages = messages{
		fallback: "Failed to load users. Please try again.",
		byStatus: expired,
	}
	applicationMessages = messages{
		fallback: "Failed to load application details. Please try again.",
		byStatus: expired,
	}
	applicationStatusMessages = messages{
		fallback: "Failed to update application status. Please try again.",
		byStatus: expired,
	}
	statisticMessages = messages{
		fallback: "Failed to load dashboard statistics",
		byStatus: expired,
	}
)

func (s *adminService) ListUsers(ctx context.Context, page, size int, sort string) (*models.Page[models.UserSummary], error) {
	p, err := s.client.ListUsers(ctx, page, size, sort)
	if err != nil {
		return nil, listUsersMessages.translate(err)
	}
	return p, nil
}

func (s *adminService) GetApplication(ctx context.Context, userID int64) (*models.ApplicationDetail, error) {
	d, err := s.client.GetUserApplication(ctx, userID)
	if err != nil {
		return nil, applicationMessages.translate(err)
	}
	return d, nil
}

func (s *adminService) UpdateDocumentStatus(ctx context.Context, documentID int64, update models.DocumentStatusUpdate) (*models.AdminDocument, error) {
	doc, err := s.client.UpdateDocumentStatus(ctx, documentID, update)
	if err != nil {
		m := messages{
			fallback: fmt.Sprintf("Failed to %s document. Please try again.", reviewVerb(update.NewStatus)),
			byStatus: expired,
		}
		return nil, m.translate(err)
	}
	return doc, nil
}

func (s *adminService) UpdateApplicationStatus(ctx context.Context, userID int64, status string) (*models.UserSummary, error) {
	u, err := s.client.UpdateApplicationStatus(ctx, userID, status)
	if err != nil {
		return nil, applicationStatusMessages.translate(err)
	}
	return u, nil
}

func (s *adminService) Statistic(ctx context.Context, name string) (float64, error) {
	v, err := s.client.Statistic(ctx, name)
	if err != nil {
		return 0, statisticMessages.translate(err)
	}
	return v, nil
}

func reviewVerb(status string) string {
	if status == models.ReviewApproved || status == models.ReviewValidated {
		return "validate"
	}
	return "reject"
}

// ReviewOutcome is the past-tense verb shown after a document review.
func ReviewOutcome(status string) string {
	if reviewVerb(status) == "validate" {
		return "validated"
	}
	return "rejected"
}
