package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_UpdateDocumentStatus(t *testing.T) {
	ctx := context.Background()

	svc := NewAdminService(&fakeClient{})
	doc, err := svc.UpdateDocumentStatus(ctx, 4, models.DocumentStatusUpdate{NewStatus: models.ReviewApproved})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewApproved, doc.Status)

	svc = NewAdminService(&fakeClient{err: apiErr(500, "")})
	_, err = svc.UpdateDocumentStatus(ctx, 4, models.DocumentStatusUpdate{NewStatus: models.ReviewApproved})
	assert.Equal(t, "Failed to validate document. Please try again.", err.Error())
	_, err = svc.UpdateDocumentStatus(ctx, 4, models.DocumentStatusUpdate{NewStatus: models.ReviewRejected})
	assert.Equal(t, "Failed to reject document. Please try again.", err.Error())

	svc = NewAdminService(&fakeClient{err: apiErr(401, "")})
	_, err = svc.UpdateDocumentStatus(ctx, 4, models.DocumentStatusUpdate{NewStatus: models.ReviewRejected})
	assert.Equal(t, MsgSessionExpired, err.Error())
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestAdminService_Messages(t *testing.T) {
	ctx := context.Background()
	svc := NewAdminService(&fakeClient{err: apiErr(500, "")})

	_, err := svc.ListUsers(ctx, 0, 10, "createdAt,desc")
	assert.Equal(t, "Failed to load users. Please try again.", err.Error())
	_, err = svc.GetApplication(ctx, 1)
	assert.Equal(t, "Failed to load application details. Please try again.", err.Error())
	_, err = svc.UpdateApplicationStatus(ctx, 1, "APPROVED")
	assert.Equal(t, "Failed to update application status. Please try again.", err.Error())
	_, err = svc.Statistic(ctx, client.StatPendingCount)
	assert.Equal(t, "Failed to load dashboard statistics", err.Error())
}

func TestReviewOutcome(t *testing.T) {
	assert.Equal(t, "validated", ReviewOutcome(models.ReviewApproved))
	assert.Equal(t, "validated", ReviewOutcome(models.ReviewValidated))
	assert.Equal(t, "rejected", ReviewOutcome(models.ReviewRejected))
}
