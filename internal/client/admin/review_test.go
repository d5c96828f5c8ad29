package admin

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/admissions/internal/client/banner"
	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/services"
	"github.com/dmitrijs2005/admissions/internal/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReview(t *testing.T, f *fakeAdmin) (*Review, *clock.FakeClock) {
	t.Helper()
	c := clock.Fake(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	r := NewReview(ReviewConfig{Service: f, Clock: c})
	t.Cleanup(r.Close)
	return r, c
}

func sampleDetail() *models.ApplicationDetail {
	return &models.ApplicationDetail{
		UserSummary: models.UserSummary{ID: 7, Email: "ana@example.com", ApplicationStatus: "PENDING_REVIEW"},
		Documents: []models.AdminDocument{
			{ID: 1, DocumentType: "PASSPORT", Status: "UPLOADED"},
			{ID: 2, DocumentType: "DIPLOMA_BAC", Status: "UPLOADED"},
			{ID: 3, DocumentType: "TRANSCRIPT", Status: "UPLOADED"},
		},
	}
}

func TestReview_UpdateDocumentStatus_PatchesOnlyMatch(t *testing.T) {
	f := &fakeAdmin{detail: sampleDetail()}
	r, c := newReview(t, f)
	ctx := context.Background()
	require.NoError(t, r.Load(ctx, 7))
	before := r.Detail()

	require.NoError(t, r.UpdateDocumentStatus(ctx, 2, models.ReviewApproved, "looks good"))

	after := r.Detail()
	assert.Equal(t, models.ReviewApproved, after.Documents[1].Status)
	assert.Equal(t, "looks good", *after.Documents[1].ValidationNotes)
	assert.Empty(t, cmp.Diff(before.Documents[0], after.Documents[0]))
	assert.Empty(t, cmp.Diff(before.Documents[2], after.Documents[2]))
	assert.Empty(t, cmp.Diff(before.UserSummary, after.UserSummary))

	m, ok := r.Banner()
	require.True(t, ok)
	assert.Equal(t, banner.Success, m.Kind)
	assert.Equal(t, "Document successfully validated", m.Text)

	c.Advance(3 * time.Second)
	_, ok = r.Banner()
	assert.False(t, ok)
}

func TestReview_UpdateDocumentStatus_UnknownIDLeavesAggregate(t *testing.T) {
	f := &fakeAdmin{detail: sampleDetail()}
	r, _ := newReview(t, f)
	ctx := context.Background()
	require.NoError(t, r.Load(ctx, 7))
	before := r.Detail()

	require.NoError(t, r.UpdateDocumentStatus(ctx, 99, models.ReviewRejected, ""))
	assert.Empty(t, cmp.Diff(before, r.Detail()))
	m, _ := r.Banner()
	assert.Equal(t, "Document successfully rejected", m.Text)
}

func TestReview_UpdateApplicationStatus(t *testing.T) {
	f := &fakeAdmin{detail: sampleDetail()}
	r, _ := newReview(t, f)
	ctx := context.Background()
	require.NoError(t, r.Load(ctx, 7))

	require.NoError(t, r.UpdateApplicationStatus(ctx, "APPROVED"))
	d := r.Detail()
	assert.Equal(t, "APPROVED", d.UserSummary.ApplicationStatus)
	assert.Len(t, d.Documents, 3)

	m, _ := r.Banner()
	assert.Equal(t, "Application status updated to APPROVED", m.Text)
}

func TestReview_Errors(t *testing.T) {
	f := &fakeAdmin{detail: sampleDetail()}
	r, c := newReview(t, f)
	ctx := context.Background()
	require.NoError(t, r.Load(ctx, 7))

	f.docErr = display(services.MsgSessionExpired, 401)
	err := r.UpdateDocumentStatus(ctx, 1, models.ReviewRejected, "blurry")
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "UPLOADED", r.Detail().Documents[0].Status)

	m, ok := r.Banner()
	require.True(t, ok)
	assert.Equal(t, banner.Error, m.Kind)
	assert.Equal(t, services.MsgSessionExpired, m.Text)

	c.Advance(4 * time.Second)
	_, ok = r.Banner()
	assert.True(t, ok, "errors stay for 5s")
	c.Advance(time.Second)
	_, ok = r.Banner()
	assert.False(t, ok)

	f.getErr = display("Failed to load application details. Please try again.", 500)
	require.Error(t, r.Load(ctx, 8))
	assert.Nil(t, r.Detail())
	assert.Error(t, r.Err())
}
