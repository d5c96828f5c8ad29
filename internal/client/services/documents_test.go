package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_Upload(t *testing.T) {
	fc := &fakeClient{}
	svc := NewDocumentService(fc)

	doc, err := svc.Upload(context.Background(), models.DocumentIDPhoto, "me.jpg", models.MimeJPEG, strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "me.jpg", doc.OriginalFilename)
	assert.Equal(t, []byte("jpeg-bytes"), fc.uploaded)
}

func TestDocumentService_Errors(t *testing.T) {
	ctx := context.Background()

	svc := NewDocumentService(&fakeClient{err: apiErr(404, "")})
	_, err := svc.Upload(ctx, models.DocumentOther, "x.pdf", models.MimePDF, strings.NewReader(""))
	assert.Equal(t, "Invalid document type", err.Error())
	assert.Equal(t, "Document not found", svc.Delete(ctx, 1).Error())

	svc = NewDocumentService(&fakeClient{err: apiErr(400, `"File is empty"`)})
	_, err = svc.Upload(ctx, models.DocumentOther, "x.pdf", models.MimePDF, strings.NewReader(""))
	assert.Equal(t, "File is empty", err.Error())

	svc = NewDocumentService(&fakeClient{err: apiErr(500, "")})
	_, err = svc.List(ctx)
	assert.Equal(t, "Failed to retrieve documents", err.Error())
	assert.ErrorIs(t, err, client.ErrServer)
}

func TestNotificationService_Errors(t *testing.T) {
	svc := NewNotificationService(&fakeClient{err: apiErr(500, "")})
	_, err := svc.List(context.Background())
	assert.Equal(t, "Failed to load notifications", err.Error())
	assert.Equal(t, "Failed to mark notification as read", svc.MarkRead(context.Background(), 1).Error())

	svc = NewNotificationService(&fakeClient{})
	assert.NoError(t, svc.MarkRead(context.Background(), 1))
}
