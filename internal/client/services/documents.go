package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
)

// DocumentService manages the applicant's uploaded documents. Policy checks
// on type and size belong to the caller.
type DocumentService interface {
	List(ctx context.Context) ([]models.Document, error)
	Upload(ctx context.Context, docType models.DocumentType, filename, contentType string, content io.Reader) (*models.Document, error)
	Download(ctx context.Context, id int64) (*client.Download, error)
	Delete(ctx context.Context, id int64) error
}

type documentService struct {
	client client.Client
}

func NewDocumentService(client client.Client) DocumentService {
	return &documentService{client: client}
}

var (
	listDocumentsMessages = messages{
		fallback: "Failed to retrieve documents",
	}
	uploadDocumentMessages = messages{
		fallback: "Failed to upload document",
		byStatus: map[int]string{404: "Invalid document type"},
	}
	downloadDocumentMessages = messages{
		fallback: "Failed to download document",
		byStatus: map[int]string{404: "Document not found"},
	}
	deleteDocumentMessages = messages{
		fallback: "Failed to delete document",
		byStatus: map[int]string{404: "Document not found"},
	}
)

func (s *documentService) List(ctx context.Context) ([]models.Document, error) {
	docs, err := s.client.ListDocuments(ctx)
	return docs, listDocumentsMessages.translate(err)
}

func (s *documentService) Upload(ctx context.Context, docType models.DocumentType, filename, contentType string, content io.Reader) (*models.Document, error) {
	doc, err := s.client.UploadDocument(ctx, docType, filename, contentType, content)
	if err != nil {
		return nil, uploadDocumentMessages.translate(err)
	}
	return doc, nil
}

func (s *documentService) Download(ctx context.Context, id int64) (*client.Download, error) {
	d, err := s.client.DownloadDocument(ctx, id)
	if err != nil {
		return nil, downloadDocumentMessages.translate(err)
	}
	return d, nil
}

func (s *documentService) Delete(ctx context.Context, id int64) error {
	return deleteDocumentMessages.translate(s.client.DeleteDocument(ctx, id))
}
