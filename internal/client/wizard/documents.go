package wizard

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/gabriel-vasile/mimetype"
)

const msgSelectFile = "Please select both a file and document type"

// Selection is a local file chosen for upload but not sent yet.
type Selection struct {
	Type        models.DocumentType
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// Sink stores a downloaded document and returns where it went.
type Sink interface {
	Put(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error)
}

// SelectFile records path as the pending upload for docType. The content
// type is sniffed from the file, falling back to its extension.
func (c *Controller) SelectFile(docType models.DocumentType, path string) (*Selection, error) {
	if docType == "" || path == "" {
		c.board.Error(SlotDocuments, msgSelectFile)
		return nil, invalid(msgSelectFile)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("select file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("select file: %s is a directory", path)
	}
	contentType, err := detectContentType(path)
	if err != nil {
		return nil, fmt.Errorf("select file: %w", err)
	}

	sel := &Selection{
		Type:        docType,
		Path:        path,
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
	}

	c.mu.Lock()
	c.selection = sel
	c.mu.Unlock()

	s := *sel
	return &s, nil
}

func detectContentType(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	ct := mt.String()
	if mt.Is("application/octet-stream") {
		if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
			ct = byExt
		}
	}
	ct, _, _ = strings.Cut(ct, ";")
	return strings.TrimSpace(ct), nil
}

// Selection returns the pending upload, or nil.
func (c *Controller) Selection() *Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selection == nil {
		return nil
	}
	s := *c.selection
	return &s
}

func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.selection = nil
	c.mu.Unlock()
}

// UploadSelected checks the pending selection against its document type
// policy and uploads it. A policy violation is reported without contacting
// the backend. On success the selection is cleared and the list reloaded.
func (c *Controller) UploadSelected(ctx context.Context) error {
	sel := c.Selection()
	if sel == nil {
		c.board.Error(SlotDocuments, msgSelectFile)
		return invalid(msgSelectFile)
	}
	if policy, ok := models.PolicyFor(sel.Type); ok {
		if msg := policy.Check(sel.ContentType, sel.Size); msg != "" {
			c.board.Error(SlotDocuments, msg)
			return invalid(msg)
		}
	}

	c.board.Clear(SlotDocuments)
	f, err := os.Open(sel.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", sel.Filename, err)
	}
	defer f.Close()

	doc, err := c.svc.Documents.Upload(ctx, sel.Type, sel.Filename, sel.ContentType, f)
	if err != nil {
		c.board.Error(SlotDocuments, err.Error())
		return err
	}
	c.log.Info(ctx, "document uploaded", "id", doc.ID, "type", string(doc.DocumentType), "size", doc.FileSize)

	c.mu.Lock()
	c.markCompleted(StepDocuments)
	c.selection = nil
	c.mu.Unlock()

	c.board.Success(SlotDocuments, fmt.Sprintf("%s uploaded successfully as %s!", doc.OriginalFilename, models.DocumentTypeLabel(doc.DocumentType)))
	return c.LoadDocuments(ctx)
}

// DeleteDocument asks for confirmation first. Declining is not an error.
func (c *Controller) DeleteDocument(ctx context.Context, id int64) error {
	ok, err := c.confirm.Confirm(ctx, PromptDeleteDocument)
	if err != nil || !ok {
		return err
	}
	c.board.Clear(SlotDocuments)

	if err := c.svc.Documents.Delete(ctx, id); err != nil {
		c.board.Error(SlotDocuments, err.Error())
		return err
	}
	c.board.Success(SlotDocuments, "Document deleted successfully")
	return c.LoadDocuments(ctx)
}

// DownloadDocument streams document id into sink and returns its location.
func (c *Controller) DownloadDocument(ctx context.Context, id int64, sink Sink) (string, error) {
	d, err := c.svc.Documents.Download(ctx, id)
	if err != nil {
		c.board.Error(SlotDocuments, err.Error())
		return "", err
	}
	defer d.Body.Close()

	name := d.Filename
	if name == "" {
		name = c.documentName(id)
	}
	loc, err := sink.Put(ctx, name, d.ContentType, d.Size, d.Body)
	if err != nil {
		c.board.Error(SlotDocuments, "Failed to download document")
		return "", fmt.Errorf("store document %d: %w", id, err)
	}
	return loc, nil
}

// documentName falls back to the uploaded filename, then to the id.
func (c *Controller) documentName(id int64) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.docs {
		if d.ID == id && d.OriginalFilename != "" {
			return d.OriginalFilename
		}
	}
	return fmt.Sprintf("document-%d", id)
}

func invalid(msg string) error {
	return &client.DisplayError{Message: msg, Kind: client.ErrValidation}
}
