package wizard

import (
	"bytes"
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
)

func notFound(msg string) error {
	return client.Display(msg, &client.APIError{Method: "GET", URL: "/api/applicant/x", Status: 404})
}

func serverError(msg string) error {
	return client.Display(msg, &client.APIError{Method: "GET", URL: "/api/applicant/x", Status: 500})
}

type fakePersonal struct {
	info    *models.PersonalInfo
	getErr  error
	saveErr error
	gets    atomic.Int32
	saves   int
	// gate, when set, blocks Get until a value is received.
	gate chan *models.PersonalInfo
}

func (f *fakePersonal) Get(context.Context) (*models.PersonalInfo, error) {
	f.gets.Add(1)
	if f.gate != nil {
		return <-f.gate, nil
	}
	return f.info, f.getErr
}

func (f *fakePersonal) Save(_ context.Context, info models.PersonalInfo) (*models.PersonalInfo, error) {
	f.saves++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.info = &info
	return &info, nil
}

type fakeDocuments struct {
	mu        sync.Mutex
	docs      []models.Document
	listErr   error
	uploadErr error
	deleteErr error
	uploads   int
	lists     int
	deleted   []int64
	body      []byte
	download  *client.Download
}

func (f *fakeDocuments) List(context.Context) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return append([]models.Document(nil), f.docs...), f.listErr
}

func (f *fakeDocuments) Upload(_ context.Context, docType models.DocumentType, filename, contentType string, content io.Reader) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	f.body = b
	doc := models.Document{ID: int64(len(f.docs) + 1), DocumentType: docType, OriginalFilename: filename, ContentType: contentType, FileSize: int64(len(b)), Status: models.DocumentUploaded}
	f.docs = append(f.docs, doc)
	return &doc, nil
}

func (f *fakeDocuments) Download(context.Context, int64) (*client.Download, error) {
	if f.download == nil {
		return nil, notFound("Document not found")
	}
	return f.download, nil
}

func (f *fakeDocuments) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.docs[:0]
	for _, d := range f.docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	f.docs = kept
	return nil
}

type fakeAcademic struct {
	list    []models.AcademicHistory
	listErr error
	saveErr error
	added   []models.AcademicHistory
	updated []int64
	deleted []int64
}

func (f *fakeAcademic) List(context.Context) ([]models.AcademicHistory, error) {
	return f.list, f.listErr
}

func (f *fakeAcademic) Add(_ context.Context, h models.AcademicHistory) (*models.AcademicHistory, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	h.ID = int64(len(f.list) + 1)
	f.added = append(f.added, h)
	f.list = append(f.list, h)
	return &h, nil
}

func (f *fakeAcademic) Update(_ context.Context, id int64, h models.AcademicHistory) (*models.AcademicHistory, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.updated = append(f.updated, id)
	return &h, nil
}

func (f *fakeAcademic) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	f.list = nil
	return nil
}

type fakeContact struct {
	info    *models.ContactInfo
	getErr  error
	saveErr error
}

func (f *fakeContact) Get(context.Context) (*models.ContactInfo, error) { return f.info, f.getErr }

func (f *fakeContact) Save(_ context.Context, info models.ContactInfo) (*models.ContactInfo, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return &info, nil
}

type fakeConfirmer struct {
	answer  bool
	prompts []string
}

func (f *fakeConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, nil
}

type memorySink struct {
	name string
	data bytes.Buffer
}

func (m *memorySink) Put(_ context.Context, name, _ string, _ int64, body io.Reader) (string, error) {
	m.name = name
	_, err := io.Copy(&m.data, body)
	return "mem://" + name, err
}
