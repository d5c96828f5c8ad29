package admin

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
)

type listCall struct {
	page, size int
	sort       string
}

type fakeAdmin struct {
	mu sync.Mutex

	pages    map[int]*models.Page[models.UserSummary]
	listErr  error
	calls    []listCall
	detail   *models.ApplicationDetail
	getErr   error
	stats    map[string]float64
	statErrs map[string]error
	statFn   func(ctx context.Context, name string) (float64, error)
	docErr   error
	appErr   error
}

func (f *fakeAdmin) ListUsers(_ context.Context, page, size int, sort string) (*models.Page[models.UserSummary], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, listCall{page, size, sort})
	if f.listErr != nil {
		return nil, f.listErr
	}
	if p, ok := f.pages[page]; ok {
		return p, nil
	}
	return &models.Page[models.UserSummary]{}, nil
}

func (f *fakeAdmin) GetApplication(context.Context, int64) (*models.ApplicationDetail, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	d := *f.detail
	d.Documents = append([]models.AdminDocument(nil), f.detail.Documents...)
	return &d, nil
}

func (f *fakeAdmin) UpdateDocumentStatus(_ context.Context, id int64, u models.DocumentStatusUpdate) (*models.AdminDocument, error) {
	if f.docErr != nil {
		return nil, f.docErr
	}
	notes := u.ValidationNotes
	return &models.AdminDocument{ID: id, Status: u.NewStatus, ValidationNotes: &notes}, nil
}

func (f *fakeAdmin) UpdateApplicationStatus(_ context.Context, id int64, status string) (*models.UserSummary, error) {
	if f.appErr != nil {
		return nil, f.appErr
	}
	return &models.UserSummary{ID: id, Email: "ana@example.com", ApplicationStatus: status}, nil
}

func (f *fakeAdmin) Statistic(ctx context.Context, name string) (float64, error) {
	if f.statFn != nil {
		return f.statFn(ctx, name)
	}
	if err := f.statErrs[name]; err != nil {
		return 0, err
	}
	return f.stats[name], nil
}

func display(msg string, status int) error {
	return client.Display(msg, &client.APIError{Method: "GET", URL: "/api/admin/x", Status: status})
}
