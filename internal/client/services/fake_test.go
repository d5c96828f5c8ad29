package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/session"
)

// fakeClient implements client.Client for the services tests. Methods not
// overridden below panic through the nil embedded interface.
type fakeClient struct {
	client.Client

	calls int
	err   error

	authResp     *models.AuthResponse
	lastLogin    models.LoginRequest
	personalInfo *models.PersonalInfo
	savedInfo    models.PersonalInfo
	academic     []models.AcademicHistory
	lastAcademic models.AcademicHistory
	contact      *models.ContactInfo
	docs         []models.Document
	uploaded     []byte
	users        *models.Page[models.UserSummary]
	lastSort     string
	stat         float64
}

func (f *fakeClient) Login(_ context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	f.calls++
	f.lastLogin = req
	return f.authResp, f.err
}

func (f *fakeClient) Register(_ context.Context, _ models.RegisterRequest) (*models.AuthResponse, error) {
	f.calls++
	return f.authResp, f.err
}

func (f *fakeClient) GetPersonalInfo(context.Context) (*models.PersonalInfo, error) {
	f.calls++
	return f.personalInfo, f.err
}

func (f *fakeClient) SavePersonalInfo(_ context.Context, info models.PersonalInfo) (*models.PersonalInfo, error) {
	f.calls++
	f.savedInfo = info
	if f.err != nil {
		return nil, f.err
	}
	return &info, nil
}

func (f *fakeClient) ListAcademicHistory(context.Context) ([]models.AcademicHistory, error) {
	f.calls++
	return f.academic, f.err
}

func (f *fakeClient) AddAcademicHistory(_ context.Context, h models.AcademicHistory) (*models.AcademicHistory, error) {
	f.calls++
	f.lastAcademic = h
	if f.err != nil {
		return nil, f.err
	}
	h.ID = 1
	return &h, nil
}

func (f *fakeClient) UpdateAcademicHistory(_ context.Context, id int64, h models.AcademicHistory) (*models.AcademicHistory, error) {
	f.calls++
	f.lastAcademic = h
	if f.err != nil {
		return nil, f.err
	}
	h.ID = id
	return &h, nil
}

func (f *fakeClient) DeleteAcademicHistory(context.Context, int64) error {
	f.calls++
	return f.err
}

func (f *fakeClient) GetContactInfo(context.Context) (*models.ContactInfo, error) {
	f.calls++
	return f.contact, f.err
}

func (f *fakeClient) SaveContactInfo(_ context.Context, info models.ContactInfo) (*models.ContactInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &info, nil
}

func (f *fakeClient) ListDocuments(context.Context) ([]models.Document, error) {
	f.calls++
	return f.docs, f.err
}

func (f *fakeClient) UploadDocument(_ context.Context, docType models.DocumentType, filename, contentType string, content io.Reader) (*models.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	f.uploaded = b
	return &models.Document{ID: 7, DocumentType: docType, OriginalFilename: filename, ContentType: contentType, FileSize: int64(len(b))}, nil
}

func (f *fakeClient) DeleteDocument(context.Context, int64) error {
	f.calls++
	return f.err
}

func (f *fakeClient) ListNotifications(context.Context) ([]models.Notification, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeClient) MarkNotificationRead(context.Context, int64) error {
	f.calls++
	return f.err
}

func (f *fakeClient) ListUsers(_ context.Context, _, _ int, sort string) (*models.Page[models.UserSummary], error) {
	f.calls++
	f.lastSort = sort
	return f.users, f.err
}

func (f *fakeClient) UpdateDocumentStatus(_ context.Context, id int64, u models.DocumentStatusUpdate) (*models.AdminDocument, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.AdminDocument{ID: id, Status: u.NewStatus}, nil
}

func (f *fakeClient) GetUserApplication(context.Context, int64) (*models.ApplicationDetail, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.ApplicationDetail{}, nil
}

func (f *fakeClient) UpdateApplicationStatus(_ context.Context, id int64, status string) (*models.UserSummary, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserSummary{ID: id, ApplicationStatus: status}, nil
}

func (f *fakeClient) Statistic(context.Context, string) (float64, error) {
	f.calls++
	return f.stat, f.err
}

// fakeSessions records session mutations.
type fakeSessions struct {
	started []models.AuthResponse
	logouts int
	err     error
}

func (f *fakeSessions) Login(_ context.Context, resp models.AuthResponse) (*session.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.started = append(f.started, resp)
	return &session.Session{Token: resp.AccessToken, UserID: resp.UserID, Email: resp.Email, Roles: resp.Roles}, nil
}

func (f *fakeSessions) Logout(context.Context) error {
	f.logouts++
	return nil
}

func apiErr(status int, body string) error {
	return &client.APIError{Method: "GET", URL: "http://api.test/api/x", Status: status, Body: []byte(body)}
}
