package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/admissions/internal/client/admin"
	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/guard"
	"github.com/dmitrijs2005/admissions/internal/client/inbox"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/session"
	"github.com/dmitrijs2005/admissions/internal/client/wizard"
	"github.com/dmitrijs2005/admissions/internal/common"
	"github.com/dmitrijs2005/admissions/internal/logging"
	"github.com/stretchr/testify/require"
)

// ------------ sessions & auth ------------

type fakeSessions struct {
	mu      sync.Mutex
	token   string
	current *session.Session
	logouts int
}

func (f *fakeSessions) Current(context.Context) (*session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeSessions) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeSessions) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.token, f.current = "", nil
	return nil
}

func (f *fakeSessions) set(s *session.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = s
	f.token = ""
	if s != nil {
		f.token = s.Token
	}
}

func applicantSession() *session.Session {
	return &session.Session{Token: "tok-applicant", UserID: 11, Email: "ana@example.org",
		Roles: []string{common.RoleApplicant}, TokenExpiry: time.Now().Add(time.Hour)}
}

func adminSession() *session.Session {
	return &session.Session{Token: "tok-admin", UserID: 1, Email: "root@example.org",
		Roles: []string{common.RoleAdmin}, TokenExpiry: time.Now().Add(time.Hour)}
}

type fakeAuth struct {
	sessions *fakeSessions

	loginReq models.LoginRequest
	regReq   models.RegisterRequest
	result   *session.Session
	err      error
	logouts  int
}

func (f *fakeAuth) Login(_ context.Context, req models.LoginRequest) (*session.Session, error) {
	f.loginReq = req
	if f.err != nil {
		return nil, f.err
	}
	f.sessions.set(f.result)
	return f.result, nil
}

func (f *fakeAuth) Register(_ context.Context, req models.RegisterRequest) (*session.Session, error) {
	f.regReq = req
	if f.err != nil {
		return nil, f.err
	}
	f.sessions.set(f.result)
	return f.result, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logouts++
	return f.sessions.Logout(ctx)
}

// ------------ applicant services ------------

type fakePersonal struct {
	info   *models.PersonalInfo
	saved  []models.PersonalInfo
	saveFn func(models.PersonalInfo) error
}

func (f *fakePersonal) Get(context.Context) (*models.PersonalInfo, error) {
	if f.info == nil {
		return nil, nil
	}
	c := *f.info
	return &c, nil
}

func (f *fakePersonal) Save(_ context.Context, info models.PersonalInfo) (*models.PersonalInfo, error) {
	if f.saveFn != nil {
		if err := f.saveFn(info); err != nil {
			return nil, err
		}
	}
	f.saved = append(f.saved, info)
	f.info = &info
	return &info, nil
}

type fakeDocuments struct {
	docs      []models.Document
	uploads   []string
	deleted   []int64
	download  string
	uploadErr error
}

func (f *fakeDocuments) List(context.Context) ([]models.Document, error) {
	return append([]models.Document(nil), f.docs...), nil
}

func (f *fakeDocuments) Upload(_ context.Context, docType models.DocumentType, filename, contentType string, content io.Reader) (*models.Document, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	data, _ := io.ReadAll(content)
	f.uploads = append(f.uploads, filename)
	d := models.Document{ID: int64(len(f.docs) + 100), DocumentType: docType, OriginalFilename: filename,
		ContentType: contentType, FileSize: int64(len(data)), Status: models.DocumentUploaded}
	f.docs = append(f.docs, d)
	return &d, nil
}

func (f *fakeDocuments) Download(_ context.Context, id int64) (*client.Download, error) {
	return &client.Download{Body: io.NopCloser(strings.NewReader(f.download)), Filename: "transcript.pdf",
		ContentType: models.MimePDF, Size: int64(len(f.download))}, nil
}

func (f *fakeDocuments) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeAcademic struct {
	items   []models.AcademicHistory
	added   []models.AcademicHistory
	updated []models.AcademicHistory
}

func (f *fakeAcademic) List(context.Context) ([]models.AcademicHistory, error) {
	return append([]models.AcademicHistory(nil), f.items...), nil
}

func (f *fakeAcademic) Add(_ context.Context, h models.AcademicHistory) (*models.AcademicHistory, error) {
	h.ID = int64(len(f.items) + 1)
	f.added = append(f.added, h)
	f.items = append(f.items, h)
	return &h, nil
}

func (f *fakeAcademic) Update(_ context.Context, id int64, h models.AcademicHistory) (*models.AcademicHistory, error) {
	f.updated = append(f.updated, h)
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i] = h
		}
	}
	return &h, nil
}

func (f *fakeAcademic) Delete(context.Context, int64) error { return nil }

type fakeContact struct {
	info  *models.ContactInfo
	saved []models.ContactInfo
}

func (f *fakeContact) Get(context.Context) (*models.ContactInfo, error) { return f.info, nil }

func (f *fakeContact) Save(_ context.Context, info models.ContactInfo) (*models.ContactInfo, error) {
	f.saved = append(f.saved, info)
	return &info, nil
}

type fakeNotifications struct {
	items  []models.Notification
	unread int64
	read   []int64
}

func (f *fakeNotifications) List(context.Context) ([]models.Notification, error) {
	return append([]models.Notification(nil), f.items...), nil
}

func (f *fakeNotifications) UnreadCount(context.Context) (int64, error) { return f.unread, nil }

func (f *fakeNotifications) MarkRead(_ context.Context, id int64) error {
	f.read = append(f.read, id)
	return nil
}

func (f *fakeNotifications) MarkAllRead(context.Context) error { return nil }

// ------------ admin service ------------

type statusCall struct {
	id     int64
	status string
	notes  string
}

type fakeAdmin struct {
	pages    []int
	sorts    []string
	detail   *models.ApplicationDetail
	docCalls []statusCall
	appCalls []statusCall
}

func (f *fakeAdmin) ListUsers(_ context.Context, page, _ int, sort string) (*models.Page[models.UserSummary], error) {
	f.pages = append(f.pages, page)
	f.sorts = append(f.sorts, sort)
	return &models.Page[models.UserSummary]{
		Content:       []models.UserSummary{{ID: 7, Email: "ana@example.org", FirstName: "Ana", LastName: "Diaz", Enabled: true}},
		TotalPages:    3,
		TotalElements: 21,
		Number:        page,
	}, nil
}

func (f *fakeAdmin) GetApplication(_ context.Context, userID int64) (*models.ApplicationDetail, error) {
	if f.detail == nil {
		return nil, client.Display("Failed to load user application", client.ErrNotFound)
	}
	d := *f.detail
	d.Documents = append([]models.AdminDocument(nil), f.detail.Documents...)
	return &d, nil
}

func (f *fakeAdmin) UpdateDocumentStatus(_ context.Context, id int64, u models.DocumentStatusUpdate) (*models.AdminDocument, error) {
	f.docCalls = append(f.docCalls, statusCall{id: id, status: u.NewStatus, notes: u.ValidationNotes})
	return &models.AdminDocument{ID: id, Status: u.NewStatus, ValidationNotes: &u.ValidationNotes}, nil
}

func (f *fakeAdmin) UpdateApplicationStatus(_ context.Context, id int64, status string) (*models.UserSummary, error) {
	f.appCalls = append(f.appCalls, statusCall{id: id, status: status})
	return &models.UserSummary{ID: id, ApplicationStatus: status}, nil
}

func (f *fakeAdmin) Statistic(_ context.Context, name string) (float64, error) {
	if name == client.StatCompletionRate {
		return 62.5, nil
	}
	return 4, nil
}

// ------------ harness ------------

type memorySink struct {
	name string
	body []byte
}

func (m *memorySink) Put(_ context.Context, name, _ string, _ int64, body io.Reader) (string, error) {
	m.name = name
	m.body, _ = io.ReadAll(body)
	return "mem://" + name, nil
}

type harness struct {
	app      *App
	out      *bytes.Buffer
	sessions *fakeSessions
	auth     *fakeAuth
	router   *guard.Router
	personal *fakePersonal
	docs     *fakeDocuments
	academic *fakeAcademic
	contact  *fakeContact
	notes    *fakeNotifications
	admin    *fakeAdmin
	sink     *memorySink
}

// newHarness builds an App over fakes. input is what the user will type.
func newHarness(t *testing.T, input string) *harness {
	t.Helper()

	h := &harness{
		out:      &bytes.Buffer{},
		sessions: &fakeSessions{},
		personal: &fakePersonal{},
		docs:     &fakeDocuments{},
		academic: &fakeAcademic{},
		contact:  &fakeContact{},
		notes:    &fakeNotifications{},
		admin:    &fakeAdmin{},
		sink:     &memorySink{},
	}
	h.auth = &fakeAuth{sessions: h.sessions}
	h.router = guard.NewRouter(h.sessions, guard.DefaultRoutes(), logging.Nop())

	reader := bufio.NewReader(strings.NewReader(input))
	wiz, err := wizard.New(wizard.Config{
		Services: wizard.Services{
			PersonalInfo:    h.personal,
			Documents:       h.docs,
			AcademicHistory: h.academic,
			ContactInfo:     h.contact,
		},
		Confirmer: promptConfirmer{reader: reader, out: h.out},
	})
	require.NoError(t, err)

	h.app = &App{
		log:       logging.Nop(),
		out:       h.out,
		reader:    reader,
		sessions:  h.sessions,
		router:    h.router,
		auth:      h.auth,
		wizard:    wiz,
		inbox:     inbox.New(h.notes, nil),
		listing:   admin.NewListing(h.admin, 0, nil),
		review:    admin.NewReview(admin.ReviewConfig{Service: h.admin}),
		dashboard: admin.NewDashboard(h.admin, nil),
		openSink: func(context.Context, string) (wizard.Sink, error) {
			return h.sink, nil
		},
	}
	h.app.mount()
	t.Cleanup(h.app.Close)
	return h
}

// signIn puts s in the session store and navigates to its landing route.
func (h *harness) signIn(t *testing.T, s *session.Session, path string) {
	t.Helper()
	h.sessions.set(s)
	require.NoError(t, h.router.Navigate(context.Background(), path))
}
