package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/admissions/internal/client/models"
)

const maxErrorBody = 64 << 10

// ClientConfig holds configuration for creating an HTTPClient.
type ClientConfig struct {
	// BaseURL is the backend origin, e.g. "http://localhost:8080".
	BaseURL string
	// Authenticator wraps the transport. Required.
	Authenticator *Authenticator
	// Timeout bounds each request. Zero means no limit.
	Timeout time.Duration
}

// HTTPClient implements Client over REST/JSON.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(config ClientConfig) (*HTTPClient, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("client: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("client: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if config.Authenticator == nil {
		return nil, fmt.Errorf("client: Authenticator is required")
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Transport:     config.Authenticator,
			CheckRedirect: config.Authenticator.CheckRedirect,
			Timeout:       config.Timeout,
		},
	}, nil
}

// doJSON sends body as JSON and decodes a 2xx response into out. Any other
// outcome becomes an *APIError.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// send performs req and returns the response only when it is 2xx.
func (c *HTTPClient) send(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, mapError(req, nil, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	return nil, mapError(req, resp, nil)
}

func mapError(req *http.Request, resp *http.Response, err error) error {
	apiErr := &APIError{Method: req.Method, URL: req.URL.Redacted(), Err: err}
	if resp != nil {
		apiErr.Status = resp.StatusCode
		apiErr.Body, _ = io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	}
	return apiErr
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

const (
	personalInfoPath    = "/api/applicant/personal-info"
	academicHistoryPath = "/api/applicant/academic-history"
	contactInfoPath     = "/api/applicant/contact-info"
	documentsPath       = "/api/applicant/documents"
	notificationsPath   = "/api/applicant/notifications"
	adminUsersPath      = "/api/admin/users"
)

func (c *HTTPClient) GetPersonalInfo(ctx context.Context) (*models.PersonalInfo, error) {
	var info models.PersonalInfo
	if err := c.doJSON(ctx, http.MethodGet, personalInfoPath, nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *HTTPClient) SavePersonalInfo(ctx context.Context, info models.PersonalInfo) (*models.PersonalInfo, error) {
	var saved models.PersonalInfo
	if err := c.doJSON(ctx, http.MethodPut, personalInfoPath, nil, info, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *HTTPClient) ListAcademicHistory(ctx context.Context) ([]models.AcademicHistory, error) {
	var list []models.AcademicHistory
	if err := c.doJSON(ctx, http.MethodGet, academicHistoryPath, nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) AddAcademicHistory(ctx context.Context, h models.AcademicHistory) (*models.AcademicHistory, error) {
	var saved models.AcademicHistory
	if err := c.doJSON(ctx, http.MethodPost, academicHistoryPath, nil, h, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *HTTPClient) UpdateAcademicHistory(ctx context.Context, id int64, h models.AcademicHistory) (*models.AcademicHistory, error) {
	var saved models.AcademicHistory
	if err := c.doJSON(ctx, http.MethodPut, academicHistoryPath+"/"+idPath(id), nil, h, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *HTTPClient) DeleteAcademicHistory(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, academicHistoryPath+"/"+idPath(id), nil, nil, nil)
}

func (c *HTTPClient) GetContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	var info models.ContactInfo
	if err := c.doJSON(ctx, http.MethodGet, contactInfoPath, nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *HTTPClient) SaveContactInfo(ctx context.Context, info models.ContactInfo) (*models.ContactInfo, error) {
	var saved models.ContactInfo
	if err := c.doJSON(ctx, http.MethodPut, contactInfoPath, nil, info, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *HTTPClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var list []models.Document
	if err := c.doJSON(ctx, http.MethodGet, documentsPath, nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UploadDocument posts content as the multipart field "file".
func (c *HTTPClient) UploadDocument(ctx context.Context, docType models.DocumentType, filename, contentType string, content io.Reader) (*models.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{"name": "file", "filename": filename}))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, documentsPath+"/"+url.PathEscape(string(docType)), nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &doc, nil
}

// DownloadDocument streams the document body. The caller closes it.
func (c *HTTPClient) DownloadDocument(ctx context.Context, id int64) (*Download, error) {
	req, err := c.newRequest(ctx, http.MethodGet, documentsPath+"/"+idPath(id)+"/download", nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}

	d := &Download{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
	}
	if d.ContentType == "" {
		d.ContentType = "application/octet-stream"
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		d.Filename = params["filename"]
	}
	return d, nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, documentsPath+"/"+idPath(id), nil, nil, nil)
}

func (c *HTTPClient) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var list []models.Notification
	if err := c.doJSON(ctx, http.MethodGet, notificationsPath, nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) UnreadNotificationCount(ctx context.Context) (int64, error) {
	var n int64
	if err := c.doJSON(ctx, http.MethodGet, notificationsPath+"/unread-count", nil, nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPut, notificationsPath+"/"+idPath(id)+"/read", nil, struct{}{}, nil)
}

func (c *HTTPClient) MarkAllNotificationsRead(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPut, notificationsPath+"/mark-all-read", nil, struct{}{}, nil)
}

// ListUsers fetches one page of users. sort is "field,direction" and may be
// empty.
func (c *HTTPClient) ListUsers(ctx context.Context, page, size int, sort string) (*models.Page[models.UserSummary], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	if sort != "" {
		query.Set("sort", sort)
	}

	var p models.Page[models.UserSummary]
	if err := c.doJSON(ctx, http.MethodGet, adminUsersPath, query, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GetUserApplication(ctx context.Context, userID int64) (*models.ApplicationDetail, error) {
	var detail models.ApplicationDetail
	if err := c.doJSON(ctx, http.MethodGet, adminUsersPath+"/"+idPath(userID)+"/application", nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *HTTPClient) UpdateDocumentStatus(ctx context.Context, documentID int64, update models.DocumentStatusUpdate) (*models.AdminDocument, error) {
	var doc models.AdminDocument
	if err := c.doJSON(ctx, http.MethodPut, adminUsersPath+"/documents/"+idPath(documentID)+"/status", nil, update, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateApplicationStatus sends the new status as a bare JSON string.
func (c *HTTPClient) UpdateApplicationStatus(ctx context.Context, userID int64, status string) (*models.UserSummary, error) {
	var user models.UserSummary
	if err := c.doJSON(ctx, http.MethodPut, adminUsersPath+"/"+idPath(userID)+"/status", nil, status, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Statistic(ctx context.Context, name string) (float64, error) {
	var v float64
	if err := c.doJSON(ctx, http.MethodGet, adminUsersPath+"/dashboard/"+url.PathEscape(name), nil, nil, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func idPath(id int64) string {
	return strconv.FormatInt(id, 10)
}
