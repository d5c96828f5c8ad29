package models

type UserSummary struct {
	ID                int64    `json:"id"`
	Email             string   `json:"email"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Roles             []string `json:"roles"`
	Provider          string   `json:"provider"`
	Enabled           bool     `json:"enabled"`
	Locked            bool     `json:"locked"`
	CreatedAt         string   `json:"createdAt"`
	ApplicationStatus string   `json:"applicationStatus,omitempty"`
}

// AdminDocument is the admin view of an uploaded document.
type AdminDocument struct {
	ID               int64   `json:"id"`
	Type             string  `json:"type"`
	DocumentType     string  `json:"documentType"`
	FileName         string  `json:"fileName"`
	OriginalFilename string  `json:"originalFilename"`
	FileSize         int64   `json:"fileSize"`
	ContentType      string  `json:"contentType"`
	Status           string  `json:"status"`
	UploadedAt       string  `json:"uploadedAt"`
	ValidatedAt      *string `json:"validatedAt,omitempty"`
	ValidationNotes  *string `json:"validationNotes,omitempty"`
}

// ApplicationDetail is the aggregate fetched once per admin inspection.
type ApplicationDetail struct {
	UserSummary     UserSummary       `json:"userSummary"`
	PersonalInfo    *PersonalInfo     `json:"personalInfo"`
	ContactInfo     *ContactInfo      `json:"contactInfo"`
	AcademicHistory []AcademicHistory `json:"academicHistory"`
	Documents       []AdminDocument   `json:"documents"`
}

// Statuses accepted by the document status endpoint.
const (
	ReviewApproved      = "APPROVED"
	ReviewValidated     = "VALIDATED"
	ReviewRejected      = "REJECTED"
	ReviewPendingReview = "PENDING_REVIEW"
)

type DocumentStatusUpdate struct {
	NewStatus       string `json:"newStatus"`
	ValidationNotes string `json:"validationNotes,omitempty"`
}

// Page is the subset of the backend's paged response the client reads.
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalPages       int   `json:"totalPages"`
	TotalElements    int64 `json:"totalElements"`
	Size             int   `json:"size"`
	Number           int   `json:"number"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	NumberOfElements int   `json:"numberOfElements"`
	Empty            bool  `json:"empty"`
}

// Statistics holds the admin dashboard counters. A nil field was not loaded.
type Statistics struct {
	TotalApplications *int64
	Pending           *int64
	Approved          *int64
	Rejected          *int64
	CompletionRate    *float64
}
