package models

import (
	"fmt"
	"strings"
)

type DocumentType string

const (
	DocumentIDPhoto              DocumentType = "ID_PHOTO"
	DocumentIDCardFront          DocumentType = "ID_CARD_FRONT"
	DocumentIDCardBack           DocumentType = "ID_CARD_BACK"
	DocumentPassport             DocumentType = "PASSPORT"
	DocumentDiplomaBac           DocumentType = "DIPLOMA_BAC"
	DocumentTranscript           DocumentType = "TRANSCRIPT"
	DocumentMotivationLetter     DocumentType = "MOTIVATION_LETTER"
	DocumentRecommendationLetter DocumentType = "RECOMMENDATION_LETTER"
	DocumentOther                DocumentType = "OTHER"
)

type DocumentStatus string

const (
	DocumentUploaded  DocumentStatus = "UPLOADED"
	DocumentValidated DocumentStatus = "VALIDATED"
	DocumentRejected  DocumentStatus = "REJECTED"
)

type Document struct {
	ID               int64          `json:"id"`
	DocumentType     DocumentType   `json:"documentType"`
	OriginalFilename string         `json:"originalFilename"`
	FileSize         int64          `json:"fileSize"`
	ContentType      string         `json:"contentType"`
	Status           DocumentStatus `json:"status"`
	UploadedAt       string         `json:"uploadedAt"`
	ValidatedAt      *string        `json:"validatedAt"`
	ValidationNotes  *string        `json:"validationNotes"`
}

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimePDF  = "application/pdf"
)

const mb = 1024 * 1024

// DocumentPolicy limits what may be uploaded for one document type.
type DocumentPolicy struct {
	Type         DocumentType
	Label        string
	Description  string
	AllowedTypes []string
	MaxSize      int64
}

// DocumentPolicies lists every document type in display order.
var DocumentPolicies = []DocumentPolicy{
	{DocumentIDPhoto, "ID Photo", "A recent passport-style photo (JPEG, PNG, max 1MB)", []string{MimeJPEG, MimePNG}, 1 * mb},
	{DocumentIDCardFront, "ID Card (Front)", "Front side of your national ID card (JPEG, PNG, PDF, max 2MB)", []string{MimeJPEG, MimePNG, MimePDF}, 2 * mb},
	{DocumentIDCardBack, "ID Card (Back)", "Back side of your national ID card (JPEG, PNG, PDF, max 2MB)", []string{MimeJPEG, MimePNG, MimePDF}, 2 * mb},
	{DocumentPassport, "Passport", "Main page of your passport (JPEG, PNG, PDF, max 2MB)", []string{MimeJPEG, MimePNG, MimePDF}, 2 * mb},
	{DocumentDiplomaBac, "High School Diploma", "Your high school diploma or equivalent (PDF, max 5MB)", []string{MimePDF}, 5 * mb},
	{DocumentTranscript, "Academic Transcript", "Your academic transcript (PDF, max 5MB)", []string{MimePDF}, 5 * mb},
	{DocumentMotivationLetter, "Motivation Letter", "A letter explaining your motivation (PDF, max 2MB)", []string{MimePDF}, 2 * mb},
	{DocumentRecommendationLetter, "Recommendation Letter", "A letter of recommendation (PDF, max 2MB)", []string{MimePDF}, 2 * mb},
	{DocumentOther, "Other Document", "Any other relevant document (PDF, max 5MB)", []string{MimePDF}, 5 * mb},
}

// PolicyFor returns the policy of t, or false for an unknown type.
func PolicyFor(t DocumentType) (DocumentPolicy, bool) {
	for _, p := range DocumentPolicies {
		if p.Type == t {
			return p, true
		}
	}
	return DocumentPolicy{}, false
}

// DocumentTypeLabel returns the display label of t, or t itself when unknown.
func DocumentTypeLabel(t DocumentType) string {
	if p, ok := PolicyFor(t); ok {
		return p.Label
	}
	return string(t)
}

// Check reports why a file of the given content type and size may not be
// uploaded under p, or "" when it may.
func (p DocumentPolicy) Check(contentType string, size int64) string {
	allowed := false
	for _, t := range p.AllowedTypes {
		if t == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Sprintf("Invalid file type. Allowed types for %s: %s", p.Label, strings.Join(p.AllowedTypes, ", "))
	}
	if size > p.MaxSize {
		return fmt.Sprintf("File size exceeds the limit of %gMB for %s", float64(p.MaxSize)/mb, p.Label)
	}
	return ""
}
