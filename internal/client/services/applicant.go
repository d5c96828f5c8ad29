package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/validate"
)

const minimumAge = "Applicant must be at least 16 years old."

// PersonalInfoService reads and writes the applicant's personal details.
// Get reports a missing record as client.ErrNotFound.
type PersonalInfoService interface {
	Get(ctx context.Context) (*models.PersonalInfo, error)
	Save(ctx context.Context, info models.PersonalInfo) (*models.PersonalInfo, error)
}

type personalInfoService struct {
	client client.Client
}

func NewPersonalInfoService(client client.Client) PersonalInfoService {
	return &personalInfoService{client: client}
}

var (
	getPersonalInfoMessages = messages{
		fallback: "Failed to retrieve personal information",
		byStatus: map[int]string{
			404: "No personal information found",
			403: MsgForbidden,
		},
	}
	savePersonalInfoMessages = messages{
		fallback: "Failed to save personal information",
		byStatus: map[int]string{
			403: MsgForbidden,
			401: MsgLoginRequired,
			0:   MsgUnreachable,
		},
		anyBody: true,
	}
)

func (s *personalInfoService) Get(ctx context.Context) (*models.PersonalInfo, error) {
	info, err := s.client.GetPersonalInfo(ctx)
	return info, getPersonalInfoMessages.translate(err)
}

func (s *personalInfoService) Save(ctx context.Context, info models.PersonalInfo) (*models.PersonalInfo, error) {
	info.DateOfBirth = validate.NormalizeDate(info.DateOfBirth)
	if err := check(info); err != nil {
		return nil, err
	}
	saved, err := s.client.SavePersonalInfo(ctx, info)
	if err != nil {
		err = savePersonalInfoMessages.translate(err)
		if err.Error() == minimumAge {
			err = client.Display(strings.TrimSuffix(minimumAge, "."), err)
		}
		return nil, err
	}
	return saved, nil
}

// AcademicHistoryService manages the applicant's academic history entries.
type AcademicHistoryService interface {
	List(ctx context.Context) ([]models.AcademicHistory, error)
	Add(ctx context.Context, h models.AcademicHistory) (*models.AcademicHistory, error)
	Update(ctx context.Context, id int64, h models.AcademicHistory) (*models.AcademicHistory, error)
	Delete(ctx context.Context, id int64) error
}

type academicHistoryService struct {
	client client.Client
}

func NewAcademicHistoryService(client client.Client) AcademicHistoryService {
	return &academicHistoryService{client: client}
}

var (
	listAcademicMessages = messages{
		fallback: "Failed to retrieve academic history",
		byStatus: map[int]string{404: "No academic history found"},
	}
	addAcademicMessages = messages{
		fallback: "Failed to add academic history",
	}
	updateAcademicMessages = messages{
		fallback: "Failed to update academic history",
		byStatus: map[int]string{404: "Academic history not found"},
	}
	deleteAcademicMessages = messages{
		fallback: "Failed to delete academic history",
		byStatus: map[int]string{404: "Academic history not found"},
	}
)

func (s *academicHistoryService) List(ctx context.Context) ([]models.AcademicHistory, error) {
	list, err := s.client.ListAcademicHistory(ctx)
	return list, listAcademicMessages.translate(err)
}

func (s *academicHistoryService) Add(ctx context.Context, h models.AcademicHistory) (*models.AcademicHistory, error) {
	h = normalizeAcademic(h)
	if err := check(h); err != nil {
		return nil, err
	}
	saved, err := s.client.AddAcademicHistory(ctx, h)
	if err != nil {
		return nil, addAcademicMessages.translate(err)
	}
	return saved, nil
}

func (s *academicHistoryService) Update(ctx context.Context, id int64, h models.AcademicHistory) (*models.AcademicHistory, error) {
	h = normalizeAcademic(h)
	if err := check(h); err != nil {
		return nil, err
	}
	saved, err := s.client.UpdateAcademicHistory(ctx, id, h)
	if err != nil {
		return nil, updateAcademicMessages.translate(err)
	}
	return saved, nil
}

func (s *academicHistoryService) Delete(ctx context.Context, id int64) error {
	return deleteAcademicMessages.translate(s.client.DeleteAcademicHistory(ctx, id))
}

// normalizeAcademic formats dates as the backend expects and drops an
// empty end date.
func normalizeAcademic(h models.AcademicHistory) models.AcademicHistory {
	h.StartDate = validate.NormalizeDate(h.StartDate)
	if h.EndDate != nil {
		end := validate.NormalizeDate(*h.EndDate)
		if end == "" {
			h.EndDate = nil
		} else {
			h.EndDate = &end
		}
	}
	return h
}

// ContactInfoService reads and writes the applicant's contact details.
type ContactInfoService interface {
	Get(ctx context.Context) (*models.ContactInfo, error)
	Save(ctx context.Context, info models.ContactInfo) (*models.ContactInfo, error)
}

type contactInfoService struct {
	client client.Client
}

func NewContactInfoService(client client.Client) ContactInfoService {
	return &contactInfoService{client: client}
}

var (
	getContactMessages = messages{
		fallback: "Failed to retrieve contact information",
		byStatus: map[int]string{404: "No contact information found"},
	}
	saveContactMessages = messages{
		fallback: "Failed to save contact information",
		byStatus: map[int]string{
			404: "Contact info endpoint not found - check if backend controller exists",
			0:   MsgUnreachable,
		},
	}
)

func (s *contactInfoService) Get(ctx context.Context) (*models.ContactInfo, error) {
	info, err := s.client.GetContactInfo(ctx)
	return info, getContactMessages.translate(err)
}

func (s *contactInfoService) Save(ctx context.Context, info models.ContactInfo) (*models.ContactInfo, error) {
	if err := check(info); err != nil {
		return nil, err
	}
	saved, err := s.client.SaveContactInfo(ctx, info)
	if err != nil {
		return nil, saveContactMessages.translate(err)
	}
	return saved, nil
}
