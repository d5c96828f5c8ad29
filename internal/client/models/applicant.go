package models

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type IDDocumentType string

const (
	IDDocumentNationalIDCard IDDocumentType = "NATIONAL_ID_CARD"
	IDDocumentPassport       IDDocumentType = "PASSPORT"
	IDDocumentDriversLicense IDDocumentType = "DRIVERS_LICENSE"
	IDDocumentOther          IDDocumentType = "OTHER"
)

// PersonalInfo is step 1 of the application. DateOfBirth is YYYY-MM-DD.
type PersonalInfo struct {
	LastName       string         `json:"lastName" validate:"required,min=2,max=50"`
	FirstNames     string         `json:"firstNames" validate:"required,min=2,max=100"`
	Gender         Gender         `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	DateOfBirth    string         `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Nationality    string         `json:"nationality" validate:"required,min=2,max=50"`
	IDNumber       string         `json:"idNumber,omitempty"`
	IDDocumentType IDDocumentType `json:"idDocumentType" validate:"required,oneof=NATIONAL_ID_CARD PASSPORT DRIVERS_LICENSE OTHER"`
}

type AcademicHistory struct {
	ID              int64   `json:"id,omitempty"`
	InstitutionName string  `json:"institutionName" validate:"required"`
	Specialization  string  `json:"specialization" validate:"required"`
	StartDate       string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate         *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type Address struct {
	Street     string   `json:"street" validate:"required"`
	Street2    string   `json:"street2,omitempty"`
	City       string   `json:"city" validate:"required"`
	PostalCode string   `json:"postalCode" validate:"required"`
	Country    string   `json:"country" validate:"required"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
}

type ContactInfo struct {
	Email            string           `json:"email,omitempty"`
	EmailVerified    bool             `json:"emailVerified,omitempty"`
	PhoneNumber      string           `json:"phoneNumber" validate:"required"`
	Address          Address          `json:"address"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
}
