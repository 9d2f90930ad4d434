package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every status in display order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

type VisaStatus string

const (
	VisaStatusH1B       VisaStatus = "H1B"
	VisaStatusH4EAD     VisaStatus = "H4-EAD"
	VisaStatusGreenCard VisaStatus = "GreenCard"
	VisaStatusUSCitizen VisaStatus = "US Citizen"
)

func (v VisaStatus) Valid() bool {
	switch v {
	case VisaStatusH1B, VisaStatusH4EAD, VisaStatusGreenCard, VisaStatusUSCitizen:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentTypeW2  EmploymentType = "W2"
	EmploymentTypeC2C EmploymentType = "C2C"
)

func (e EmploymentType) Valid() bool {
	return e == EmploymentTypeW2 || e == EmploymentTypeC2C
}

// Application is one candidate submission. JobID is nil for candidates an
// admin entered by hand without a position.
type Application struct {
	ID                string            `gorm:"type:text;primaryKey" json:"id"`
	JobID             *string           `gorm:"type:text;index" json:"job_id"`
	Job               *Job              `gorm:"foreignKey:JobID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"jobs,omitempty"`
	FullName          string            `gorm:"type:varchar(255);not null" json:"full_name"`
	Email             string            `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone             *string           `gorm:"type:varchar(50)" json:"phone,omitempty"`
	ResumeURL         *string           `gorm:"type:text" json:"resume_url,omitempty"`
	CoverLetter       *string           `gorm:"type:text" json:"cover_letter,omitempty"`
	VisaStatus        *VisaStatus       `gorm:"type:varchar(20)" json:"visa_status,omitempty"`
	EmploymentType    *EmploymentType   `gorm:"type:varchar(10)" json:"employment_type,omitempty"`
	WillingToRelocate bool              `gorm:"not null;default:false" json:"willing_to_relocate"`
	Status            ApplicationStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	CreatedAt         time.Time         `gorm:"index" json:"created_at"`
}

func (a *Application) TableName() string {
	return "applications"
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
