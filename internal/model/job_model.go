package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

func (s JobStatus) Valid() bool {
	return s == JobStatusOpen || s == JobStatusClosed
}

type Job struct {
	ID               string         `gorm:"type:text;primaryKey" json:"id"`
	Title            string         `gorm:"type:varchar(255);not null" json:"title"`
	Department       string         `gorm:"type:varchar(100);index" json:"department"`
	Location         string         `gorm:"type:varchar(255)" json:"location"`
	Type             string         `gorm:"type:varchar(50)" json:"type"` // e.g. "Full-time", "Contract"
	Description      string         `gorm:"type:text" json:"description"`
	Requirements     pq.StringArray `gorm:"type:text[]" json:"requirements"`
	Responsibilities pq.StringArray `gorm:"type:text[]" json:"responsibilities"`
	Status           JobStatus      `gorm:"type:varchar(20);not null;default:open;index" json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	CreatedBy        *string        `gorm:"type:text" json:"created_by"`
}

func (j *Job) TableName() string {
	return "jobs"
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = JobStatusOpen
	}
	return nil
}
