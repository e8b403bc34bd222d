package model

import (
	"time"

	"github.com/google/uuid"
)

// Application status values.
const (
	// ApplicationStatusApplied is the initial status of every application.
	ApplicationStatusApplied = "applied"
	// ApplicationStatusShortlisted indicates the recruiter wants to proceed.
	ApplicationStatusShortlisted = "shortlisted"
	// ApplicationStatusRejected indicates the application has been declined.
	ApplicationStatusRejected = "rejected"
)

// ValidApplicationStatus reports whether s is a recognized application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusShortlisted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application represents one applicant's submission to one job posting.
// The compound unique index is the real guard against double-applying;
// the handler's lookup only exists to produce a nicer error message.
type Application struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`

	JobID uint       `gorm:"not null;index;uniqueIndex:idx_applications_job_applicant" json:"job_id"`
	Job   JobPosting `gorm:"foreignKey:JobID;references:ID" json:"-"`

	ApplicantID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_applications_job_applicant" json:"applicant_id"`
	Applicant   User      `gorm:"foreignKey:ApplicantID;references:ID" json:"-"`

	ResumePath string `gorm:"type:text" json:"resume_path"`
	Status     string `gorm:"type:text;not null;default:'applied'" json:"status"`

	CreatedAt time.Time `json:"applied_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
