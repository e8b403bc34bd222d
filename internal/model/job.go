package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Listing status of a job posting. Independent from moderation: a closed
// posting can still be approved and a rejected one can still be open.
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Moderation status of a job posting, changed only by admins.
const (
	ModerationApproved = "approved"
	ModerationRejected = "rejected"
)

// ValidModerationStatus reports whether s is a recognized moderation status.
func ValidModerationStatus(s string) bool {
	return s == ModerationApproved || s == ModerationRejected
}

// EditableJobInfo is the part of a job posting the owner may edit. Ownership
// and status fields are deliberately outside this struct so an update request
// can never touch them.
type EditableJobInfo struct {
	Title        string         `gorm:"type:text" json:"title"`
	Company      string         `gorm:"type:text" json:"company"`
	Location     string         `gorm:"type:text" json:"location"`
	SalaryRange  string         `gorm:"type:text" json:"salary_range"`
	Description  string         `gorm:"type:text" json:"description"`
	Requirements pq.StringArray `gorm:"type:text[]" json:"requirements"`
}

// JobPosting is the gorm model for job postings.
type JobPosting struct {
	ID      uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"owner_id"`
	Owner   User      `gorm:"foreignKey:OwnerID;references:ID" json:"-"`

	EditableJobInfo

	Status           string `gorm:"type:text;not null;default:'open'" json:"status"`
	ModerationStatus string `gorm:"type:text;not null;default:'approved'" json:"moderation_status"`

	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
