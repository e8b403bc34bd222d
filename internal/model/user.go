package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Role is the permission tier of an account. The set is closed: anything
// outside the three constants below is rejected before it reaches storage.
type Role string

// Account roles.
const (
	RoleApplicant Role = "applicant"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is one of the known account roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleApplicant, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// EditableUserInfo is the part of the base account the owner can change
// through profile update.
type EditableUserInfo struct {
	Name string `gorm:"type:text;not null" json:"name"`
}

// EditableProfile holds the free-form profile fields shared by both applicant
// and recruiter accounts. Applicants care about skills/experience/bio,
// recruiters about the company fields; both live on the same row.
type EditableProfile struct {
	Skills      pq.StringArray `gorm:"type:text[]" json:"skills"`
	Experience  string         `gorm:"type:text" json:"experience"`
	Bio         string         `gorm:"type:text" json:"bio"`
	CompanyName string         `gorm:"type:text" json:"company_name"`
	Website     string         `gorm:"type:text" json:"website"`
	Description string         `gorm:"type:text" json:"description"`
}

// User is the gorm model for every account regardless of role.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email    string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"type:text" json:"-"`
	Role     Role      `gorm:"type:text;not null;<-:create" json:"role"`
	Blocked  bool      `gorm:"not null;default:false" json:"blocked"`
	GoogleID string    `gorm:"type:text;index" json:"-"`

	EditableUserInfo
	EditableProfile

	// References into the upload store. Only the upload endpoints write these.
	ResumePath string `gorm:"type:text" json:"resume_path,omitempty"`
	LogoPath   string `gorm:"type:text" json:"logo_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
