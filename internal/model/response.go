package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserResponse holds the response data for login or registration.
type UserResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

// UserInfo is the trimmed identity view returned when a client asks who the
// presented token belongs to.
type UserInfo struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Role    Role      `json:"role"`
	Blocked bool      `json:"blocked"`
}

// ToUserInfo trims an account down to its identity fields.
func (u *User) ToUserInfo() UserInfo {
	return UserInfo{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Blocked: u.Blocked,
	}
}

// GoogleUserInfo mirrors the fields of Google's userinfo endpoint response.
type GoogleUserInfo struct {
	GID   string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// JobSummary is the compact posting view embedded in application listings.
type JobSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	SalaryRange string `json:"salary_range"`
}

// ToJobSummary converts a posting to its compact listing view.
func (j *JobPosting) ToJobSummary() JobSummary {
	return JobSummary{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		SalaryRange: j.SalaryRange,
	}
}

// ApplicationWithJob joins an application with the posting it targets. Used
// when an applicant lists their own applications.
type ApplicationWithJob struct {
	ID         uint       `json:"id"`
	Status     string     `json:"status"`
	ResumePath string     `json:"resume_path"`
	AppliedAt  time.Time  `json:"applied_at"`
	Job        JobSummary `json:"job"`
}

// ToApplicationWithJob builds the own-application view. The Job association
// must be preloaded.
func (a *Application) ToApplicationWithJob() ApplicationWithJob {
	return ApplicationWithJob{
		ID:         a.ID,
		Status:     a.Status,
		ResumePath: a.ResumePath,
		AppliedAt:  a.CreatedAt,
		Job:        a.Job.ToJobSummary(),
	}
}

// ApplicantSummary is the compact account view shown to recruiters reviewing
// the applicants of a posting.
type ApplicantSummary struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Skills     pq.StringArray `json:"skills"`
	Experience string         `json:"experience"`
}

// ApplicationWithApplicant joins an application with its applicant's summary.
type ApplicationWithApplicant struct {
	ID         uint             `json:"id"`
	Status     string           `json:"status"`
	ResumePath string           `json:"resume_path"`
	AppliedAt  time.Time        `json:"applied_at"`
	Applicant  ApplicantSummary `json:"applicant"`
}

// ToApplicationWithApplicant builds the recruiter view. The Applicant
// association must be preloaded.
func (a *Application) ToApplicationWithApplicant() ApplicationWithApplicant {
	return ApplicationWithApplicant{
		ID:         a.ID,
		Status:     a.Status,
		ResumePath: a.ResumePath,
		AppliedAt:  a.CreatedAt,
		Applicant: ApplicantSummary{
			ID:         a.Applicant.ID,
			Name:       a.Applicant.Name,
			Email:      a.Applicant.Email,
			Skills:     a.Applicant.Skills,
			Experience: a.Applicant.Experience,
		},
	}
}

// OwnerSummary is the posting-owner view joined into admin job listings.
type OwnerSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CompanyName string    `json:"company_name"`
}

// AdminJobView is one row of the admin job listing: the posting plus its
// owner's summary.
type AdminJobView struct {
	JobPosting
	Owner OwnerSummary `json:"owner"`
}

// ToAdminJobView builds the admin listing row. The Owner association must be
// preloaded.
func (j *JobPosting) ToAdminJobView() AdminJobView {
	return AdminJobView{
		JobPosting: *j,
		Owner: OwnerSummary{
			ID:          j.Owner.ID,
			Name:        j.Owner.Name,
			Email:       j.Owner.Email,
			CompanyName: j.Owner.CompanyName,
		},
	}
}
