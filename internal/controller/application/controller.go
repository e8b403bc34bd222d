// Package application provides HTTP handlers for job application operations.
package application

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/storage"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

const resumeObjectPrefix = "resumes"

var resumeExtensions = []string{".pdf", ".doc", ".docx"}

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB    *database.DBinstanceStruct
	Store *storage.LocalStore
}

// NewApplicationController creates a new instance of ApplicationController with
// the provided database connection and upload store.
func NewApplicationController(db *database.DBinstanceStruct, store *storage.LocalStore) *ApplicationController {
	return &ApplicationController{
		DB:    db,
		Store: store,
	}
}

// ApplyHandler handles the creation of a new application by an applicant.
// The resume comes in as a multipart file and the duplicate check is backed by
// a unique index on (job_id, applicant_id), so a concurrent second apply still
// fails even when both requests pass the lookup.
// @Summary Apply to a job posting with a resume file
// @Description Only applicant can access this endpoint. Resume must be .pdf, .doc or .docx
// @Tags Applications
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job posting to apply to"
// @Param resume formData file true "Resume file"
// @Success 201 {object} model.Application "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Already applied, missing or oversized or unsupported resume file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as applicant, or account blocked"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /applications/{id}/apply [post]
func (ac *ApplicationController) ApplyHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.JobPosting{}
	err = ac.DB.Where("id = ?", id).First(&job).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
		return
	case err == nil:
		// Do nothing
	default:
		utilities.InternalError(c, "fetch job", err)
		return
	}

	// Fast path for a clear error message. The unique index on
	// (job_id, applicant_id) remains the real guard.
	existing := model.Application{}
	err = ac.DB.Where("job_id = ? AND applicant_id = ?", job.ID, user.ID).First(&existing).Error
	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "You have already applied to this job",
		})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing
	default:
		utilities.InternalError(c, "check existing application", err)
		return
	}

	rawFile, err := c.FormFile("resume")
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Resume file exceeds the size limit",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Resume file is required",
		})
		return
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !utilities.Contains(resumeExtensions, extension) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return
	}

	f, err := rawFile.Open()
	if err != nil {
		utilities.InternalError(c, "open resume upload", err)
		return
	}
	defer func() {
		_ = f.Close()
	}()

	filename := fmt.Sprintf("resume-%d%s", time.Now().UnixMilli(), extension)
	ref, err := ac.Store.Save(resumeObjectPrefix, filename, f)
	if err != nil {
		utilities.InternalError(c, "store resume", err)
		return
	}

	application := model.Application{
		JobID:       job.ID,
		ApplicantID: user.ID,
		ResumePath:  ref,
		Status:      model.ApplicationStatusApplied,
	}
	if err := ac.DB.Create(&application).Error; err != nil {
		var pqErr *pgconn.PgError
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "You have already applied to this job",
			})
			return
		}
		utilities.InternalError(c, "create application", err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

// GetOwnApplications lists every application the caller has submitted, with
// the targeted job summarised into each row.
// @Summary List own applications
// @Description The path ID must be the caller's own account ID
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Applicant account ID"
// @Success 200 {array} model.ApplicationWithJob "Return the caller's applications, newest first"
// @Failure 400 {object} utilities.ErrorResponse "Invalid user ID"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Requesting another account's applications, or account blocked"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /applications/{id} [get]
func (ac *ApplicationController) GetOwnApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	// No elevated roles here: even an admin reads only their own list
	if !utilities.IsOwnerOrElevated(user, targetID) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to view these applications",
		})
		return
	}

	applications := []model.Application{}
	if err := ac.DB.Preload("Job").
		Where("applicant_id = ?", targetID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		utilities.InternalError(c, "list own applications", err)
		return
	}

	responses := []model.ApplicationWithJob{}
	for _, application := range applications {
		responses = append(responses, application.ToApplicationWithJob())
	}

	c.JSON(http.StatusOK, responses)
}

// GetApplicants lists every application submitted to a job posting, with the
// applicant summarised into each row.
// @Summary List applicants for a job posting
// @Description Only the recruiter who owns the posting or an admin have access to this endpoint
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job posting"
// @Success 200 {array} model.ApplicationWithApplicant "Return the posting's applications, newest first"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the posting's owner, or account blocked"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /applications/{id}/applicants [get]
func (ac *ApplicationController) GetApplicants(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.JobPosting{}
	err = ac.DB.Where("id = ?", id).First(&job).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
		return
	case err == nil:
		// Do nothing
	default:
		utilities.InternalError(c, "fetch job", err)
		return
	}

	if !utilities.IsOwnerOrElevated(user, job.OwnerID, model.RoleAdmin) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to view applicants for this job",
		})
		return
	}

	applications := []model.Application{}
	if err := ac.DB.Preload("Applicant").
		Where("job_id = ?", job.ID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		utilities.InternalError(c, "list applicants", err)
		return
	}

	responses := []model.ApplicationWithApplicant{}
	for _, application := range applications {
		responses = append(responses, application.ToApplicationWithApplicant())
	}

	c.JSON(http.StatusOK, responses)
}

type statusUpdate struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus overwrites an application's status. Ownership is checked
// against the owner of the job the application targets, not the applicant.
// @Summary Update the status of an application
// @Description Only the recruiter who owns the targeted posting or an admin have access to this endpoint
// @Tags Applications
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Param status body statusUpdate true "New status, one of applied, shortlisted, rejected"
// @Success 200 {object} model.Application "Successfully update status"
// @Failure 400 {object} utilities.ErrorResponse "Missing or unknown status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the posting's owner, or account blocked"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /applications/{id}/status [put]
func (ac *ApplicationController) UpdateStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	req := statusUpdate{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Status must be provided"})
		return
	}

	if !model.ValidApplicationStatus(req.Status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown status: %s", req.Status),
		})
		return
	}

	id := c.Param("id")

	application := model.Application{}
	err = ac.DB.Preload("Job").Where("id = ?", id).First(&application).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
		return
	case err == nil:
		// Do nothing
	default:
		utilities.InternalError(c, "fetch application", err)
		return
	}

	if !utilities.IsOwnerOrElevated(user, application.Job.OwnerID, model.RoleAdmin) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to update this application",
		})
		return
	}

	if err := ac.DB.Model(&application).Update("status", req.Status).Error; err != nil {
		utilities.InternalError(c, "update application status", err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// GetResume streams the resume attached to an application. The stored
// reference is resolved through the upload store, which rejects anything that
// escapes the trusted root before it ever touches the filesystem.
// @Summary Stream the resume attached to an application
// @Description Only recruiter and admin have access to this endpoint
// @Tags Applications
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Success 200 {string} binary "Resume file content"
// @Failure 400 {object} utilities.ErrorResponse "Stored reference escapes the upload root"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as recruiter or admin, or account blocked"
// @Failure 404 {object} utilities.ErrorResponse "Application or resume file not found"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /applications/{id}/resume [get]
func (ac *ApplicationController) GetResume(c *gin.Context) {
	id := c.Param("id")

	application := model.Application{}
	err := ac.DB.Where("id = ?", id).First(&application).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
		return
	case err == nil:
		// Do nothing
	default:
		utilities.InternalError(c, "fetch application", err)
		return
	}

	if application.ResumePath == "" {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "No resume attached to this application"})
		return
	}

	abs, err := ac.Store.Resolve(application.ResumePath)
	switch {
	case errors.Is(err, storage.ErrInvalidPath):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid file path"})
		return
	case errors.Is(err, storage.ErrFileNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "File not found"})
		return
	case err == nil:
		// Do nothing
	default:
		utilities.InternalError(c, "resolve resume path", err)
		return
	}

	c.Writer.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filepath.Base(abs)))
	c.File(abs)
}
