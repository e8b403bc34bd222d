// Package job provides HTTP handlers for job posting operations.
package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

// JobController handles job posting related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

// CreateJobHandler handles the creation of a new job posting by a recruiter.
// @Summary Create job posting based on given json structure
// @Description Only recruiter and admin have access to this endpoint
// @Tags Jobs
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job body model.EditableJobInfo true "Input job information"
// @Success 201 {object} model.JobPosting "Successfully create job posting"
// @Failure 400 {object} utilities.ErrorResponse "Invalid or incomplete job posting struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as recruiter or admin, or account blocked"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /jobs [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	info := model.EditableJobInfo{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if info.Title == "" || info.Company == "" || info.Location == "" ||
		info.SalaryRange == "" || info.Description == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Title, company, location, salary_range and description are required",
		})
		return
	}

	job := model.JobPosting{
		OwnerID:         user.ID,
		EditableJobInfo: info,
	}
	if err := jc.DB.Create(&job).Error; err != nil {
		utilities.InternalError(c, "create job", err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetJobs fetches every job posting, newest first.
// @Summary Get all job postings
// @Description Any authenticated user can access this endpoint
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.JobPosting "Return all job postings, newest first"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Account blocked"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /jobs [get]
func (jc *JobController) GetJobs(c *gin.Context) {
	jobs := []model.JobPosting{}
	if err := jc.DB.Order("created_at DESC").Find(&jobs).Error; err != nil {
		utilities.InternalError(c, "list jobs", err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJobByID fetches a single job posting by its ID.
// @Summary Get job posting by ID
// @Description Any authenticated user can access this endpoint
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job posting"
// @Success 200 {object} model.JobPosting "Return the job posting with the specified ID"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Account blocked"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	id := c.Param("id")

	job := model.JobPosting{}
	err := jc.DB.Where("id = ?", id).First(&job).Error
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

	c.JSON(http.StatusOK, job)
}

// EditJob allows the owning recruiter or an admin to update a job posting.
// Only the editable whitelist can be touched; ownership and status fields are
// not part of the accepted body and unknown fields are rejected outright.
// @Summary Edit job posting based on given json structure
// @Description Only the recruiter who owns the posting or an admin have access to this endpoint
// @Tags Jobs
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job posting"
// @Param job body model.EditableJobInfo true "Job fields to overwrite"
// @Success 200 {object} model.JobPosting "Successfully update job posting"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job posting struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to edit, or account blocked"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /jobs/{id} [put]
func (jc *JobController) EditJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.JobPosting{}
	err = jc.DB.Where("id = ?", id).First(&job).Error
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
			Error: "You are not allowed to edit this job",
		})
		return
	}

	// Bind into a fresh struct so ownership and status fields can never be
	// overwritten through this path
	updated := model.JobPosting{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&updated.EditableJobInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if err := jc.DB.Model(&job).Updates(updated).Error; err != nil {
		utilities.InternalError(c, "update job", err)
		return
	}

	// Reload to return the latest data
	if err := jc.DB.Where("id = ?", job.ID).First(&job).Error; err != nil {
		utilities.InternalError(c, "reload job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJob allows the owning recruiter or an admin to delete a job posting.
// Applications attached to the posting are removed with it.
// @Summary Delete given job posting ID
// @Description Only the recruiter who owns the posting or an admin have access to this endpoint
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job posting"
// @Success 200 {object} utilities.MessageResponse "Successfully delete job posting"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to delete this job, or account blocked"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.JobPosting{}
	err = jc.DB.Where("id = ?", id).First(&job).Error
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
			Error: "You are not allowed to delete this job",
		})
		return
	}

	if err := jc.DB.Delete(&job).Error; err != nil {
		utilities.InternalError(c, "delete job", err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted"})
}
