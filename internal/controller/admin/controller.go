// Package admin provides HTTP handlers for administrative operations.
package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

// AdminController handles admin only endpoints
type AdminController struct {
	DB *database.DBinstanceStruct
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(db *database.DBinstanceStruct) *AdminController {
	return &AdminController{
		DB: db,
	}
}

// Stats aggregates the counters shown on the admin dashboard.
type Stats struct {
	TotalUsers        int64 `json:"total_users"`
	Applicants        int64 `json:"applicants"`
	Recruiters        int64 `json:"recruiters"`
	BlockedUsers      int64 `json:"blocked_users"`
	TotalJobs         int64 `json:"total_jobs"`
	ApprovedJobs      int64 `json:"approved_jobs"`
	TotalApplications int64 `json:"total_applications"`
}

// GetUsers queries accounts from the database, optionally filtered by role.
// @Summary Get accounts based on given query
// @Description Only admin can access this endpoint
// @Description If no query given, the server will return all accounts
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param role query string false "Only applicant, recruiter, or admin" example(applicant)
// @Success 200 {array} model.User
// @Failure 400 {object} utilities.ErrorResponse "Unknown role"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (jc *AdminController) GetUsers(c *gin.Context) {
	rawRole := c.Query("role")

	result := jc.DB.Order("created_at DESC")
	if rawRole != "" {
		role := model.Role(strings.ToLower(rawRole))
		if !model.ValidRole(role) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Unknown role: %s", rawRole),
			})
			return
		}
		result = result.Where("role = ?", role)
	}

	var users []model.User
	if err := result.Find(&users).Error; err != nil {
		utilities.InternalError(c, "list users", err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ToggleBlock flips the blocked flag of the given account. A blocked account
// fails every authenticated request from the next token check onward.
// @Summary Block or unblock an account
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Account ID"
// @Success 200 {object} model.User "Account with the flipped blocked flag"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Given account ID not found"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /admin/users/{id}/toggle [put]
func (jc *AdminController) ToggleBlock(c *gin.Context) {
	id := c.Param("id")

	var user model.User
	err := jc.DB.Where("id = ?", id).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: fmt.Sprintf("%s does not exist in the database", id),
		})
		return
	case err == nil:
		// Do nothing
	default:
		utilities.InternalError(c, "fetch user", err)
		return
	}

	if err := jc.DB.Model(&user).Update("blocked", !user.Blocked).Error; err != nil {
		utilities.InternalError(c, "toggle blocked flag", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetJobs lists every job posting with its owner summarised into each row.
// @Summary Get all job postings with owner summary
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.AdminJobView
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /admin/jobs [get]
func (jc *AdminController) GetJobs(c *gin.Context) {
	jobs := []model.JobPosting{}
	if err := jc.DB.Preload("Owner").
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		utilities.InternalError(c, "list jobs", err)
		return
	}

	views := []model.AdminJobView{}
	for i := range jobs {
		views = append(views, jobs[i].ToAdminJobView())
	}

	c.JSON(http.StatusOK, views)
}

// ApproveJob sets the moderation status of the given job posting to approved
// or rejected, regardless of ownership.
// @Summary Approve or reject a job posting
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job posting"
// @Param status query string false "Status is case insensitive and allow only approved, or rejected (approved by default)" default(approved)
// @Success 200 {object} model.JobPosting
// @Failure 400 {object} utilities.ErrorResponse "Unknown status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Given job ID not found"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /admin/jobs/{id}/approve [put]
func (jc *AdminController) ApproveJob(c *gin.Context) {
	id := c.Param("id")
	status := c.Query("status")

	if status == "" {
		status = model.ModerationApproved
	}
	status = strings.ToLower(status)

	if !model.ValidModerationStatus(status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown status: %s", status),
		})
		return
	}

	var job model.JobPosting
	err := jc.DB.Where("id = ?", id).First(&job).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: fmt.Sprintf("%s does not exist in the database", id),
		})
		return
	case err == nil:
		// Do nothing
	default:
		utilities.InternalError(c, "fetch job", err)
		return
	}

	if err := jc.DB.Model(&job).Update("moderation_status", status).Error; err != nil {
		utilities.InternalError(c, "update moderation status", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// GetStats returns aggregate counts over accounts, job postings and
// applications.
// @Summary Get aggregate platform counts
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} Stats
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /admin/stats [get]
func (jc *AdminController) GetStats(c *gin.Context) {
	stats := Stats{}

	if err := jc.DB.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		utilities.InternalError(c, "count users", err)
		return
	}
	if err := jc.DB.Model(&model.User{}).Where("role = ?", model.RoleApplicant).
		Count(&stats.Applicants).Error; err != nil {
		utilities.InternalError(c, "count applicants", err)
		return
	}
	if err := jc.DB.Model(&model.User{}).Where("role = ?", model.RoleRecruiter).
		Count(&stats.Recruiters).Error; err != nil {
		utilities.InternalError(c, "count recruiters", err)
		return
	}
	if err := jc.DB.Model(&model.User{}).Where("blocked = ?", true).
		Count(&stats.BlockedUsers).Error; err != nil {
		utilities.InternalError(c, "count blocked users", err)
		return
	}
	if err := jc.DB.Model(&model.JobPosting{}).Count(&stats.TotalJobs).Error; err != nil {
		utilities.InternalError(c, "count jobs", err)
		return
	}
	if err := jc.DB.Model(&model.JobPosting{}).Where("moderation_status = ?", model.ModerationApproved).
		Count(&stats.ApprovedJobs).Error; err != nil {
		utilities.InternalError(c, "count approved jobs", err)
		return
	}
	if err := jc.DB.Model(&model.Application{}).Count(&stats.TotalApplications).Error; err != nil {
		utilities.InternalError(c, "count applications", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
