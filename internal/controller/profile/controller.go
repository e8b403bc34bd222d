// Package profile provides HTTP handlers for account profile operations.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/storage"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

const (
	resumeObjectPrefix = "resumes"
	logoObjectPrefix   = "logos"
)

var (
	resumeExtensions = []string{".pdf", ".doc", ".docx"}
	logoExtensions   = []string{".jpeg", ".jpg", ".png", ".gif"}
)

// ProfileController handles profile related endpoints
type ProfileController struct {
	DB    *database.DBinstanceStruct
	Store *storage.LocalStore
}

// NewProfileController creates a new instance of ProfileController
func NewProfileController(db *database.DBinstanceStruct, store *storage.LocalStore) *ProfileController {
	return &ProfileController{
		DB:    db,
		Store: store,
	}
}

type editProfileRequest struct {
	model.EditableUserInfo
	model.EditableProfile
}

// GetMyProfile retrieves the caller's full account from the database and
// returns it as a JSON response.
// @Summary Retrieve own profile from database
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.User "Successfully retrieve profile"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Account blocked"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /profile/me [get]
func (pc *ProfileController) GetMyProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	account := model.User{}
	if err := pc.DB.Where("id = ?", user.ID).First(&account).Error; err != nil {
		utilities.InternalError(c, "fetch profile", err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// EditProfile handles editing the caller's profile information: retrieving the
// original row, merging the provided fields over it and saving the result.
// Fields outside the editable set are rejected outright.
// @Summary Edit own profile
// @Description Overwrite profile fields and save into database
// @Description Sensitive fields like id, email, role and upload references can't be overwritten
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param profile body editProfileRequest true "Profile info to be written"
// @Success 200 {object} model.User "Successfully overwrite"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Account blocked"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /profile/update [put]
func (pc *ProfileController) EditProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	account := model.User{}
	if err := pc.DB.Where("id = ?", user.ID).First(&account).Error; err != nil {
		utilities.InternalError(c, "fetch profile", err)
		return
	}

	edited := editProfileRequest{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&edited); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&account.EditableUserInfo, &edited.EditableUserInfo)
	utilities.MergeNonEmpty(&account.EditableProfile, &edited.EditableProfile)

	if err := pc.DB.Save(&account).Error; err != nil {
		utilities.InternalError(c, "update profile", err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// storeUpload reads one multipart file from the request, enforces the
// extension allowlist and writes it into the upload store. On failure the
// error response has already been written and ok is false.
func (pc *ProfileController) storeUpload(c *gin.Context, field, label string, allowed []string, prefix string) (string, bool) {
	rawFile, err := c.FormFile(field)
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("%s file exceeds the size limit", label),
		})
		return "", false
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("%s file is required", label),
		})
		return "", false
	}

	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !utilities.Contains(allowed, extension) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return "", false
	}

	f, err := rawFile.Open()
	if err != nil {
		utilities.InternalError(c, "open upload", err)
		return "", false
	}
	defer func() {
		_ = f.Close()
	}()

	filename := fmt.Sprintf("%s-%d%s", field, time.Now().UnixMilli(), extension)
	ref, err := pc.Store.Save(prefix, filename, f)
	if err != nil {
		utilities.InternalError(c, "store upload", err)
		return "", false
	}

	return ref, true
}

// UploadResume handles uploading a resume file and updating the caller's
// resume reference in the database.
// @Summary Upload resume file
// @Description Only files up to 2 MB with .pdf, .doc or .docx extension are permitted
// @Tags Profile
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param resume formData file true "Upload your resume file"
// @Success 200 {object} model.User "Successfully upload resume"
// @Failure 400 {object} utilities.ErrorResponse "Missing, oversized or unsupported resume file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Account blocked"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /profile/upload [post]
func (pc *ProfileController) UploadResume(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	account := model.User{}
	if err := pc.DB.Where("id = ?", user.ID).First(&account).Error; err != nil {
		utilities.InternalError(c, "fetch profile", err)
		return
	}

	ref, ok := pc.storeUpload(c, "resume", "Resume", resumeExtensions, resumeObjectPrefix)
	if !ok {
		return
	}

	// A replaced upload would otherwise be orphaned on disk
	if account.ResumePath != "" {
		if err := pc.Store.Remove(account.ResumePath); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
			utilities.LoggerFrom(c).Warn("failed to remove replaced resume", "ref", account.ResumePath, "error", err)
		}
	}

	account.ResumePath = ref
	if err := pc.DB.Save(&account).Error; err != nil {
		utilities.InternalError(c, "update resume reference", err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// UploadLogo handles uploading a company logo file and updating the caller's
// logo reference in the database.
// @Summary Upload company logo file
// @Description Only files up to 2 MB with .jpeg, .jpg, .png or .gif extension are permitted
// @Tags Profile
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param logo formData file true "Upload your logo file"
// @Success 200 {object} model.User "Successfully upload logo"
// @Failure 400 {object} utilities.ErrorResponse "Missing, oversized or unsupported logo file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Account blocked"
// @Failure 500 {object} utilities.ErrorResponse "Internal server error"
// @Router /profile/upload-logo [post]
func (pc *ProfileController) UploadLogo(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	account := model.User{}
	if err := pc.DB.Where("id = ?", user.ID).First(&account).Error; err != nil {
		utilities.InternalError(c, "fetch profile", err)
		return
	}

	ref, ok := pc.storeUpload(c, "logo", "Logo", logoExtensions, logoObjectPrefix)
	if !ok {
		return
	}

	if account.LogoPath != "" {
		if err := pc.Store.Remove(account.LogoPath); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
			utilities.LoggerFrom(c).Warn("failed to remove replaced logo", "ref", account.LogoPath, "error", err)
		}
	}

	account.LogoPath = ref
	if err := pc.DB.Save(&account).Error; err != nil {
		utilities.InternalError(c, "update logo reference", err)
		return
	}

	c.JSON(http.StatusOK, account)
}
