package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
)

// ApplicantGoogleLoginHandler handles Google login authentication for the applicant role, exchanges
// code for user info, checks and creates user in the database, generates an access token, and
// returns user information with the access token.
// @Summary Handles Google login authentication for the applicant role, exchanges code for user
// @Description Checks and creates user in the database, generates an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body code true "Authentication code from google"
// @Success 200 {object} model.UserResponse "Login success"
// @Success 201 {object} model.UserResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Fail to receive token or fetch user info"
// @Failure 403 {object} utilities.ErrorResponse "Account blocked"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/google/applicant [post]
func (h *OauthLoginHandler) ApplicantGoogleLoginHandler(c *gin.Context) {

	uInfo, err := h.getUserInfo(c)
	if err != nil {
		return
	}

	h.loginOrRegisterUser(model.RoleApplicant, uInfo, c)
}

// RecruiterGoogleLoginHandler handles Google login authentication for the recruiter role, exchanges
// code for user info, checks and creates user in the database, generates an access token, and
// returns user information with the access token.
// @Summary Handles Google login authentication for the recruiter role, exchanges code for user
// @Description Checks and creates user in the database, generates an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body code true "Authentication code from google"
// @Success 200 {object} model.UserResponse "Login success"
// @Success 201 {object} model.UserResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Fail to receive token or fetch user info"
// @Failure 403 {object} utilities.ErrorResponse "Account blocked"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/google/recruiter [post]
func (h *OauthLoginHandler) RecruiterGoogleLoginHandler(c *gin.Context) {

	uInfo, err := h.getUserInfo(c)
	if err != nil {
		return
	}

	h.loginOrRegisterUser(model.RoleRecruiter, uInfo, c)
}

// Callback function in Go retrieves a query parameter named "code" from the request and returns it
// in a JSON response.
// @Summary Retrieves a query parameter named "code" from the request and returns it in a JSON response
// @Tags Auth
// @Produce json
// @Param Code query string false "Authentication code from google"
// @Success 200 {object} code
// @Router /auth/google/callback [get]
func (h *OauthLoginHandler) Callback(c *gin.Context) {
	aCode := c.Query("code")
	c.JSON(http.StatusOK, code{
		Code: aCode,
	})
}
