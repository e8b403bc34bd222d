package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

// LocalAuthHandler holds DB reference and token service for handler methods.
type LocalAuthHandler struct {
	DB     *database.DBinstanceStruct
	Tokens *TokenService
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided database connection.
func NewLocalAuthHandler(db *database.DBinstanceStruct, tokens *TokenService) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB:     db,
		Tokens: tokens,
	}
}

type signupInfo struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=applicant recruiter"`
	Name     string `json:"name"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupHandler function handles local registration by receiving email, password and role
// do nothing if email already exist in the database
// do nothing if password is shorter than 8 characters
// @Summary Handles local registration by receiving email, password and role
// @Description Email must not already exist and password must longer or equal to 8 characters long
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body signupInfo true "role can be only 'applicant' or 'recruiter'"
// @Success 201 {object} model.UserResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/signup [post]
func (lh *LocalAuthHandler) SignupHandler(c *gin.Context) {
	var info signupInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email, password, and role (only 'applicant' or 'recruiter') must be provided",
		})
		return
	}

	var user model.User
	err := lh.DB.Where("email = ?", info.Email).First(&user).Error

	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email already exist",
		})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		utilities.InternalError(c, "look up email", err)
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should longer or equal to 8 characters",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		utilities.InternalError(c, "hash password", err)
		return
	}

	user = model.User{
		Email:            info.Email,
		Password:         hashedPassword,
		Role:             model.Role(info.Role),
		EditableUserInfo: model.EditableUserInfo{Name: info.Name},
	}
	if err := lh.DB.Create(&user).Error; err != nil {
		utilities.InternalError(c, "create user", err)
		return
	}

	accessToken, err := lh.Tokens.GenerateToken(user)
	if err != nil {
		utilities.InternalError(c, "generate access token", err)
		return
	}

	utilities.LoggerFrom(c).Info("user registered", "email", user.Email, "role", user.Role)

	c.JSON(http.StatusCreated, model.UserResponse{
		User:        user,
		AccessToken: accessToken,
	})
}

// LocalLoginHandler function handles local login by receiving email and password
// do nothing if email does not exist in the database
// do nothing if password is incorrect
// @Summary Handles local login by receiving email and password
// @Description Email must exist, password must match and the account must not be blocked
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.UserResponse "Login success"
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 403 {object} utilities.ErrorResponse "Account blocked"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LocalLoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email or password is not provided",
		})
		return
	}

	var user model.User
	err := lh.DB.Where("email = ?", info.Email).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return

	case err == nil:
		// Do nothing

	default:
		utilities.InternalError(c, "look up email", err)
		return
	}

	if user.Password == "" {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return
	}

	if err := utilities.VerifyPassword(user.Password, info.Password); err != nil {
		utilities.LoggerFrom(c).Warn("login failed", "email", info.Email)
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return
	}

	if user.Blocked {
		utilities.LoggerFrom(c).Warn("blocked account login refused", "email", info.Email)
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Account blocked",
		})
		return
	}

	accessToken, err := lh.Tokens.GenerateToken(user)
	if err != nil {
		utilities.InternalError(c, "generate access token", err)
		return
	}

	c.JSON(http.StatusOK, model.UserResponse{
		User:        user,
		AccessToken: accessToken,
	})
}
