// Package auth contains handler relate to log in and create user account
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

// OauthLoginHandler struct holds the database connection and OAuth2 configuration for handling OAuth login.
type OauthLoginHandler struct {
	DB               *database.DBinstanceStruct
	Tokens           *TokenService
	OauthConfig      *oauth2.Config
	UserInfoEndpoint string
}

type code struct {
	Code string `json:"code" binding:"required"`
}

// NewOauthLoginHandler creates a new instance of OauthLoginHandler with the provided database connection and OAuth2 configuration.
func NewOauthLoginHandler(db *database.DBinstanceStruct, tokens *TokenService, oauthConfig *oauth2.Config, userInfoEndpoint string) *OauthLoginHandler {
	return &OauthLoginHandler{
		DB:               db,
		Tokens:           tokens,
		OauthConfig:      oauthConfig,
		UserInfoEndpoint: userInfoEndpoint,
	}
}

func (h *OauthLoginHandler) getUserInfo(c *gin.Context) (model.GoogleUserInfo, error) {

	var code code
	var uInfo model.GoogleUserInfo

	// check does body has code
	if err := c.ShouldBindJSON(&code); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("No authorization code provided: %v", err.Error()),
		})
		return uInfo, err
	}

	// Exchange code with google and get userinfo
	token, err := h.OauthConfig.Exchange(
		context.Background(),
		code.Code,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to receive token: %v", err.Error()),
		})
		return uInfo, err
	}

	client := h.OauthConfig.Client(context.Background(), token)
	resp, err := client.Get(h.UserInfoEndpoint)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch user information: %v", err.Error()),
		})
		return uInfo, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		// Read response body for better error message
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch user information: status=%d body=%s", resp.StatusCode, string(bodyBytes)),
		})
		return uInfo, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(&uInfo)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to decode user info: %v", err.Error()),
		})
		return uInfo, err
	}

	if uInfo.GID == "" {
		utilities.LoggerFrom(c).Warn("decoded Google user info has empty id", "email", uInfo.Email)
	}
	return uInfo, nil
}

func (h *OauthLoginHandler) loginOrRegisterUser(role model.Role, uInfo model.GoogleUserInfo, c *gin.Context) {

	var user model.User
	respStatus := http.StatusOK

	err := h.DB.Where("google_id = ?", uInfo.GID).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):

		user = model.User{
			Email:            uInfo.Email,
			Role:             role,
			GoogleID:         uInfo.GID,
			EditableUserInfo: model.EditableUserInfo{Name: uInfo.Name},
		}

		if err := h.DB.Create(&user).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
					Error: "Email already exist",
				})
				return
			}
			utilities.InternalError(c, "create user", err)
			return
		}

		respStatus = http.StatusCreated
	case err == nil:

		if user.Role != role {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "Already registered with a different role",
			})
			return
		}
	default:
		utilities.InternalError(c, "look up google account", err)
		return
	}

	if user.Blocked {
		utilities.LoggerFrom(c).Warn("blocked account login refused", "email", user.Email)
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Account blocked",
		})
		return
	}

	accessToken, err := h.Tokens.GenerateToken(user)
	if err != nil {
		utilities.InternalError(c, "generate access token", err)
		return
	}

	c.JSON(respStatus, model.UserResponse{
		User:        user,
		AccessToken: accessToken,
	})
}
