package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

// GetProfileHandler echoes the identity the presented token resolved to.
// The fields come from the account row loaded during token validation, so a
// stale token never reports stale role or blocked state.
// @Summary Echo the identity behind the presented token
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.UserInfo "Resolved identity"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Account blocked"
// @Router /auth/profile [get]
func GetProfileHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user.ToUserInfo())
}
