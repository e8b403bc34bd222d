package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/auth"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

// JwtBlacklistCheck is a middleware that refuses tokens revoked by logout. It
// runs before RequireAuth on authenticated routes.
func JwtBlacklistCheck(bl auth.JwtBlacklistStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		isBlacklisted, err := bl.IsBlacklisted(tokenString)
		if err != nil {
			utilities.LoggerFrom(ctx).Error("internal error", "action", "check token blacklist", "error", err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		if isBlacklisted {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Token has been revoked",
			})
			return
		}

		ctx.Next()
	}
}
