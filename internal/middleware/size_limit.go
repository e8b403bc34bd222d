package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var multipartOverhead = int64(8 * 1024) // headroom for the multipart envelope

// SizeLimit caps the request body at maxBodyBytes plus a small allowance for
// multipart boundaries and headers. Reading past the cap makes the request
// body return http.MaxBytesError, which upload handlers translate into a 400.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := c.Writer

		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, maxBodyBytes+multipartOverhead)

		c.Next()
	}
}
