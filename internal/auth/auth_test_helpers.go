package auth

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/config"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

// TestJWTConfig is the token configuration shared by package test suites. The
// middleware under test and the helpers issuing tokens must agree on it.
var TestJWTConfig = config.JWTConfig{
	Secret:    "test-secret-key",
	Issuer:    "job-portal-backend",
	AccessTTL: time.Hour,
}

// NewTestTokenService returns a TokenService configured with TestJWTConfig.
func NewTestTokenService() *TokenService {
	return NewTokenService(TestJWTConfig)
}

// GetAccessToken is a helper function to obtain an access token for a user by simulating a login API call.
// It takes the testing object, database connection, email, and password as parameters.
// It returns the access token as a string and any error encountered during the process.
func GetAccessToken(
	t *testing.T,
	db *database.DBinstanceStruct,
	email string,
	password string,
) (string, error) {
	t.Helper()
	handler := NewLocalAuthHandler(db, NewTestTokenService())
	rec, resp, err := utilities.SimulateAPICall(handler.LocalLoginHandler, "/auth/login", http.MethodPost, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login Failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	if resp["access_token"] == nil {
		return "", fmt.Errorf("login Failed: no access_token in response: %s", rec.Body.String())
	}
	return resp["access_token"].(string), nil
}
