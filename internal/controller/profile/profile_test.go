package profile

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/auth"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/middleware"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/storage"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func profileRouter(store *storage.LocalStore) *gin.Engine {
	r := gin.Default()
	pc := NewProfileController(testDB, store)
	tokens := auth.NewTestTokenService()

	r.GET("/profile/me", middleware.RequireAuth(testDB, tokens), pc.GetMyProfile)
	r.PUT("/profile/update", middleware.RequireAuth(testDB, tokens), pc.EditProfile)
	r.POST("/profile/upload", middleware.RequireAuth(testDB, tokens), pc.UploadResume)
	r.POST("/profile/upload-logo", middleware.RequireAuth(testDB, tokens), pc.UploadLogo)
	return r
}

func testStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	return storage.NewLocalStore(filepath.Join(t.TempDir(), "uploads"))
}

func TestGetMyProfile(t *testing.T) {
	applicantToken, err := auth.GetAccessToken(t, testDB, database.TestApplicant1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := profileRouter(testStore(t))

	rec, resp := testutil.MakeJSONRequest(nil, applicantToken, r, "/profile/me", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestApplicant1.Email, resp["email"])
	assert.Equal(t, string(model.RoleApplicant), resp["role"])

	// The password hash must never appear in a response
	_, leaked := resp["password"]
	assert.False(t, leaked)
}

func TestEditProfile_MergesFields(t *testing.T) {
	applicantToken, err := auth.GetAccessToken(t, testDB, database.TestApplicant2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := profileRouter(testStore(t))

	body := gin.H{
		"bio":    "Now exploring fullstack work.",
		"skills": []string{"React", "Go"},
	}

	rec, resp := testutil.MakeJSONRequest(body, applicantToken, r, "/profile/update", http.MethodPut)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Now exploring fullstack work.", resp["bio"])
	// Fields absent from the request keep their value
	assert.Equal(t, database.TestApplicant2.Name, resp["name"])

	account := model.User{}
	assert.NoError(t, testDB.Where("id = ?", database.TestApplicant2.ID).First(&account).Error)
	assert.Equal(t, "Now exploring fullstack work.", account.Bio)
}

func TestEditProfile_EmptyStringKeepsOldValue(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := profileRouter(testStore(t))

	body := gin.H{
		"name":    "",
		"website": "https://dataforge.example.org",
	}

	rec, resp := testutil.MakeJSONRequest(body, recruiterToken, r, "/profile/update", http.MethodPut)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestRecruiter2.Name, resp["name"])
	assert.Equal(t, "https://dataforge.example.org", resp["website"])
}

func TestEditProfile_UnknownFieldRejected(t *testing.T) {
	applicantToken, err := auth.GetAccessToken(t, testDB, database.TestApplicant2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := profileRouter(testStore(t))

	body := gin.H{"role": "admin"}

	rec, resp := testutil.MakeJSONRequest(body, applicantToken, r, "/profile/update", http.MethodPut)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Invalid request body")

	account := model.User{}
	assert.NoError(t, testDB.Where("id = ?", database.TestApplicant2.ID).First(&account).Error)
	assert.Equal(t, model.RoleApplicant, account.Role)
}

func TestUploadResume_Success(t *testing.T) {
	applicantToken, err := auth.GetAccessToken(t, testDB, database.TestApplicant1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	store := testStore(t)
	r := profileRouter(store)

	rec, resp := testutil.MakeMultipartRequest("resume", "cv.pdf", []byte("%PDF-1.4 fake"),
		applicantToken, r, "/profile/upload", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)

	ref, ok := resp["resume_path"].(string)
	assert.True(t, ok)
	assert.Contains(t, ref, "resumes/")
	_, err = store.Resolve(ref)
	assert.NoError(t, err)
}

func TestUploadResume_UnsupportedExtension(t *testing.T) {
	applicantToken, err := auth.GetAccessToken(t, testDB, database.TestApplicant1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := profileRouter(testStore(t))

	rec, resp := testutil.MakeMultipartRequest("resume", "cv.txt", []byte("plain text"),
		applicantToken, r, "/profile/upload", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Unsupported file extension: .txt")
}

func TestUploadResume_Missing(t *testing.T) {
	applicantToken, err := auth.GetAccessToken(t, testDB, database.TestApplicant1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := profileRouter(testStore(t))

	rec, resp := testutil.MakeJSONRequest(nil, applicantToken, r, "/profile/upload", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Resume file is required")
}

func TestUploadLogo_Success(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	store := testStore(t)
	r := profileRouter(store)

	rec, resp := testutil.MakeMultipartRequest("logo", "logo.png", []byte{0x89, 'P', 'N', 'G'},
		recruiterToken, r, "/profile/upload-logo", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)

	ref, ok := resp["logo_path"].(string)
	assert.True(t, ok)
	assert.Contains(t, ref, "logos/")
	_, err = store.Resolve(ref)
	assert.NoError(t, err)
}

func TestUploadLogo_UnsupportedExtension(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := profileRouter(testStore(t))

	rec, resp := testutil.MakeMultipartRequest("logo", "logo.pdf", []byte("%PDF-1.4 fake"),
		recruiterToken, r, "/profile/upload-logo", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Unsupported file extension: .pdf")
}
