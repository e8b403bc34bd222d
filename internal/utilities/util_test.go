package utilities

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestContains(t *testing.T) {
	slice := []string{".pdf", ".doc", ".docx"}

	assert.True(t, Contains(slice, ".pdf"))
	assert.False(t, Contains(slice, ".exe"))
	assert.False(t, Contains(nil, ".pdf"))
}

func TestMergeNonEmpty(t *testing.T) {
	dst := model.EditableJobInfo{
		Title:    "Backend Engineer",
		Location: "Bangkok",
	}
	src := model.EditableJobInfo{
		Location: "Remote",
	}

	MergeNonEmpty(&dst, &src)

	assert.Equal(t, "Backend Engineer", dst.Title)
	assert.Equal(t, "Remote", dst.Location)
}

func TestExtractBearerToken(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer some-token")

	token, err := ExtractBearerToken(c)
	require.NoError(t, err)
	assert.Equal(t, "some-token", token)
}

func TestExtractBearerTokenMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := ExtractBearerToken(c)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("CorrectHorse1!")
	require.NoError(t, err)
	assert.NotEqual(t, "CorrectHorse1!", hashed)

	assert.NoError(t, VerifyPassword(hashed, "CorrectHorse1!"))
	assert.Error(t, VerifyPassword(hashed, "WrongHorse1!"))
}

func TestIsOwnerOrElevated(t *testing.T) {
	ownerID := uuid.New()
	owner := model.User{ID: ownerID, Role: model.RoleRecruiter}
	stranger := model.User{ID: uuid.New(), Role: model.RoleRecruiter}
	admin := model.User{ID: uuid.New(), Role: model.RoleAdmin}

	assert.True(t, IsOwnerOrElevated(owner, ownerID, model.RoleAdmin))
	assert.False(t, IsOwnerOrElevated(stranger, ownerID, model.RoleAdmin))
	assert.True(t, IsOwnerOrElevated(admin, ownerID, model.RoleAdmin))

	// Without elevated roles only the owner passes
	assert.False(t, IsOwnerOrElevated(admin, ownerID))
}

func TestExtractUser(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	_, err := ExtractUser(c)
	assert.Error(t, err)

	want := model.User{ID: uuid.New(), Role: model.RoleApplicant}
	c.Set("user", want)

	got, err := ExtractUser(c)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestInternalErrorHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	InternalError(c, "load job posting", assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
