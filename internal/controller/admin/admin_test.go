package admin

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/auth"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/middleware"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
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

func adminRouter() *gin.Engine {
	r := gin.Default()
	jc := NewAdminController(testDB)
	tokens := auth.NewTestTokenService()

	adminOnly := r.Group("/admin")
	adminOnly.Use(middleware.RequireAuth(testDB, tokens), middleware.CheckRole(model.RoleAdmin))
	{
		adminOnly.GET("/users", jc.GetUsers)
		adminOnly.PUT("/users/:id/toggle", jc.ToggleBlock)
		adminOnly.GET("/jobs", jc.GetJobs)
		adminOnly.PUT("/jobs/:id/approve", jc.ApproveJob)
		adminOnly.GET("/stats", jc.GetStats)
	}
	return r
}

func TestGetUsers(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := adminRouter()

	rec, rows := testutil.MakeJSONListRequest(nil, adminToken, r, "/admin/users", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, len(rows), 5)
}

func TestGetUsers_RoleFilter(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := adminRouter()

	rec, rows := testutil.MakeJSONListRequest(nil, adminToken, r, "/admin/users?role=recruiter", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, len(rows), 2)
	for _, row := range rows {
		assert.Equal(t, string(model.RoleRecruiter), row["role"])
	}
}

func TestGetUsers_UnknownRole(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := adminRouter()

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r, "/admin/users?role=wizard", http.MethodGet)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Unknown role: wizard")
}

func TestGetUsers_NonAdminForbidden(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := adminRouter()

	rec, resp := testutil.MakeJSONRequest(nil, recruiterToken, r, "/admin/users", http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, resp["error"], "doesn't have permission")
}

func TestToggleBlock_RevokesExistingTokens(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	// Token issued before the block must stop working the moment the flag flips
	applicantToken, err := auth.GetAccessToken(t, testDB, database.TestApplicant2.Email, database.TestSeedPassword)
	assert.NoError(t, err)

	r := adminRouter()
	endpoint := fmt.Sprintf("/admin/users/%s/toggle", database.TestApplicant2.ID)

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r, endpoint, http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["blocked"])

	blockedRec, blockedResp := testutil.MakeJSONRequest(nil, applicantToken, r, "/admin/users", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, blockedRec.Code)
	assert.Contains(t, blockedResp["error"], "Account blocked")

	// Toggling again unblocks
	rec2, resp2 := testutil.MakeJSONRequest(nil, adminToken, r, endpoint, http.MethodPut)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, false, resp2["blocked"])
}

func TestToggleBlock_NotFound(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := adminRouter()

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r,
		fmt.Sprintf("/admin/users/%s/toggle", uuid.New()), http.MethodPut)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, resp["error"], "does not exist in the database")
}

func TestAdminGetJobs_IncludesOwnerSummary(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := adminRouter()

	rec, rows := testutil.MakeJSONListRequest(nil, adminToken, r, "/admin/jobs", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, len(rows), 3)

	var found bool
	for _, row := range rows {
		if row["id"] != float64(database.TestJob1.ID) {
			continue
		}
		found = true
		owner, ok := row["owner"].(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, database.TestRecruiter1.Email, owner["email"])
		assert.Equal(t, database.TestRecruiter1.CompanyName, owner["company_name"])
	}
	assert.True(t, found)
}

func TestApproveJob_Reject(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := adminRouter()

	// Status query is case insensitive
	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r,
		fmt.Sprintf("/admin/jobs/%d/approve?status=Rejected", database.TestJob2.ID), http.MethodPut)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ModerationRejected, resp["moderation_status"])

	// The listing status axis is untouched by moderation
	job := model.JobPosting{}
	assert.NoError(t, testDB.Where("id = ?", database.TestJob2.ID).First(&job).Error)
	assert.Equal(t, model.ModerationRejected, job.ModerationStatus)
	assert.Equal(t, model.JobStatusOpen, job.Status)
}

func TestApproveJob_DefaultsToApproved(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := adminRouter()

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r,
		fmt.Sprintf("/admin/jobs/%d/approve", database.TestJob2.ID), http.MethodPut)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ModerationApproved, resp["moderation_status"])
}

func TestApproveJob_UnknownStatus(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := adminRouter()

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r,
		"/admin/jobs/1/approve?status=maybe", http.MethodPut)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Unknown status: maybe")
}

func TestApproveJob_NotFound(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := adminRouter()

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r, "/admin/jobs/999999/approve", http.MethodPut)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, resp["error"], "does not exist in the database")
}

func TestGetStats(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := adminRouter()

	var totalUsers, totalJobs, totalApplications int64
	assert.NoError(t, testDB.Model(&model.User{}).Count(&totalUsers).Error)
	assert.NoError(t, testDB.Model(&model.JobPosting{}).Count(&totalJobs).Error)
	assert.NoError(t, testDB.Model(&model.Application{}).Count(&totalApplications).Error)

	rec, resp := testutil.MakeJSONRequest(nil, adminToken, r, "/admin/stats", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(totalUsers), resp["total_users"])
	assert.Equal(t, float64(totalJobs), resp["total_jobs"])
	assert.Equal(t, float64(totalApplications), resp["total_applications"])
	assert.Equal(t, float64(2), resp["applicants"])
	assert.Equal(t, float64(2), resp["recruiters"])
	assert.Equal(t, float64(0), resp["blocked_users"])
}
