package job

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
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

func jobRouter() *gin.Engine {
	r := gin.Default()
	jc := NewJobController(testDB)
	tokens := auth.NewTestTokenService()

	r.GET("/jobs", middleware.RequireAuth(testDB, tokens), jc.GetJobs)
	r.GET("/jobs/:id", middleware.RequireAuth(testDB, tokens), jc.GetJobByID)
	r.POST("/jobs", middleware.RequireAuth(testDB, tokens),
		middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jc.CreateJobHandler)
	r.PUT("/jobs/:id", middleware.RequireAuth(testDB, tokens),
		middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jc.EditJob)
	r.DELETE("/jobs/:id", middleware.RequireAuth(testDB, tokens),
		middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jc.DeleteJob)
	return r
}

func TestCreateJob_Success(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	body := gin.H{
		"title":        "Platform Engineer",
		"company":      "TechNova",
		"location":     "Remote",
		"salary_range": "70000-90000 THB",
		"description":  "Own the deployment pipeline.",
		"requirements": []string{"Go", "Terraform"},
	}

	rec, resp := testutil.MakeJSONRequest(body, recruiterToken, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Platform Engineer", resp["title"])
	assert.Equal(t, database.TestRecruiter1.ID.String(), resp["owner_id"])
	assert.Equal(t, model.JobStatusOpen, resp["status"])
	assert.Equal(t, model.ModerationApproved, resp["moderation_status"])
}

func TestCreateJob_ApplicantForbidden(t *testing.T) {
	applicantToken, err := auth.GetAccessToken(t, testDB, database.TestApplicant1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	body := gin.H{
		"title":        "Should Not Exist",
		"company":      "Nope",
		"location":     "Nowhere",
		"salary_range": "0",
		"description":  "Applicants cannot post jobs.",
	}

	rec, resp := testutil.MakeJSONRequest(body, applicantToken, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, resp["error"], "doesn't have permission")
}

func TestCreateJob_MissingFields(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	body := gin.H{
		"title":   "Incomplete Posting",
		"company": "TechNova",
	}

	rec, resp := testutil.MakeJSONRequest(body, recruiterToken, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "required")
}

func TestCreateJob_UnknownFieldRejected(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	body := gin.H{
		"title":        "Sneaky Posting",
		"company":      "TechNova",
		"location":     "Remote",
		"salary_range": "1",
		"description":  "Trying to smuggle a status in.",
		"status":       "closed",
	}

	rec, resp := testutil.MakeJSONRequest(body, recruiterToken, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Invalid request body")
}

func TestGetJobs_NewestFirst(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	body := gin.H{
		"title":        "Freshly Posted Role",
		"company":      "TechNova",
		"location":     "Bangkok",
		"salary_range": "55000-65000 THB",
		"description":  "Created last, listed first.",
	}
	rec, _ := testutil.MakeJSONRequest(body, recruiterToken, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	listRec, jobs := testutil.MakeJSONListRequest(nil, recruiterToken, r, "/jobs", http.MethodGet)

	assert.Equal(t, http.StatusOK, listRec.Code)
	assert.GreaterOrEqual(t, len(jobs), 4)
	assert.Equal(t, "Freshly Posted Role", jobs[0]["title"])
}

func TestGetJobByID_Success(t *testing.T) {
	applicantToken, err := auth.GetAccessToken(t, testDB, database.TestApplicant1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	rec, resp := testutil.MakeJSONRequest(nil, applicantToken, r,
		fmt.Sprintf("/jobs/%d", database.TestJob1.ID), http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(database.TestJob1.ID), resp["id"])
	assert.Equal(t, database.TestJob1.Title, resp["title"])
}

func TestGetJobByID_NotFound(t *testing.T) {
	applicantToken, err := auth.GetAccessToken(t, testDB, database.TestApplicant1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	rec, resp := testutil.MakeJSONRequest(nil, applicantToken, r, "/jobs/999999", http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, resp["error"], "Job not found")
}

func TestEditJob_OwnerCanUpdate(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	body := gin.H{"location": "Bangkok (On-site)"}

	rec, resp := testutil.MakeJSONRequest(body, recruiterToken, r,
		fmt.Sprintf("/jobs/%d", database.TestJob1.ID), http.MethodPut)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bangkok (On-site)", resp["location"])
	// Fields absent from the request keep their value
	assert.Equal(t, database.TestJob1.Title, resp["title"])
}

func TestEditJob_NonOwnerForbidden(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	body := gin.H{"title": "Hijacked"}

	rec, resp := testutil.MakeJSONRequest(body, recruiterToken, r,
		fmt.Sprintf("/jobs/%d", database.TestJob1.ID), http.MethodPut)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, resp["error"], "not allowed to edit")

	job := model.JobPosting{}
	assert.NoError(t, testDB.Where("id = ?", database.TestJob1.ID).First(&job).Error)
	assert.NotEqual(t, "Hijacked", job.Title)
}

func TestEditJob_AdminCanUpdateAnyJob(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	body := gin.H{"description": "Adjusted by moderation."}

	rec, resp := testutil.MakeJSONRequest(body, adminToken, r,
		fmt.Sprintf("/jobs/%d", database.TestJob3.ID), http.MethodPut)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Adjusted by moderation.", resp["description"])
}

func TestEditJob_OwnershipFieldRejected(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	body := gin.H{"owner_id": database.TestRecruiter2.ID.String()}

	rec, resp := testutil.MakeJSONRequest(body, recruiterToken, r,
		fmt.Sprintf("/jobs/%d", database.TestJob1.ID), http.MethodPut)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Invalid request body")

	job := model.JobPosting{}
	assert.NoError(t, testDB.Where("id = ?", database.TestJob1.ID).First(&job).Error)
	assert.Equal(t, database.TestRecruiter1.ID, job.OwnerID)
}

func TestDeleteJob_NonOwnerForbidden(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	rec, resp := testutil.MakeJSONRequest(nil, recruiterToken, r,
		fmt.Sprintf("/jobs/%d", database.TestJob1.ID), http.MethodDelete)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, resp["error"], "not allowed to delete")
}

func TestDeleteJob_NotFound(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, recruiterToken, r, "/jobs/999999", http.MethodDelete)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteJob_CascadesToApplications(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := jobRouter()

	job := model.JobPosting{
		OwnerID: database.TestRecruiter1.ID,
		EditableJobInfo: model.EditableJobInfo{
			Title:       "Short Lived Role",
			Company:     "TechNova",
			Location:    "Remote",
			SalaryRange: "1",
			Description: "Deleted by the test.",
		},
	}
	assert.NoError(t, testDB.Create(&job).Error)

	application := model.Application{
		JobID:       job.ID,
		ApplicantID: database.TestApplicant2.ID,
		Status:      model.ApplicationStatusApplied,
	}
	assert.NoError(t, testDB.Create(&application).Error)

	rec, resp := testutil.MakeJSONRequest(nil, recruiterToken, r,
		fmt.Sprintf("/jobs/%d", job.ID), http.MethodDelete)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Job deleted", resp["message"])

	var count int64
	assert.NoError(t, testDB.Model(&model.Application{}).Where("job_id = ?", job.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
