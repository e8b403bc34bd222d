package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	m "github.com/keshavbardwaj1348/job-portal-backend/internal/model"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded users
var (
	TestAdminUser  m.User
	TestApplicant1 m.User
	TestApplicant2 m.User
	TestRecruiter1 m.User
	TestRecruiter2 m.User

	// Plain password shared by every seeded user
	TestSeedPassword = "SeedPass123!"

	// Exported seeded job postings. TestJob1 and TestJob2 belong to
	// TestRecruiter1 and are open; TestJob3 belongs to TestRecruiter2 and is
	// closed.
	TestJob1 m.JobPosting
	TestJob2 m.JobPosting
	TestJob3 m.JobPosting
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed sample users and job postings
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample users and job postings if the database is empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return loadTestData(db)
	}

	userSpecs := []struct {
		email   string
		name    string
		role    m.Role
		profile m.EditableProfile
	}{
		{
			email: "applicant1@example.com",
			name:  "Alice Carter",
			role:  m.RoleApplicant,
			profile: m.EditableProfile{
				Skills:     pq.StringArray{"Go", "SQL"},
				Experience: "2 years backend development",
				Bio:        "Backend developer looking for new challenges.",
			},
		},
		{
			email: "applicant2@example.com",
			name:  "Bob Tran",
			role:  m.RoleApplicant,
			profile: m.EditableProfile{
				Skills:     pq.StringArray{"React", "TypeScript"},
				Experience: "1 year frontend development",
				Bio:        "Frontend developer with an eye for design.",
			},
		},
		{
			email: "recruiter1@example.com",
			name:  "Carol Menon",
			role:  m.RoleRecruiter,
			profile: m.EditableProfile{
				CompanyName: "TechNova",
				Website:     "https://technova.example.com",
				Description: "Innovative platform solutions",
			},
		},
		{
			email: "recruiter2@example.com",
			name:  "Dan Okafor",
			role:  m.RoleRecruiter,
			profile: m.EditableProfile{
				CompanyName: "DataForge",
				Website:     "https://dataforge.example.com",
				Description: "Data analytics consulting",
			},
		},
		{
			email: "admin@example.com",
			name:  "Site Admin",
			role:  m.RoleAdmin,
		},
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			ID:               uuid.New(),
			Email:            s.email,
			Password:         hashedPwd,
			Role:             s.role,
			EditableUserInfo: m.EditableUserInfo{Name: s.name},
			EditableProfile:  s.profile,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	// Map created users to exported variables
	for _, u := range users {
		switch u.Email {
		case "applicant1@example.com":
			TestApplicant1 = u
		case "applicant2@example.com":
			TestApplicant2 = u
		case "recruiter1@example.com":
			TestRecruiter1 = u
		case "recruiter2@example.com":
			TestRecruiter2 = u
		case "admin@example.com":
			TestAdminUser = u
		}
	}

	// Seed job postings (only if none exist yet)
	var jobCount int64
	if err := db.Model(&m.JobPosting{}).Count(&jobCount).Error; err != nil {
		return err
	}
	if jobCount == 0 {
		jobs := []m.JobPosting{
			{
				OwnerID: TestRecruiter1.ID,
				EditableJobInfo: m.EditableJobInfo{
					Title:        "Backend Engineer",
					Company:      "TechNova",
					Location:     "Bangkok (Hybrid)",
					SalaryRange:  "60000-80000 THB",
					Description:  "Work on Go microservices and database layers.",
					Requirements: pq.StringArray{"Go basics", "SQL familiarity"},
				},
			},
			{
				OwnerID: TestRecruiter1.ID,
				EditableJobInfo: m.EditableJobInfo{
					Title:        "Frontend Developer",
					Company:      "TechNova",
					Location:     "Remote",
					SalaryRange:  "50000-70000 THB",
					Description:  "Build the component library in React.",
					Requirements: pq.StringArray{"JS/TS fundamentals"},
				},
			},
			{
				OwnerID: TestRecruiter2.ID,
				Status:  m.JobStatusClosed,
				EditableJobInfo: m.EditableJobInfo{
					Title:        "Data Analyst",
					Company:      "DataForge",
					Location:     "Chiang Mai (On-site)",
					SalaryRange:  "45000-60000 THB",
					Description:  "Support data cleansing and dashboard creation.",
					Requirements: pq.StringArray{"SQL", "basic statistics"},
				},
			},
		}

		if err := db.Create(&jobs).Error; err != nil {
			return err
		}
		TestJob1 = jobs[0]
		TestJob2 = jobs[1]
		TestJob3 = jobs[2]
	}

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("email IN ?", []string{
		"applicant1@example.com", "applicant2@example.com",
		"recruiter1@example.com", "recruiter2@example.com",
		"admin@example.com",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Email {
		case "applicant1@example.com":
			TestApplicant1 = u
		case "applicant2@example.com":
			TestApplicant2 = u
		case "recruiter1@example.com":
			TestRecruiter1 = u
		case "recruiter2@example.com":
			TestRecruiter2 = u
		case "admin@example.com":
			TestAdminUser = u
		}
	}

	// Load first three job postings deterministically
	var jobs []m.JobPosting
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err == nil {
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJob3 = jobs[2]
		}
	}

	return nil
}
