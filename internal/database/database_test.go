package database

import (
	"context"
	"log"
	"testing"

	m "github.com/keshavbardwaj1348/job-portal-backend/internal/model"
)

func TestMain(tm *testing.M) {
	teardown, _, err := GetTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	tm.Run()

	if teardown != nil && teardown(context.Background()) != nil {
		log.Fatalf("could not teardown postgres container: %v", err)
	}
}

func TestHealth(t *testing.T) {
	_, db, err := GetTestDB()
	if err != nil {
		t.Fatalf("Database failed to initialize: %s", err)
	}
	stats := db.Health()

	if stats["status"] != "up" {
		t.Fatalf("expected status to be up, got %s", stats["status"])
	}

	if _, ok := stats["error"]; ok {
		t.Fatalf("expected error not to be present")
	}

	if stats["message"] != "It's healthy" {
		t.Fatalf("expected message to be 'It's healthy', got %s", stats["message"])
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	_, db, err := GetTestDB()
	if err != nil {
		t.Fatalf("Database failed to initialize: %s", err)
	}

	if err := db.Migrate(); err != nil {
		t.Fatalf("expected repeated migration to succeed, got %s", err)
	}
}

func TestSeededData(t *testing.T) {
	_, db, err := GetTestDB()
	if err != nil {
		t.Fatalf("Database failed to initialize: %s", err)
	}

	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("failed to count users: %s", err)
	}
	if userCount != 5 {
		t.Fatalf("expected 5 seeded users, got %d", userCount)
	}

	if TestAdminUser.Role != m.RoleAdmin {
		t.Fatalf("expected seeded admin role to be %s, got %s", m.RoleAdmin, TestAdminUser.Role)
	}

	var jobCount int64
	if err := db.Model(&m.JobPosting{}).Count(&jobCount).Error; err != nil {
		t.Fatalf("failed to count job postings: %s", err)
	}
	if jobCount != 3 {
		t.Fatalf("expected 3 seeded job postings, got %d", jobCount)
	}

	if TestJob3.Status != m.JobStatusClosed {
		t.Fatalf("expected third seeded job to be closed, got %s", TestJob3.Status)
	}
}

func TestClose(t *testing.T) {
	_, db, err := GetTestDB()
	if err != nil {
		t.Fatalf("Database failed to initialize: %s", err)
	}

	// Open a second connection to the same container so closing it does not
	// break the shared instance used by the rest of the package.
	other, err := NewDBInstance(db.Config)
	if err != nil {
		t.Fatalf("Database failed to initialize: %s", err)
	}

	if other.Close() != nil {
		t.Fatalf("expected Close() to return nil")
	}
}
