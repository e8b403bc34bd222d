// Command-line tool to bootstrap an admin account with random credentials.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/config"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/database"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/model"
	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

// generateRandomString creates a random hex string of n bytes
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

// generateUniqueEmail tries until an unused admin email is found
func generateUniqueEmail(db *gorm.DB) string {
	for {
		email := fmt.Sprintf("admin-%s@jobportal.local", generateRandomString(4))
		var count int64
		db.Model(&model.User{}).Where("email = ?", email).Count(&count)
		if count == 0 {
			return email
		}
		// If email exists, loop again
	}
}

func main() {
	cfg := config.MustLoad()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}

	email := generateUniqueEmail(db.DB)
	password := generateRandomString(8)

	if err := utilities.CreateAdmin(password, email, db.DB); err != nil {
		log.Fatal("failed to create admin: ", err)
	}

	// Print credentials (only place the plain password is ever shown)
	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Email:    %s\n", email)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("======================================")

	os.Exit(0)
}
