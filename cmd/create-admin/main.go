package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ethiowork-backend/internal/database"
	"ethiowork-backend/internal/model"
)

// generateRandomString creates a random hex string of length n
func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal(err)
	}
	return hex.EncodeToString(bytes)
}

// generateUniqueEmail tries until an unused admin address is found
func generateUniqueEmail(db *gorm.DB) string {
	for {
		email := fmt.Sprintf("admin_%s@ethiowork.local", generateRandomString(4))
		var count int64
		db.Model(&model.Account{}).Where("email = ?", email).Count(&count)
		if count == 0 {
			return email
		}
		// If email exists, loop again
	}
}

func main() {
	instance, err := database.NewDBInstance(database.ConfigFromEnv())
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	db := instance.DB

	email := generateUniqueEmail(db)
	password := generateRandomString(8)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	admin := model.Account{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin: ", err)
	}

	// Print credentials (only show plain password here!)
	fmt.Println("Admin credentials generated successfully!")
	fmt.Println("======================================")
	fmt.Printf("Email:    %s\n", admin.Email)
	fmt.Printf("Password: %s\n", password)
	fmt.Println("======================================")

	os.Exit(0)
}
