package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"hireline/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/createadmin <email> <password>")
		os.Exit(2)
	}
	email := strings.TrimSpace(strings.ToLower(os.Args[1]))
	password := os.Args[2]

	dsn := os.Getenv("HIRELINE_DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("HIRELINE_DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	var existing models.AdminUser
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("admin %s already exists (id=%d)\n", email, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	admin := models.AdminUser{Email: email, HashedPassword: hpw}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}
	fmt.Printf("created admin %s id=%d\n", email, admin.ID)
}
