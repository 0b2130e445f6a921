package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/knowhive/knowhive/internal/config"
	"github.com/knowhive/knowhive/internal/database"
	"github.com/knowhive/knowhive/internal/models"
	"github.com/knowhive/knowhive/internal/utils"
)

// Seeds a demo account so a fresh deployment has something to log in
// with. Safe to run repeatedly.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	name := os.Getenv("SEED_NAME")
	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	gender := os.Getenv("SEED_GENDER")

	if name == "" || email == "" || password == "" {
		log.Fatal("Missing environment variables: SEED_NAME, SEED_EMAIL, SEED_PASSWORD")
	}
	if gender == "" {
		gender = "male"
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Seed user already exists:", existing.Email)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: hash,
		Gender:   gender,
		Avatar:   models.DefaultAvatar(gender),
	}

	if err := db.Create(&user).Error; err != nil {
		log.Fatal("Failed to create seed user:", err)
	}

	log.Println("Seed user created:", user.Email)
}
