// Command admin_seed creates the initial administrator account and the
// default limit settings rows. Safe to re-run: existing rows are left alone.
package main

import (
	"log"
	"os"

	"palenque/internal/config"
	"palenque/internal/models"
	"palenque/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var defaultSettings = map[string]string{
	models.SettingDepositMin:         "5",
	models.SettingDepositMax:         "1000",
	models.SettingDepositMaxDaily:    "5000",
	models.SettingWithdrawalMin:      "10",
	models.SettingWithdrawalMax:      "500",
	models.SettingWithdrawalMaxDaily: "2000",
	models.SettingRequireProofOver:   "500",
}

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer func() {
		if repositories.DB != nil {
			sqlDB, err := repositories.DB.DB()
			if err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	seedSettings()
	seedAdmin(adminEmail, adminPassword)
}

func seedSettings() {
	for key, value := range defaultSettings {
		var existing models.Setting
		if err := repositories.DB.Where("key = ?", key).First(&existing).Error; err == nil {
			continue
		}
		setting := models.Setting{Key: key, Value: value}
		if err := repositories.DB.Create(&setting).Error; err != nil {
			log.Fatalf("Failed to seed setting %s: %v", key, err)
		}
		log.Printf("Seeded setting %s = %s", key, value)
	}
}

func seedAdmin(email, password string) {
	var existingAdmin models.User
	if err := repositories.DB.Where("email = ?", email).First(&existingAdmin).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	adminUser := models.User{
		Email:        email,
		Password:     string(hashedPassword),
		Name:         "Administrator",
		Role:         "admin",
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&adminUser).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	wallet := models.Wallet{UserID: adminUser.ID}
	if err := repositories.DB.Create(&wallet).Error; err != nil {
		log.Fatal("Failed to create admin wallet:", err)
	}

	log.Println("Admin account created successfully")
}
