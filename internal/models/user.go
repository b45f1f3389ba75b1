package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the minimal authenticated principal the ledger needs: identity,
// credentials for login, and a role. Profile management lives elsewhere.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Name         string
	Role         string `gorm:"default:'user'"`
	Status       string `gorm:"default:'active'"`
	TokenVersion int    `gorm:"default:1"`
	LastLoginAt  time.Time
}
