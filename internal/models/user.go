package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account managed through the administrator area.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Username  string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"` // Hashed, never exposed in JSON
	// RememberToken backs the "remember me" login flow; opaque and hidden
	// from any external representation.
	RememberToken string `gorm:"size:100" json:"-"`
	// IsAdmin gates access to the /administrator area.
	IsAdmin bool     `gorm:"default:false" json:"is_admin"`
	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}
