package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds the personal details attached to a User (1:1). Address,
// birthdate and avatar are pointers: nil means the field was never submitted
// or was cleared by an update that omitted it.
type Profile struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	UserID     uint           `gorm:"index;not null" json:"user_id"`
	FirstName  string         `gorm:"size:100;not null" json:"first_name"`
	MiddleName string         `gorm:"size:100" json:"middle_name"`
	LastName   string         `gorm:"size:100;not null" json:"last_name"`
	// FullName is derived on every save: "{first} {middle} {last}".
	FullName string `gorm:"size:255;not null" json:"full_name"`
	Address  *string `gorm:"size:500" json:"address"`
	// Birthdate is stored normalized as a YYYY-MM-DD string.
	Birthdate *string `gorm:"size:10" json:"birthdate"`
	// Avatar is an opaque storage reference returned by the uploader.
	Avatar    *string `gorm:"size:500" json:"avatar"`
	ContactNo string  `gorm:"size:50" json:"contact_no"`
}
