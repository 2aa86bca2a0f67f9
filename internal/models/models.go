package models

import "time"

// Satellite tables reachable from User through foreign-key chains. They are
// migrated so the relations exist, but carry no business logic here.

type Record struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	DoctorID  uint      `gorm:"index" json:"doctor_id"`
	ServiceID uint      `gorm:"index" json:"service_id"`
	Notes     string    `gorm:"size:1000" json:"notes,omitempty"`
}

type Doctor struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

type Service struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

type Schedule struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}
