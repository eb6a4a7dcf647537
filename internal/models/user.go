package models

import "time"

// User represents a registered account.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(20)" validate:"required,max=20"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)" validate:"required"` // bcrypt digest, never serialized
	CreatedAt    time.Time `json:"created_at"`
}
