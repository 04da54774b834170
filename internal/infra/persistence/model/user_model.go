package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'profiles' table. PostgreSQL generates the UUID via
// gen_random_uuid(). Email is stored lower-cased by the application.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FullName     *string   `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "profiles"
}
