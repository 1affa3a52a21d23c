package entity

import (
	"time"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	FirstName string    `gorm:"not null" json:"firstName"`
	LastName  string    `gorm:"not null" json:"lastName"`
	// Email is stored lowercased so credential matching and uniqueness agree.
	Email        string `gorm:"not null;uniqueIndex" json:"email"`
	Username     string `gorm:"not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
}
