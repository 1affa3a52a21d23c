package entity

import (
	"time"
)

// GroupImage is an uploaded image attached to a group. Preview marks the
// representative image; at most one per group, enforced transactionally.
type GroupImage struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	GroupID   string    `gorm:"type:uuid;not null;index" json:"groupId"`
	URL       string    `gorm:"not null" json:"url"`
	Preview   bool      `gorm:"not null;default:false" json:"preview"`
}

type EventImage struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	EventID   string    `gorm:"type:uuid;not null;index" json:"eventId"`
	URL       string    `gorm:"not null" json:"url"`
	Preview   bool      `gorm:"not null;default:false" json:"preview"`
}
