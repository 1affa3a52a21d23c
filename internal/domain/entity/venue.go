package entity

import (
	"time"
)

type Venue struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	GroupID   string    `gorm:"type:uuid;not null;index" json:"groupId"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	Address   string    `gorm:"not null" json:"address"`
	City      string    `gorm:"not null" json:"city"`
	State     string    `gorm:"not null" json:"state"`
	Lat       *float64  `json:"lat"`
	Lng       *float64  `json:"lng"`
}
