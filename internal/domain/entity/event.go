package entity

import (
	"time"
)

type EventType string

const (
	EventTypeOnline   EventType = "Online"
	EventTypeInPerson EventType = "In person"
)

type Event struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	GroupID     string    `gorm:"type:uuid;not null;index" json:"groupId"`
	Group       *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	VenueID     *string   `gorm:"type:uuid" json:"venueId"`
	Venue       *Venue    `gorm:"foreignKey:VenueID;constraint:OnDelete:SET NULL" json:"-"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	Type        EventType `gorm:"not null" json:"type"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	StartDate   time.Time `gorm:"not null" json:"startDate"`
	EndDate     time.Time `gorm:"not null" json:"endDate"`

	Images []EventImage `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
