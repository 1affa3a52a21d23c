package entity

import (
	"time"
)

type GroupType string

const (
	GroupTypeOnline   GroupType = "Online"
	GroupTypeInPerson GroupType = "In person"
)

type Group struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string    `gorm:"not null;unique" json:"name"`
	About       string    `gorm:"not null" json:"about"`
	Type        GroupType `gorm:"not null" json:"type"`
	Private     bool      `gorm:"not null;default:false" json:"private"`
	City        string    `gorm:"not null" json:"city"`
	State       string    `gorm:"not null" json:"state"`
	OrganizerID string    `gorm:"type:uuid;not null;index" json:"organizerId"`
	Organizer   *User     `gorm:"foreignKey:OrganizerID" json:"-"`
	// NumMembers is denormalized; the organizer counts as the first member even
	// though no membership row exists for them.
	NumMembers int `gorm:"not null;default:1" json:"numMembers"`

	Images []GroupImage `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
