package entity

import (
	"time"
)

type AttendanceStatus string

const (
	AttendanceStatusPending   AttendanceStatus = "pending"
	AttendanceStatusWaitlist  AttendanceStatus = "waitlist"
	AttendanceStatusAttending AttendanceStatus = "attending"
	AttendanceStatusCanceled  AttendanceStatus = "canceled"
)

func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendanceStatusPending, AttendanceStatusWaitlist, AttendanceStatusAttending, AttendanceStatusCanceled:
		return true
	}
	return false
}

// Attendance joins a user to an event. At most one row per (user, event).
type Attendance struct {
	ID        string           `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	EventID   string           `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_event_user" json:"eventId"`
	Event     *Event           `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    string           `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_event_user" json:"userId"`
	User      *User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Status    AttendanceStatus `gorm:"not null;default:'pending'" json:"status"`
}
