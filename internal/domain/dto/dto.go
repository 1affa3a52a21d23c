// Package dto holds the typed request and response shapes of the API.
// Inputs are validated by domain/utils/validator before any business logic
// runs; aggregated outputs are assembled by the repositories.
package dto

import (
	"time"

	"github.com/meetpup/meetpup/internal/domain/entity"
)

// Inputs

type SignUpInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type LoginInput struct {
	Credential string `json:"credential"`
	Password   string `json:"password"`
}

type GroupInput struct {
	Name    string `json:"name"`
	About   string `json:"about"`
	Type    string `json:"type"`
	Private *bool  `json:"private"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type VenueInput struct {
	Address string   `json:"address"`
	City    string   `json:"city"`
	State   string   `json:"state"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// EventInput carries dates as strings in the YYYY-MM-DDTHH:mm wire format;
// the validator parses and range-checks them.
type EventInput struct {
	VenueID     *string  `json:"venueId"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Capacity    int      `json:"capacity"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
}

type MembershipStatusInput struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

type AttendanceStatusInput struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

type ImageInput struct {
	Preview bool `json:"preview"`
}

// Outputs

type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
}

type GroupDetail struct {
	entity.Group
	NumEvents int           `json:"numEvents"`
	Organizer UserSummary   `json:"organizer"`
	Images    []ImageDetail `json:"images"`
}

type EventDetail struct {
	entity.Event
	NumAttending int           `json:"numAttending"`
	Group        *entity.Group `json:"group"`
	Venue        *entity.Venue `json:"venue"`
	Images       []ImageDetail `json:"images"`
}

type ImageDetail struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Preview bool   `json:"preview"`
}

// GroupMember is a membership row joined with its user.
type GroupMember struct {
	UserSummary
	Status   entity.MembershipStatus `json:"status"`
	JoinedAt time.Time               `json:"joinedAt"`
}

// EventAttendee is an attendance row joined with its user.
type EventAttendee struct {
	UserSummary
	Status entity.AttendanceStatus `json:"status"`
}
