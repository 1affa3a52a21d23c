// Package validator checks request inputs against the field rules of the API.
// Each function collects every violation into a field -> message map instead
// of failing on the first one.
package validator

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
)

// DateLayout is the wire format for event dates.
const DateLayout = "2006-01-02T15:04"

var stateRe = regexp.MustCompile(`^[A-Z]{2}$`)

func SignUp(in dto.SignUpInput) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(in.FirstName) == "" {
		errs["firstName"] = "First Name is required"
	}
	if strings.TrimSpace(in.LastName) == "" {
		errs["lastName"] = "Last Name is required"
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		errs["email"] = "Invalid email"
	}
	if utf8.RuneCountInString(in.Username) < 4 {
		errs["username"] = "Username must be 4 characters or more"
	}
	if strings.Contains(in.Username, "@") {
		errs["username"] = "Username cannot be an email"
	}
	if utf8.RuneCountInString(in.Password) < 6 {
		errs["password"] = "Password must be 6 characters or more"
	}
	return errs
}

func Login(in dto.LoginInput) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(in.Credential) == "" {
		errs["credential"] = "Email or username is required"
	}
	if in.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

func Group(in dto.GroupInput) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(in.Name) == "" || utf8.RuneCountInString(in.Name) > 60 {
		errs["name"] = "Name must be 60 characters or less"
	}
	if utf8.RuneCountInString(in.About) < 50 {
		errs["about"] = "About must be 50 characters or more"
	}
	if t := entity.GroupType(in.Type); t != entity.GroupTypeOnline && t != entity.GroupTypeInPerson {
		errs["type"] = "Type must be 'Online' or 'In person'"
	}
	if in.Private == nil {
		errs["private"] = "Private must be a boolean"
	}
	if strings.TrimSpace(in.City) == "" {
		errs["city"] = "City is required"
	}
	if !stateRe.MatchString(in.State) {
		errs["state"] = "State must be 2 uppercase letters"
	}
	return errs
}

func Venue(in dto.VenueInput) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(in.Address) == "" {
		errs["address"] = "Street address is required"
	}
	if strings.TrimSpace(in.City) == "" {
		errs["city"] = "City is required"
	}
	if !stateRe.MatchString(in.State) {
		errs["state"] = "State must be 2 uppercase letters"
	}
	if in.Lat != nil && (*in.Lat < -90 || *in.Lat > 90) {
		errs["lat"] = "Latitude must be within -90 and 90"
	}
	if in.Lng != nil && (*in.Lng < -180 || *in.Lng > 180) {
		errs["lng"] = "Longitude must be within -180 and 180"
	}
	return errs
}

// Event validates an event input for creation. now is injected so the
// strictly-in-the-future rule is testable.
func Event(in dto.EventInput, now time.Time) map[string]string {
	errs := eventFields(in)
	if _, ok := errs["startDate"]; ok {
		return errs
	}
	start, _ := time.Parse(DateLayout, in.StartDate)
	if !start.After(now) {
		errs["startDate"] = "Start date must be in the future"
	}
	return errs
}

// EventUpdate applies the same field rules without the future-start
// requirement, so an event that has already begun stays editable.
func EventUpdate(in dto.EventInput) map[string]string {
	return eventFields(in)
}

func eventFields(in dto.EventInput) map[string]string {
	errs := make(map[string]string)
	if utf8.RuneCountInString(in.Name) < 5 {
		errs["name"] = "Name must be at least 5 characters"
	}
	eventType := entity.EventType(in.Type)
	if eventType != entity.EventTypeOnline && eventType != entity.EventTypeInPerson {
		errs["type"] = "Type must be 'Online' or 'In person'"
	}
	if eventType == entity.EventTypeInPerson && (in.VenueID == nil || *in.VenueID == "") {
		errs["venueId"] = "Venue is required for in person events"
	}
	if in.Capacity <= 0 {
		errs["capacity"] = "Capacity must be a positive integer"
	}
	if in.Price != nil && *in.Price < 0 {
		errs["price"] = "Price is invalid"
	}
	if n := utf8.RuneCountInString(in.Description); n < 30 || n > 2000 {
		errs["description"] = "Description must be between 30 and 2000 characters"
	}

	start, startErr := time.Parse(DateLayout, in.StartDate)
	if startErr != nil {
		errs["startDate"] = "Start date must match YYYY-MM-DDTHH:mm"
	}

	end, endErr := time.Parse(DateLayout, in.EndDate)
	if endErr != nil {
		errs["endDate"] = "End date must match YYYY-MM-DDTHH:mm"
	} else if startErr == nil && !end.After(start) {
		errs["endDate"] = "End date must be after start date"
	}

	return errs
}

func MembershipStatus(status string) map[string]string {
	errs := make(map[string]string)
	if !entity.ValidMembershipStatus(entity.MembershipStatus(status)) {
		errs["status"] = "Status must be 'pending', 'member', 'co-host' or 'inactive'"
	}
	return errs
}

// AttendanceStatusChange rejects a pending target unconditionally: an
// attendance can never be reset to pending, regardless of role.
func AttendanceStatusChange(status string) map[string]string {
	errs := make(map[string]string)
	s := entity.AttendanceStatus(status)
	if !entity.ValidAttendanceStatus(s) {
		errs["status"] = "Status must be 'waitlist', 'attending' or 'canceled'"
	} else if s == entity.AttendanceStatusPending {
		errs["status"] = "Cannot change an attendance status to pending"
	}
	return errs
}
