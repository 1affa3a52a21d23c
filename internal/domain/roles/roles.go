// Package roles derives a principal's effective role within a group and
// answers whether that role may perform an action. Roles are recomputed per
// request from the group's organizer id and the principal's membership row;
// nothing is cached, so there is no staleness to reason about.
package roles

import (
	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/entity"
)

// Principal is the resolved identity making a request. The zero value is
// anonymous.
type Principal struct {
	UserID string
}

func (p Principal) Anonymous() bool { return p.UserID == "" }

type Role int

const (
	Anonymous Role = iota
	Outsider
	Member
	CoHost
	Organizer
)

func (r Role) String() string {
	switch r {
	case Organizer:
		return "organizer"
	case CoHost:
		return "co-host"
	case Member:
		return "member"
	case Outsider:
		return "outsider"
	default:
		return "anonymous"
	}
}

// Classify computes the principal's role for a group. The organizer is
// recognized from the group's organizer id alone and never needs a
// membership row; membership may be nil for everyone else.
func Classify(p Principal, group *entity.Group, membership *entity.Membership) Role {
	if p.Anonymous() {
		return Anonymous
	}
	if group != nil && group.OrganizerID == p.UserID {
		return Organizer
	}
	if membership == nil || membership.UserID != p.UserID {
		return Outsider
	}
	if membership.Status == entity.MembershipStatusCoHost {
		return CoHost
	}
	// pending and inactive still count as "not outsider" for read paths.
	return Member
}

type Action int

const (
	ActionCreateGroup Action = iota
	ActionUpdateGroup
	ActionDeleteGroup
	ActionCreateEvent
	ActionUpdateEvent
	ActionDeleteEvent
	ActionListVenues
	ActionCreateVenue
	ActionUpdateVenue
	ActionUpdateAttendance
	ActionUpdateMembership
	ActionManageImages
	ActionViewFullRoster
)

var allowed = map[Action]map[Role]bool{
	ActionCreateGroup:      {Organizer: true, CoHost: true, Member: true, Outsider: true},
	ActionUpdateGroup:      {Organizer: true},
	ActionDeleteGroup:      {Organizer: true},
	ActionCreateEvent:      {Organizer: true},
	ActionUpdateEvent:      {Organizer: true, CoHost: true},
	ActionDeleteEvent:      {Organizer: true, CoHost: true},
	ActionListVenues:       {Organizer: true, CoHost: true},
	ActionCreateVenue:      {Organizer: true, CoHost: true},
	ActionUpdateVenue:      {Organizer: true, CoHost: true},
	ActionUpdateAttendance: {Organizer: true, CoHost: true},
	ActionUpdateMembership: {Organizer: true, CoHost: true},
	ActionManageImages:     {Organizer: true, CoHost: true},
	ActionViewFullRoster:   {Organizer: true, CoHost: true},
}

// Authorize returns nil when role may perform action. Anonymous principals get
// an unauthenticated error; everyone else gets forbidden. Callers must resolve
// entity existence before calling, so missing resources read as 404, not 403.
func Authorize(action Action, role Role) error {
	if allowed[action][role] {
		return nil
	}
	if role == Anonymous {
		return apperror.Unauthenticated("Authentication required")
	}
	return apperror.Forbidden("Forbidden")
}

// Can reports the gate decision without constructing an error.
func Can(action Action, role Role) bool {
	return allowed[action][role]
}
