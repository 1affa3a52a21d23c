package primary

import (
	"context"
	"io"

	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
	"github.com/meetpup/meetpup/internal/domain/roles"
)

// UserService covers registration and profile lookups.
type UserService interface {
	SignUp(ctx context.Context, in dto.SignUpInput) (*entity.User, error)
	Get(ctx context.Context, id string) (*entity.User, error)
}

// SessionService is the identity side of the API: issuing, revoking and
// resolving session tokens.
type SessionService interface {
	LogIn(ctx context.Context, in dto.LoginInput) (user *entity.User, token string, err error)
	LogOut(ctx context.Context, token string) error
	// Resolve turns a raw token into a principal. A missing, invalid, expired
	// or revoked token degrades to the anonymous principal with clearCredential
	// set; it never fails the request.
	Resolve(ctx context.Context, token string) (principal roles.Principal, clearCredential bool)
	Current(ctx context.Context, principal roles.Principal) (*entity.User, error)
}

type GroupService interface {
	Create(ctx context.Context, principal roles.Principal, in dto.GroupInput) (*entity.Group, error)
	Get(ctx context.Context, id string) (*dto.GroupDetail, error)
	GetAll(ctx context.Context) ([]dto.GroupDetail, error)
	GetOrganized(ctx context.Context, principal roles.Principal) ([]dto.GroupDetail, error)
	Update(ctx context.Context, principal roles.Principal, id string, in dto.GroupInput) (*entity.Group, error)
	Delete(ctx context.Context, principal roles.Principal, id string) error
}

type EventService interface {
	Create(ctx context.Context, principal roles.Principal, groupID string, in dto.EventInput) (*entity.Event, error)
	Get(ctx context.Context, id string) (*dto.EventDetail, error)
	GetAll(ctx context.Context) ([]dto.EventDetail, error)
	GetByGroup(ctx context.Context, groupID string) ([]dto.EventDetail, error)
	Update(ctx context.Context, principal roles.Principal, id string, in dto.EventInput) (*entity.Event, error)
	Delete(ctx context.Context, principal roles.Principal, id string) error
}

type VenueService interface {
	Create(ctx context.Context, principal roles.Principal, groupID string, in dto.VenueInput) (*entity.Venue, error)
	GetByGroup(ctx context.Context, principal roles.Principal, groupID string) ([]entity.Venue, error)
	Update(ctx context.Context, principal roles.Principal, id string, in dto.VenueInput) (*entity.Venue, error)
}

type MembershipService interface {
	Request(ctx context.Context, principal roles.Principal, groupID string) (*entity.Membership, error)
	ChangeStatus(ctx context.Context, principal roles.Principal, groupID string, in dto.MembershipStatusInput) (*entity.Membership, error)
	Delete(ctx context.Context, principal roles.Principal, groupID, memberID string) error
	// Roster lists members; pending entries are visible only to the organizer
	// and co-hosts.
	Roster(ctx context.Context, principal roles.Principal, groupID string) ([]dto.GroupMember, error)
}

type AttendanceService interface {
	Request(ctx context.Context, principal roles.Principal, eventID string) (*entity.Attendance, error)
	ChangeStatus(ctx context.Context, principal roles.Principal, eventID string, in dto.AttendanceStatusInput) (*entity.Attendance, error)
	Delete(ctx context.Context, principal roles.Principal, eventID, userID string) error
	Roster(ctx context.Context, principal roles.Principal, eventID string) ([]dto.EventAttendee, error)
}

type ImageService interface {
	AddGroupImage(ctx context.Context, principal roles.Principal, groupID string, filename, contentType string, body io.Reader, preview bool) (*entity.GroupImage, error)
	AddEventImage(ctx context.Context, principal roles.Principal, eventID string, filename, contentType string, body io.Reader, preview bool) (*entity.EventImage, error)
	DeleteGroupImage(ctx context.Context, principal roles.Principal, imageID string) error
	DeleteEventImage(ctx context.Context, principal roles.Principal, imageID string) error
}

// MaintenanceService owns the background reconciliation jobs.
type MaintenanceService interface {
	StartScheduler() error
	StopScheduler()
	ReconcileMemberCounts(ctx context.Context) error
}
