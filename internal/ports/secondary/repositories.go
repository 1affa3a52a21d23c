package secondary

import (
	"context"

	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
)

// Repositories return apperror.NotFound when a lookup misses and
// apperror.Conflict when a unique constraint rejects a write.

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByCredential matches email (case-insensitively) or username.
	GetByCredential(ctx context.Context, credential string) (*entity.User, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) (*entity.Group, error)
	Get(ctx context.Context, id string) (*entity.Group, error)
	GetDetail(ctx context.Context, id string) (*dto.GroupDetail, error)
	GetAll(ctx context.Context) ([]dto.GroupDetail, error)
	GetByOrganizer(ctx context.Context, organizerID string) ([]dto.GroupDetail, error)
	Update(ctx context.Context, group *entity.Group) (*entity.Group, error)
	Delete(ctx context.Context, id string) error
	// AdjustMembers applies a delta to the denormalized member counter.
	AdjustMembers(ctx context.Context, id string, delta int) error
	// RecountMembers rebuilds every group's counter from membership rows.
	RecountMembers(ctx context.Context) error
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	GetDetail(ctx context.Context, id string) (*dto.EventDetail, error)
	GetAll(ctx context.Context) ([]dto.EventDetail, error)
	GetByGroupID(ctx context.Context, groupID string) ([]dto.EventDetail, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Delete(ctx context.Context, id string) error
}

type VenueRepository interface {
	Create(ctx context.Context, venue *entity.Venue) (*entity.Venue, error)
	Get(ctx context.Context, id string) (*entity.Venue, error)
	GetByGroupID(ctx context.Context, groupID string) ([]entity.Venue, error)
	Update(ctx context.Context, venue *entity.Venue) (*entity.Venue, error)
}

type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.Membership) (*entity.Membership, error)
	// Get is the membership lookup: at most one row per (group, user).
	Get(ctx context.Context, groupID, userID string) (*entity.Membership, error)
	GetByGroupID(ctx context.Context, groupID string) ([]dto.GroupMember, error)
	Update(ctx context.Context, membership *entity.Membership) (*entity.Membership, error)
	Delete(ctx context.Context, groupID, userID string) error
}

type AttendanceRepository interface {
	Create(ctx context.Context, attendance *entity.Attendance) (*entity.Attendance, error)
	Get(ctx context.Context, eventID, userID string) (*entity.Attendance, error)
	GetByEventID(ctx context.Context, eventID string) ([]dto.EventAttendee, error)
	Update(ctx context.Context, attendance *entity.Attendance) (*entity.Attendance, error)
	Delete(ctx context.Context, eventID, userID string) error
}

type ImageRepository interface {
	// CreateGroupImage inserts the row and, when Preview is set, demotes the
	// previous preview in the same transaction.
	CreateGroupImage(ctx context.Context, image *entity.GroupImage) (*entity.GroupImage, error)
	CreateEventImage(ctx context.Context, image *entity.EventImage) (*entity.EventImage, error)
	GetGroupImage(ctx context.Context, id string) (*entity.GroupImage, error)
	GetEventImage(ctx context.Context, id string) (*entity.EventImage, error)
	DeleteGroupImage(ctx context.Context, id string) error
	DeleteEventImage(ctx context.Context, id string) error
}
