package service

import (
	"context"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
	"github.com/meetpup/meetpup/internal/domain/roles"
	"github.com/meetpup/meetpup/internal/domain/utils/validator"
	"github.com/meetpup/meetpup/internal/ports/secondary"
)

type AttendanceService struct {
	repo        secondary.AttendanceRepository
	events      secondary.EventRepository
	groups      secondary.GroupRepository
	memberships secondary.MembershipRepository
	users       secondary.UserRepository
}

func NewAttendanceService(
	storage secondary.AttendanceRepository,
	eventStorage secondary.EventRepository,
	groupStorage secondary.GroupRepository,
	membershipStorage secondary.MembershipRepository,
	userStorage secondary.UserRepository,
) *AttendanceService {
	return &AttendanceService{
		repo:        storage,
		events:      eventStorage,
		groups:      groupStorage,
		memberships: membershipStorage,
		users:       userStorage,
	}
}

// Request creates a pending attendance. The gate is membership-row existence
// in the event's group, with any status: a pending membership passes, and even
// the organizer is rejected without a row.
func (s *AttendanceService) Request(ctx context.Context, principal roles.Principal, eventID string) (*entity.Attendance, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if principal.Anonymous() {
		return nil, apperror.Unauthenticated("Authentication required")
	}

	membership, err := membershipOrNil(ctx, s.memberships, event.GroupID, principal.UserID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperror.Forbidden("User must be a member of the group to request attendance")
	}

	existing, err := s.attendanceOrNil(ctx, eventID, principal.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == entity.AttendanceStatusPending {
			return nil, apperror.Conflict("Attendance has already been requested")
		}
		return nil, apperror.Conflict("User is already an attendee of the event")
	}

	return s.repo.Create(ctx, &entity.Attendance{
		EventID: eventID,
		UserID:  principal.UserID,
		Status:  entity.AttendanceStatusPending,
	})
}

// ChangeStatus updates an attendance. Only the organizer or a co-host of the
// event's group may do this, and the target status can never be pending.
func (s *AttendanceService) ChangeStatus(ctx context.Context, principal roles.Principal, eventID string, in dto.AttendanceStatusInput) (*entity.Attendance, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	group, err := s.groups.Get(ctx, event.GroupID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	attendance, err := s.repo.Get(ctx, eventID, in.UserID)
	if err != nil {
		return nil, err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return nil, err
	}
	if err := roles.Authorize(roles.ActionUpdateAttendance, role); err != nil {
		return nil, err
	}

	if errs := validator.AttendanceStatusChange(in.Status); len(errs) > 0 {
		return nil, apperror.Validation("Bad Request", errs)
	}

	attendance.Status = entity.AttendanceStatus(in.Status)
	return s.repo.Update(ctx, attendance)
}

// Delete removes an attendance; allowed for the attendee themself or the
// group's organizer. Co-hosts may not delete other people's attendance.
func (s *AttendanceService) Delete(ctx context.Context, principal roles.Principal, eventID, userID string) error {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return err
	}
	group, err := s.groups.Get(ctx, event.GroupID)
	if err != nil {
		return err
	}

	if _, err := s.repo.Get(ctx, eventID, userID); err != nil {
		return err
	}

	if principal.Anonymous() {
		return apperror.Unauthenticated("Authentication required")
	}
	if principal.UserID != userID && principal.UserID != group.OrganizerID {
		return apperror.Forbidden("Only the organizer or the attendee may delete an attendance")
	}

	return s.repo.Delete(ctx, eventID, userID)
}

// Roster lists attendees. Pending attendances are visible only to the
// organizer and co-hosts of the event's group.
func (s *AttendanceService) Roster(ctx context.Context, principal roles.Principal, eventID string) ([]dto.EventAttendee, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	group, err := s.groups.Get(ctx, event.GroupID)
	if err != nil {
		return nil, err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return nil, err
	}

	attendees, err := s.repo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if roles.Can(roles.ActionViewFullRoster, role) {
		return attendees, nil
	}

	filtered := make([]dto.EventAttendee, 0, len(attendees))
	for _, a := range attendees {
		if a.Status != entity.AttendanceStatusPending {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

func (s *AttendanceService) attendanceOrNil(ctx context.Context, eventID, userID string) (*entity.Attendance, error) {
	attendance, err := s.repo.Get(ctx, eventID, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return attendance, nil
}
