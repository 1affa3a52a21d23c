package service

import (
	"context"
	"time"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
	"github.com/meetpup/meetpup/internal/domain/roles"
	"github.com/meetpup/meetpup/internal/domain/utils/validator"
	"github.com/meetpup/meetpup/internal/ports/secondary"
)

type EventService struct {
	repo        secondary.EventRepository
	groups      secondary.GroupRepository
	venues      secondary.VenueRepository
	memberships secondary.MembershipRepository
}

func NewEventService(
	storage secondary.EventRepository,
	groupStorage secondary.GroupRepository,
	venueStorage secondary.VenueRepository,
	membershipStorage secondary.MembershipRepository,
) *EventService {
	return &EventService{
		repo:        storage,
		groups:      groupStorage,
		venues:      venueStorage,
		memberships: membershipStorage,
	}
}

func (s *EventService) Create(ctx context.Context, principal roles.Principal, groupID string, in dto.EventInput) (*entity.Event, error) {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return nil, err
	}
	if err := roles.Authorize(roles.ActionCreateEvent, role); err != nil {
		return nil, err
	}

	if errs := validator.Event(in, nowFn()); len(errs) > 0 {
		return nil, apperror.Validation("Bad Request", errs)
	}

	event, err := s.buildEvent(ctx, group.ID, in)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, event)
}

func (s *EventService) Get(ctx context.Context, id string) (*dto.EventDetail, error) {
	return s.repo.GetDetail(ctx, id)
}

func (s *EventService) GetAll(ctx context.Context) ([]dto.EventDetail, error) {
	return s.repo.GetAll(ctx)
}

func (s *EventService) GetByGroup(ctx context.Context, groupID string) ([]dto.EventDetail, error) {
	if _, err := s.groups.Get(ctx, groupID); err != nil {
		return nil, err
	}
	return s.repo.GetByGroupID(ctx, groupID)
}

func (s *EventService) Update(ctx context.Context, principal roles.Principal, id string, in dto.EventInput) (*entity.Event, error) {
	event, group, err := s.eventWithGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return nil, err
	}
	if err := roles.Authorize(roles.ActionUpdateEvent, role); err != nil {
		return nil, err
	}

	// No future-start requirement here: an event that has already begun can
	// still have its details corrected.
	if errs := validator.EventUpdate(in); len(errs) > 0 {
		return nil, apperror.Validation("Bad Request", errs)
	}

	updated, err := s.buildEvent(ctx, group.ID, in)
	if err != nil {
		return nil, err
	}

	event.VenueID = updated.VenueID
	event.Name = updated.Name
	event.Type = updated.Type
	event.Capacity = updated.Capacity
	event.Price = updated.Price
	event.Description = updated.Description
	event.StartDate = updated.StartDate
	event.EndDate = updated.EndDate

	return s.repo.Update(ctx, event)
}

func (s *EventService) Delete(ctx context.Context, principal roles.Principal, id string) error {
	_, group, err := s.eventWithGroup(ctx, id)
	if err != nil {
		return err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return err
	}
	if err := roles.Authorize(roles.ActionDeleteEvent, role); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// buildEvent assembles an event from validated input, resolving the referenced
// venue, which must belong to the event's group.
func (s *EventService) buildEvent(ctx context.Context, groupID string, in dto.EventInput) (*entity.Event, error) {
	var venueID *string
	if in.VenueID != nil && *in.VenueID != "" {
		venue, err := s.venues.Get(ctx, *in.VenueID)
		if err != nil {
			return nil, err
		}
		if venue.GroupID != groupID {
			return nil, apperror.Validation("Bad Request", map[string]string{
				"venueId": "Venue does not belong to this group",
			})
		}
		venueID = &venue.ID
	}

	startDate, _ := time.Parse(validator.DateLayout, in.StartDate)
	endDate, _ := time.Parse(validator.DateLayout, in.EndDate)

	price := 0.0
	if in.Price != nil {
		price = *in.Price
	}

	return &entity.Event{
		GroupID:     groupID,
		VenueID:     venueID,
		Name:        in.Name,
		Description: in.Description,
		Type:        entity.EventType(in.Type),
		Capacity:    in.Capacity,
		Price:       price,
		StartDate:   startDate,
		EndDate:     endDate,
	}, nil
}

func (s *EventService) eventWithGroup(ctx context.Context, id string) (*entity.Event, *entity.Group, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	group, err := s.groups.Get(ctx, event.GroupID)
	if err != nil {
		return nil, nil, err
	}
	return event, group, nil
}
