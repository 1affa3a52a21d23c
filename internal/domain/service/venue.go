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

type VenueService struct {
	repo        secondary.VenueRepository
	groups      secondary.GroupRepository
	memberships secondary.MembershipRepository
}

func NewVenueService(
	storage secondary.VenueRepository,
	groupStorage secondary.GroupRepository,
	membershipStorage secondary.MembershipRepository,
) *VenueService {
	return &VenueService{
		repo:        storage,
		groups:      groupStorage,
		memberships: membershipStorage,
	}
}

func (s *VenueService) Create(ctx context.Context, principal roles.Principal, groupID string, in dto.VenueInput) (*entity.Venue, error) {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return nil, err
	}
	if err := roles.Authorize(roles.ActionCreateVenue, role); err != nil {
		return nil, err
	}

	if errs := validator.Venue(in); len(errs) > 0 {
		return nil, apperror.Validation("Bad Request", errs)
	}

	return s.repo.Create(ctx, &entity.Venue{
		GroupID: group.ID,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		Lat:     in.Lat,
		Lng:     in.Lng,
	})
}

func (s *VenueService) GetByGroup(ctx context.Context, principal roles.Principal, groupID string) ([]entity.Venue, error) {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return nil, err
	}
	if err := roles.Authorize(roles.ActionListVenues, role); err != nil {
		return nil, err
	}

	return s.repo.GetByGroupID(ctx, groupID)
}

func (s *VenueService) Update(ctx context.Context, principal roles.Principal, id string, in dto.VenueInput) (*entity.Venue, error) {
	venue, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	group, err := s.groups.Get(ctx, venue.GroupID)
	if err != nil {
		return nil, err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return nil, err
	}
	if err := roles.Authorize(roles.ActionUpdateVenue, role); err != nil {
		return nil, err
	}

	if errs := validator.Venue(in); len(errs) > 0 {
		return nil, apperror.Validation("Bad Request", errs)
	}

	venue.Address = in.Address
	venue.City = in.City
	venue.State = in.State
	venue.Lat = in.Lat
	venue.Lng = in.Lng

	return s.repo.Update(ctx, venue)
}
