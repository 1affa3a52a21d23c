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

type GroupService struct {
	repo        secondary.GroupRepository
	memberships secondary.MembershipRepository
}

func NewGroupService(storage secondary.GroupRepository, membershipStorage secondary.MembershipRepository) *GroupService {
	return &GroupService{
		repo:        storage,
		memberships: membershipStorage,
	}
}

func (s *GroupService) Create(ctx context.Context, principal roles.Principal, in dto.GroupInput) (*entity.Group, error) {
	if principal.Anonymous() {
		return nil, apperror.Unauthenticated("Authentication required")
	}
	if errs := validator.Group(in); len(errs) > 0 {
		return nil, apperror.Validation("Bad Request", errs)
	}

	return s.repo.Create(ctx, &entity.Group{
		Name:        in.Name,
		About:       in.About,
		Type:        entity.GroupType(in.Type),
		Private:     *in.Private,
		City:        in.City,
		State:       in.State,
		OrganizerID: principal.UserID,
	})
}

func (s *GroupService) Get(ctx context.Context, id string) (*dto.GroupDetail, error) {
	return s.repo.GetDetail(ctx, id)
}

func (s *GroupService) GetAll(ctx context.Context) ([]dto.GroupDetail, error) {
	return s.repo.GetAll(ctx)
}

func (s *GroupService) GetOrganized(ctx context.Context, principal roles.Principal) ([]dto.GroupDetail, error) {
	if principal.Anonymous() {
		return nil, apperror.Unauthenticated("Authentication required")
	}
	return s.repo.GetByOrganizer(ctx, principal.UserID)
}

func (s *GroupService) Update(ctx context.Context, principal roles.Principal, id string, in dto.GroupInput) (*entity.Group, error) {
	group, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return nil, err
	}
	if err := roles.Authorize(roles.ActionUpdateGroup, role); err != nil {
		return nil, err
	}

	if errs := validator.Group(in); len(errs) > 0 {
		return nil, apperror.Validation("Bad Request", errs)
	}

	group.Name = in.Name
	group.About = in.About
	group.Type = entity.GroupType(in.Type)
	group.Private = *in.Private
	group.City = in.City
	group.State = in.State

	return s.repo.Update(ctx, group)
}

// Delete removes the group and, through the persistence layer's cascade, its
// events, venues, memberships and images.
func (s *GroupService) Delete(ctx context.Context, principal roles.Principal, id string) error {
	group, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return err
	}
	if err := roles.Authorize(roles.ActionDeleteGroup, role); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
