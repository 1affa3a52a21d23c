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

type MembershipService struct {
	repo   secondary.MembershipRepository
	groups secondary.GroupRepository
	users  secondary.UserRepository
}

func NewMembershipService(
	storage secondary.MembershipRepository,
	groupStorage secondary.GroupRepository,
	userStorage secondary.UserRepository,
) *MembershipService {
	return &MembershipService{
		repo:   storage,
		groups: groupStorage,
		users:  userStorage,
	}
}

// Request creates a pending membership for the principal. The organizer never
// holds a membership row, so their request reads as "already a member".
func (s *MembershipService) Request(ctx context.Context, principal roles.Principal, groupID string) (*entity.Membership, error) {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if principal.Anonymous() {
		return nil, apperror.Unauthenticated("Authentication required")
	}
	if group.OrganizerID == principal.UserID {
		return nil, apperror.Conflict("User is already a member of the group")
	}

	existing, err := membershipOrNil(ctx, s.repo, groupID, principal.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == entity.MembershipStatusPending {
			return nil, apperror.Conflict("Membership has already been requested")
		}
		return nil, apperror.Conflict("User is already a member of the group")
	}

	return s.repo.Create(ctx, &entity.Membership{
		GroupID: groupID,
		UserID:  principal.UserID,
		Status:  entity.MembershipStatusPending,
	})
}

// ChangeStatus moves a member between statuses. Promotion to co-host is
// reserved for the organizer; everything else needs organizer or co-host.
// Transitions are otherwise unconstrained.
func (s *MembershipService) ChangeStatus(ctx context.Context, principal roles.Principal, groupID string, in dto.MembershipStatusInput) (*entity.Membership, error) {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	membership, err := s.repo.Get(ctx, groupID, in.UserID)
	if err != nil {
		return nil, err
	}

	role, err := classify(ctx, s.repo, principal, group)
	if err != nil {
		return nil, err
	}

	target := entity.MembershipStatus(in.Status)
	if target == entity.MembershipStatusCoHost {
		if role != roles.Organizer {
			if role == roles.Anonymous {
				return nil, apperror.Unauthenticated("Authentication required")
			}
			return nil, apperror.Forbidden("Only the organizer may promote a co-host")
		}
	} else if err := roles.Authorize(roles.ActionUpdateMembership, role); err != nil {
		return nil, err
	}

	if errs := validator.MembershipStatus(in.Status); len(errs) > 0 {
		return nil, apperror.Validation("Bad Request", errs)
	}

	wasCounted := countsTowardMembers(membership.Status)
	membership.Status = target

	updated, err := s.repo.Update(ctx, membership)
	if err != nil {
		return nil, err
	}

	if delta := memberDelta(wasCounted, countsTowardMembers(target)); delta != 0 {
		if err := s.groups.AdjustMembers(ctx, groupID, delta); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// Delete removes a membership; allowed for the member themself or the
// organizer.
func (s *MembershipService) Delete(ctx context.Context, principal roles.Principal, groupID, memberID string) error {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return err
	}

	if _, err := s.users.GetByID(ctx, memberID); err != nil {
		return err
	}

	membership, err := s.repo.Get(ctx, groupID, memberID)
	if err != nil {
		return err
	}

	if principal.Anonymous() {
		return apperror.Unauthenticated("Authentication required")
	}
	if principal.UserID != memberID && principal.UserID != group.OrganizerID {
		return apperror.Forbidden("Only the organizer or the member may delete a membership")
	}

	if err := s.repo.Delete(ctx, groupID, memberID); err != nil {
		return err
	}

	if countsTowardMembers(membership.Status) {
		return s.groups.AdjustMembers(ctx, groupID, -1)
	}
	return nil
}

// Roster lists members of a group. Pending memberships are visible only to
// the organizer and co-hosts.
func (s *MembershipService) Roster(ctx context.Context, principal roles.Principal, groupID string) ([]dto.GroupMember, error) {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}

	role, err := classify(ctx, s.repo, principal, group)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.GetByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if roles.Can(roles.ActionViewFullRoster, role) {
		return members, nil
	}

	filtered := make([]dto.GroupMember, 0, len(members))
	for _, m := range members {
		if m.Status != entity.MembershipStatusPending {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// countsTowardMembers reports whether a status contributes to the group's
// denormalized member counter.
func countsTowardMembers(s entity.MembershipStatus) bool {
	return s == entity.MembershipStatusMember || s == entity.MembershipStatusCoHost
}

func memberDelta(was, is bool) int {
	switch {
	case !was && is:
		return 1
	case was && !is:
		return -1
	default:
		return 0
	}
}
