// Package service implements the use cases of the API on top of the secondary
// ports. Authorization runs here: handlers resolve the principal, services
// check existence first (404 before 403), classify the role and consult the
// gate before touching state.
package service

import (
	"context"
	"time"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/entity"
	"github.com/meetpup/meetpup/internal/domain/roles"
	"github.com/meetpup/meetpup/internal/ports/secondary"
)

// nowFn is swapped in tests that exercise time-dependent validation.
var nowFn = time.Now

// classify derives the principal's role for a group, looking up the membership
// row when one could matter. A lookup miss is not an error: it just means the
// principal is an outsider.
func classify(ctx context.Context, memberships secondary.MembershipRepository, p roles.Principal, group *entity.Group) (roles.Role, error) {
	if p.Anonymous() {
		return roles.Anonymous, nil
	}
	if group.OrganizerID == p.UserID {
		return roles.Organizer, nil
	}

	membership, err := membershipOrNil(ctx, memberships, group.ID, p.UserID)
	if err != nil {
		return roles.Outsider, err
	}
	return roles.Classify(p, group, membership), nil
}

func membershipOrNil(ctx context.Context, memberships secondary.MembershipRepository, groupID, userID string) (*entity.Membership, error) {
	membership, err := memberships.Get(ctx, groupID, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return membership, nil
}
