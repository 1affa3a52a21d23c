package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
	"github.com/meetpup/meetpup/internal/domain/roles"
)

func membershipFixture() (*MembershipService, *fakeGroupRepo, *fakeMembershipRepo) {
	groups := newFakeGroupRepo(&entity.Group{ID: "g1", Name: "Hikers", OrganizerID: "organizer", NumMembers: 2})
	memberships := newFakeMembershipRepo(
		&entity.Membership{ID: "m1", GroupID: "g1", UserID: "member", Status: entity.MembershipStatusMember},
		&entity.Membership{ID: "m2", GroupID: "g1", UserID: "cohost", Status: entity.MembershipStatusCoHost},
		&entity.Membership{ID: "m3", GroupID: "g1", UserID: "applicant", Status: entity.MembershipStatusPending},
	)
	users := newFakeUserRepo(
		&entity.User{ID: "organizer"},
		&entity.User{ID: "member"},
		&entity.User{ID: "cohost"},
		&entity.User{ID: "applicant"},
		&entity.User{ID: "stranger"},
	)
	return NewMembershipService(memberships, groups, users), groups, memberships
}

func TestMembershipRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending membership", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		m, err := svc.Request(ctx, roles.Principal{UserID: "stranger"}, "g1")
		require.NoError(t, err)
		assert.Equal(t, entity.MembershipStatusPending, m.Status)
		assert.Equal(t, "stranger", m.UserID)
	})

	t.Run("missing group reads as 404 before auth", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		_, err := svc.Request(ctx, roles.Principal{}, "nope")
		require.True(t, apperror.IsNotFound(err))
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		_, err := svc.Request(ctx, roles.Principal{}, "g1")
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.KindUnauthenticated, appErr.Kind)
	})

	t.Run("organizer already counts as a member", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		_, err := svc.Request(ctx, roles.Principal{UserID: "organizer"}, "g1")
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.KindConflict, appErr.Kind)
		assert.Equal(t, "User is already a member of the group", appErr.Message)
	})

	t.Run("pending request cannot be repeated", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		_, err := svc.Request(ctx, roles.Principal{UserID: "applicant"}, "g1")
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.KindConflict, appErr.Kind)
		assert.Equal(t, "Membership has already been requested", appErr.Message)
	})

	t.Run("existing member cannot re-request", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		_, err := svc.Request(ctx, roles.Principal{UserID: "member"}, "g1")
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "User is already a member of the group", appErr.Message)
	})
}

func TestMembershipChangeStatus(t *testing.T) {
	ctx := context.Background()
	organizer := roles.Principal{UserID: "organizer"}
	cohost := roles.Principal{UserID: "cohost"}

	t.Run("organizer approves a pending member and the counter grows", func(t *testing.T) {
		svc, groups, _ := membershipFixture()
		m, err := svc.ChangeStatus(ctx, organizer, "g1", dto.MembershipStatusInput{UserID: "applicant", Status: "member"})
		require.NoError(t, err)
		assert.Equal(t, entity.MembershipStatusMember, m.Status)
		assert.Equal(t, []int{1}, groups.adjustments["g1"])
	})

	t.Run("co-host approves a pending member", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		m, err := svc.ChangeStatus(ctx, cohost, "g1", dto.MembershipStatusInput{UserID: "applicant", Status: "member"})
		require.NoError(t, err)
		assert.Equal(t, entity.MembershipStatusMember, m.Status)
	})

	t.Run("only the organizer promotes to co-host", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		_, err := svc.ChangeStatus(ctx, cohost, "g1", dto.MembershipStatusInput{UserID: "member", Status: "co-host"})
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)

		m, err := svc.ChangeStatus(ctx, organizer, "g1", dto.MembershipStatusInput{UserID: "member", Status: "co-host"})
		require.NoError(t, err)
		assert.Equal(t, entity.MembershipStatusCoHost, m.Status)
	})

	t.Run("member cannot change statuses", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		_, err := svc.ChangeStatus(ctx, roles.Principal{UserID: "member"}, "g1", dto.MembershipStatusInput{UserID: "applicant", Status: "member"})
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("deactivating a member shrinks the counter", func(t *testing.T) {
		svc, groups, _ := membershipFixture()
		_, err := svc.ChangeStatus(ctx, organizer, "g1", dto.MembershipStatusInput{UserID: "member", Status: "inactive"})
		require.NoError(t, err)
		assert.Equal(t, []int{-1}, groups.adjustments["g1"])
	})

	t.Run("member to co-host keeps the counter unchanged", func(t *testing.T) {
		svc, groups, _ := membershipFixture()
		_, err := svc.ChangeStatus(ctx, organizer, "g1", dto.MembershipStatusInput{UserID: "member", Status: "co-host"})
		require.NoError(t, err)
		assert.Empty(t, groups.adjustments["g1"])
	})

	t.Run("unknown target user is 404", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		_, err := svc.ChangeStatus(ctx, organizer, "g1", dto.MembershipStatusInput{UserID: "ghost", Status: "member"})
		require.True(t, apperror.IsNotFound(err))
	})

	t.Run("target without membership row is 404", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		_, err := svc.ChangeStatus(ctx, organizer, "g1", dto.MembershipStatusInput{UserID: "stranger", Status: "member"})
		require.True(t, apperror.IsNotFound(err))
	})

	t.Run("bogus status is a validation error", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		_, err := svc.ChangeStatus(ctx, organizer, "g1", dto.MembershipStatusInput{UserID: "member", Status: "banned"})
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Contains(t, appErr.Errors, "status")
	})
}

func TestMembershipDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("member deletes their own membership and the counter shrinks", func(t *testing.T) {
		svc, groups, memberships := membershipFixture()
		err := svc.Delete(ctx, roles.Principal{UserID: "member"}, "g1", "member")
		require.NoError(t, err)
		assert.Equal(t, []int{-1}, groups.adjustments["g1"])
		_, err = memberships.Get(ctx, "g1", "member")
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("organizer deletes someone else's membership", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		require.NoError(t, svc.Delete(ctx, roles.Principal{UserID: "organizer"}, "g1", "member"))
	})

	t.Run("deleting a pending membership leaves the counter alone", func(t *testing.T) {
		svc, groups, _ := membershipFixture()
		require.NoError(t, svc.Delete(ctx, roles.Principal{UserID: "applicant"}, "g1", "applicant"))
		assert.Empty(t, groups.adjustments["g1"])
	})

	t.Run("co-host cannot delete another member", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		err := svc.Delete(ctx, roles.Principal{UserID: "cohost"}, "g1", "member")
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})
}

func TestMembershipRoster(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer sees pending members", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		members, err := svc.Roster(ctx, roles.Principal{UserID: "organizer"}, "g1")
		require.NoError(t, err)
		assert.Len(t, members, 3)
	})

	t.Run("co-host sees pending members", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		members, err := svc.Roster(ctx, roles.Principal{UserID: "cohost"}, "g1")
		require.NoError(t, err)
		assert.Len(t, members, 3)
	})

	t.Run("everyone else sees pending filtered out", func(t *testing.T) {
		svc, _, _ := membershipFixture()
		for _, p := range []roles.Principal{{}, {UserID: "member"}, {UserID: "stranger"}} {
			members, err := svc.Roster(ctx, p, "g1")
			require.NoError(t, err)
			assert.Len(t, members, 2)
			for _, m := range members {
				assert.NotEqual(t, entity.MembershipStatusPending, m.Status)
			}
		}
	})
}
