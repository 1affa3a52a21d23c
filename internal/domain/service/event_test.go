package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
	"github.com/meetpup/meetpup/internal/domain/roles"
)

func strPtr(s string) *string { return &s }

func validEventInput() dto.EventInput {
	return dto.EventInput{
		VenueID:     strPtr("v1"),
		Name:        "Sunset ridge hike",
		Type:        "In person",
		Capacity:    20,
		Description: strings.Repeat("A lovely hike up the ridge. ", 2),
		StartDate:   "2026-03-02T18:00",
		EndDate:     "2026-03-02T20:00",
	}
}

func eventFixture(t *testing.T) (*EventService, *fakeEventRepo) {
	t.Helper()

	prev := nowFn
	nowFn = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFn = prev })

	groups := newFakeGroupRepo(
		&entity.Group{ID: "g1", Name: "Hikers", OrganizerID: "organizer"},
		&entity.Group{ID: "g2", Name: "Bakers", OrganizerID: "other"},
	)
	events := newFakeEventRepo(&entity.Event{ID: "e1", GroupID: "g1", Name: "Existing hike"})
	venues := newFakeVenueRepo(
		&entity.Venue{ID: "v1", GroupID: "g1"},
		&entity.Venue{ID: "v2", GroupID: "g2"},
	)
	memberships := newFakeMembershipRepo(
		&entity.Membership{GroupID: "g1", UserID: "cohost", Status: entity.MembershipStatusCoHost},
	)
	return NewEventService(events, groups, venues, memberships), events
}

func TestEventCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer creates", func(t *testing.T) {
		svc, _ := eventFixture(t)
		e, err := svc.Create(ctx, roles.Principal{UserID: "organizer"}, "g1", validEventInput())
		require.NoError(t, err)
		assert.Equal(t, "g1", e.GroupID)
		require.NotNil(t, e.VenueID)
		assert.Equal(t, "v1", *e.VenueID)
		assert.Equal(t, time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC), e.StartDate)
	})

	t.Run("co-host may not create events", func(t *testing.T) {
		svc, _ := eventFixture(t)
		_, err := svc.Create(ctx, roles.Principal{UserID: "cohost"}, "g1", validEventInput())
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("missing group is 404 before auth", func(t *testing.T) {
		svc, _ := eventFixture(t)
		_, err := svc.Create(ctx, roles.Principal{}, "nope", validEventInput())
		require.True(t, apperror.IsNotFound(err))
	})

	t.Run("venue must belong to the group", func(t *testing.T) {
		svc, _ := eventFixture(t)
		in := validEventInput()
		in.VenueID = strPtr("v2")
		_, err := svc.Create(ctx, roles.Principal{UserID: "organizer"}, "g1", in)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Equal(t, "Venue does not belong to this group", appErr.Errors["venueId"])
	})

	t.Run("unknown venue is 404", func(t *testing.T) {
		svc, _ := eventFixture(t)
		in := validEventInput()
		in.VenueID = strPtr("v9")
		_, err := svc.Create(ctx, roles.Principal{UserID: "organizer"}, "g1", in)
		require.True(t, apperror.IsNotFound(err))
	})

	t.Run("past start date fails validation", func(t *testing.T) {
		svc, _ := eventFixture(t)
		in := validEventInput()
		in.StartDate = "2026-02-28T18:00"
		_, err := svc.Create(ctx, roles.Principal{UserID: "organizer"}, "g1", in)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "Start date must be in the future", appErr.Errors["startDate"])
	})
}

func TestEventUpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("co-host updates", func(t *testing.T) {
		svc, _ := eventFixture(t)
		e, err := svc.Update(ctx, roles.Principal{UserID: "cohost"}, "e1", validEventInput())
		require.NoError(t, err)
		assert.Equal(t, "Sunset ridge hike", e.Name)
	})

	t.Run("an event that has already begun stays editable", func(t *testing.T) {
		svc, _ := eventFixture(t)
		in := validEventInput()
		in.StartDate = "2026-02-28T18:00"
		in.EndDate = "2026-02-28T20:00"
		e, err := svc.Update(ctx, roles.Principal{UserID: "organizer"}, "e1", in)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 2, 28, 18, 0, 0, 0, time.UTC), e.StartDate)
	})

	t.Run("update still rejects an end before the start", func(t *testing.T) {
		svc, _ := eventFixture(t)
		in := validEventInput()
		in.EndDate = "2026-03-02T17:00"
		_, err := svc.Update(ctx, roles.Principal{UserID: "organizer"}, "e1", in)
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "End date must be after start date", appErr.Errors["endDate"])
	})

	t.Run("member of nothing gets forbidden", func(t *testing.T) {
		svc, _ := eventFixture(t)
		_, err := svc.Update(ctx, roles.Principal{UserID: "stranger"}, "e1", validEventInput())
		appErr := apperror.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("co-host deletes", func(t *testing.T) {
		svc, events := eventFixture(t)
		require.NoError(t, svc.Delete(ctx, roles.Principal{UserID: "cohost"}, "e1"))
		_, err := events.Get(ctx, "e1")
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("missing event is 404", func(t *testing.T) {
		svc, _ := eventFixture(t)
		err := svc.Delete(ctx, roles.Principal{UserID: "organizer"}, "nope")
		require.True(t, apperror.IsNotFound(err))
	})
}

func TestEventGetByGroup(t *testing.T) {
	ctx := context.Background()
	svc, _ := eventFixture(t)

	events, err := svc.GetByGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, events, 1)

	_, err = svc.GetByGroup(ctx, "nope")
	require.True(t, apperror.IsNotFound(err))
}
