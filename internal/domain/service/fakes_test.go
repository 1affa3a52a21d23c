package service

import (
	"context"
	"fmt"
	"time"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
)

// In-memory fakes for the secondary ports. They mirror the persistence
// contract: NotFound on a missed lookup, Conflict on a duplicate insert.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, apperror.Conflict("User already exists")
		}
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("User")
}

func (r *fakeUserRepo) GetByCredential(_ context.Context, credential string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == credential || u.Username == credential {
			return u, nil
		}
	}
	return nil, apperror.NotFound("User")
}

type fakeGroupRepo struct {
	groups map[string]*entity.Group
	// adjustments records every AdjustMembers delta per group id.
	adjustments map[string][]int

	// Optional siblings. When set, Delete mirrors the FK cascade and the
	// read paths count events the way the real queries do.
	memberships *fakeMembershipRepo
	events      *fakeEventRepo
	venues      *fakeVenueRepo
	attendance  *fakeAttendanceRepo
	images      *fakeImageRepo
}

func newFakeGroupRepo(groups ...*entity.Group) *fakeGroupRepo {
	r := &fakeGroupRepo{
		groups:      make(map[string]*entity.Group),
		adjustments: make(map[string][]int),
	}
	for _, g := range groups {
		r.groups[g.ID] = g
	}
	return r
}

func (r *fakeGroupRepo) Create(_ context.Context, group *entity.Group) (*entity.Group, error) {
	for _, g := range r.groups {
		if g.Name == group.Name {
			return nil, apperror.Conflict("Group already exists")
		}
	}
	if group.ID == "" {
		group.ID = fmt.Sprintf("group-%d", len(r.groups)+1)
	}
	if group.NumMembers == 0 {
		group.NumMembers = 1
	}
	r.groups[group.ID] = group
	return group, nil
}

func (r *fakeGroupRepo) Get(_ context.Context, id string) (*entity.Group, error) {
	if g, ok := r.groups[id]; ok {
		return g, nil
	}
	return nil, apperror.NotFound("Group")
}

func (r *fakeGroupRepo) GetDetail(ctx context.Context, id string) (*dto.GroupDetail, error) {
	g, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.GroupDetail{Group: *g, NumEvents: r.countEvents(id)}, nil
}

func (r *fakeGroupRepo) GetAll(_ context.Context) ([]dto.GroupDetail, error) {
	out := make([]dto.GroupDetail, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, dto.GroupDetail{Group: *g, NumEvents: r.countEvents(g.ID)})
	}
	return out, nil
}

func (r *fakeGroupRepo) GetByOrganizer(_ context.Context, organizerID string) ([]dto.GroupDetail, error) {
	var out []dto.GroupDetail
	for _, g := range r.groups {
		if g.OrganizerID == organizerID {
			out = append(out, dto.GroupDetail{Group: *g, NumEvents: r.countEvents(g.ID)})
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) countEvents(groupID string) int {
	if r.events == nil {
		return 0
	}
	n := 0
	for _, e := range r.events.events {
		if e.GroupID == groupID {
			n++
		}
	}
	return n
}

func (r *fakeGroupRepo) Update(_ context.Context, group *entity.Group) (*entity.Group, error) {
	if _, ok := r.groups[group.ID]; !ok {
		return nil, apperror.NotFound("Group")
	}
	r.groups[group.ID] = group
	return group, nil
}

func (r *fakeGroupRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.groups[id]; !ok {
		return apperror.NotFound("Group")
	}
	delete(r.groups, id)
	r.cascade(id)
	return nil
}

// cascade mirrors the FK OnDelete behavior: memberships, venues, group images
// and events go with the group; attendances and event images go with their
// event.
func (r *fakeGroupRepo) cascade(groupID string) {
	if r.memberships != nil {
		for key, m := range r.memberships.rows {
			if m.GroupID == groupID {
				delete(r.memberships.rows, key)
			}
		}
	}
	if r.venues != nil {
		for id, v := range r.venues.venues {
			if v.GroupID == groupID {
				delete(r.venues.venues, id)
			}
		}
	}
	if r.images != nil {
		for id, img := range r.images.groupImages {
			if img.GroupID == groupID {
				delete(r.images.groupImages, id)
			}
		}
	}
	if r.events == nil {
		return
	}
	for eventID, e := range r.events.events {
		if e.GroupID != groupID {
			continue
		}
		delete(r.events.events, eventID)
		if r.attendance != nil {
			for key, a := range r.attendance.rows {
				if a.EventID == eventID {
					delete(r.attendance.rows, key)
				}
			}
		}
		if r.images != nil {
			for id, img := range r.images.eventImages {
				if img.EventID == eventID {
					delete(r.images.eventImages, id)
				}
			}
		}
	}
}

func (r *fakeGroupRepo) AdjustMembers(_ context.Context, id string, delta int) error {
	g, ok := r.groups[id]
	if !ok {
		return apperror.NotFound("Group")
	}
	g.NumMembers += delta
	r.adjustments[id] = append(r.adjustments[id], delta)
	return nil
}

func (r *fakeGroupRepo) RecountMembers(_ context.Context) error { return nil }

type fakeMembershipRepo struct {
	rows map[string]*entity.Membership
}

func membershipKey(groupID, userID string) string { return groupID + "/" + userID }

func newFakeMembershipRepo(rows ...*entity.Membership) *fakeMembershipRepo {
	r := &fakeMembershipRepo{rows: make(map[string]*entity.Membership)}
	for _, m := range rows {
		r.rows[membershipKey(m.GroupID, m.UserID)] = m
	}
	return r
}

func (r *fakeMembershipRepo) Create(_ context.Context, m *entity.Membership) (*entity.Membership, error) {
	key := membershipKey(m.GroupID, m.UserID)
	if _, ok := r.rows[key]; ok {
		return nil, apperror.Conflict("Membership has already been requested")
	}
	if m.ID == "" {
		m.ID = fmt.Sprintf("membership-%d", len(r.rows)+1)
	}
	r.rows[key] = m
	return m, nil
}

func (r *fakeMembershipRepo) Get(_ context.Context, groupID, userID string) (*entity.Membership, error) {
	if m, ok := r.rows[membershipKey(groupID, userID)]; ok {
		return m, nil
	}
	return nil, apperror.NotFound("Membership between the user and the group")
}

func (r *fakeMembershipRepo) GetByGroupID(_ context.Context, groupID string) ([]dto.GroupMember, error) {
	var out []dto.GroupMember
	for _, m := range r.rows {
		if m.GroupID == groupID {
			out = append(out, dto.GroupMember{
				UserSummary: dto.UserSummary{ID: m.UserID},
				Status:      m.Status,
				JoinedAt:    m.CreatedAt,
			})
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) Update(_ context.Context, m *entity.Membership) (*entity.Membership, error) {
	key := membershipKey(m.GroupID, m.UserID)
	if _, ok := r.rows[key]; !ok {
		return nil, apperror.NotFound("Membership between the user and the group")
	}
	r.rows[key] = m
	return m, nil
}

func (r *fakeMembershipRepo) Delete(_ context.Context, groupID, userID string) error {
	key := membershipKey(groupID, userID)
	if _, ok := r.rows[key]; !ok {
		return apperror.NotFound("Membership between the user and the group")
	}
	delete(r.rows, key)
	return nil
}

type fakeEventRepo struct {
	events map[string]*entity.Event
}

func newFakeEventRepo(events ...*entity.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: make(map[string]*entity.Event)}
	for _, e := range events {
		r.events[e.ID] = e
	}
	return r
}

func (r *fakeEventRepo) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	if event.ID == "" {
		event.ID = fmt.Sprintf("event-%d", len(r.events)+1)
	}
	r.events[event.ID] = event
	return event, nil
}

func (r *fakeEventRepo) Get(_ context.Context, id string) (*entity.Event, error) {
	if e, ok := r.events[id]; ok {
		return e, nil
	}
	return nil, apperror.NotFound("Event")
}

func (r *fakeEventRepo) GetDetail(ctx context.Context, id string) (*dto.EventDetail, error) {
	e, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.EventDetail{Event: *e}, nil
}

func (r *fakeEventRepo) GetAll(_ context.Context) ([]dto.EventDetail, error) {
	out := make([]dto.EventDetail, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, dto.EventDetail{Event: *e})
	}
	return out, nil
}

func (r *fakeEventRepo) GetByGroupID(_ context.Context, groupID string) ([]dto.EventDetail, error) {
	var out []dto.EventDetail
	for _, e := range r.events {
		if e.GroupID == groupID {
			out = append(out, dto.EventDetail{Event: *e})
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *entity.Event) (*entity.Event, error) {
	if _, ok := r.events[event.ID]; !ok {
		return nil, apperror.NotFound("Event")
	}
	r.events[event.ID] = event
	return event, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return apperror.NotFound("Event")
	}
	delete(r.events, id)
	return nil
}

type fakeVenueRepo struct {
	venues map[string]*entity.Venue
}

func newFakeVenueRepo(venues ...*entity.Venue) *fakeVenueRepo {
	r := &fakeVenueRepo{venues: make(map[string]*entity.Venue)}
	for _, v := range venues {
		r.venues[v.ID] = v
	}
	return r
}

func (r *fakeVenueRepo) Create(_ context.Context, venue *entity.Venue) (*entity.Venue, error) {
	if venue.ID == "" {
		venue.ID = fmt.Sprintf("venue-%d", len(r.venues)+1)
	}
	r.venues[venue.ID] = venue
	return venue, nil
}

func (r *fakeVenueRepo) Get(_ context.Context, id string) (*entity.Venue, error) {
	if v, ok := r.venues[id]; ok {
		return v, nil
	}
	return nil, apperror.NotFound("Venue")
}

func (r *fakeVenueRepo) GetByGroupID(_ context.Context, groupID string) ([]entity.Venue, error) {
	var out []entity.Venue
	for _, v := range r.venues {
		if v.GroupID == groupID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeVenueRepo) Update(_ context.Context, venue *entity.Venue) (*entity.Venue, error) {
	if _, ok := r.venues[venue.ID]; !ok {
		return nil, apperror.NotFound("Venue")
	}
	r.venues[venue.ID] = venue
	return venue, nil
}

type fakeAttendanceRepo struct {
	rows map[string]*entity.Attendance
}

func attendanceKey(eventID, userID string) string { return eventID + "/" + userID }

func newFakeAttendanceRepo(rows ...*entity.Attendance) *fakeAttendanceRepo {
	r := &fakeAttendanceRepo{rows: make(map[string]*entity.Attendance)}
	for _, a := range rows {
		r.rows[attendanceKey(a.EventID, a.UserID)] = a
	}
	return r
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a *entity.Attendance) (*entity.Attendance, error) {
	key := attendanceKey(a.EventID, a.UserID)
	if _, ok := r.rows[key]; ok {
		return nil, apperror.Conflict("Attendance has already been requested")
	}
	if a.ID == "" {
		a.ID = fmt.Sprintf("attendance-%d", len(r.rows)+1)
	}
	r.rows[key] = a
	return a, nil
}

func (r *fakeAttendanceRepo) Get(_ context.Context, eventID, userID string) (*entity.Attendance, error) {
	if a, ok := r.rows[attendanceKey(eventID, userID)]; ok {
		return a, nil
	}
	return nil, apperror.NotFound("Attendance between the user and the event")
}

func (r *fakeAttendanceRepo) GetByEventID(_ context.Context, eventID string) ([]dto.EventAttendee, error) {
	var out []dto.EventAttendee
	for _, a := range r.rows {
		if a.EventID == eventID {
			out = append(out, dto.EventAttendee{
				UserSummary: dto.UserSummary{ID: a.UserID},
				Status:      a.Status,
			})
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, a *entity.Attendance) (*entity.Attendance, error) {
	key := attendanceKey(a.EventID, a.UserID)
	if _, ok := r.rows[key]; !ok {
		return nil, apperror.NotFound("Attendance between the user and the event")
	}
	r.rows[key] = a
	return a, nil
}

func (r *fakeAttendanceRepo) Delete(_ context.Context, eventID, userID string) error {
	key := attendanceKey(eventID, userID)
	if _, ok := r.rows[key]; !ok {
		return apperror.NotFound("Attendance between the user and the event")
	}
	delete(r.rows, key)
	return nil
}

// fakeTokenManager issues predictable tokens of the form "token:<id>:<user>".
type fakeTokenManager struct {
	ttl     time.Duration
	counter int
	valid   map[string][2]string // token -> (userID, tokenID)
}

func newFakeTokenManager() *fakeTokenManager {
	return &fakeTokenManager{ttl: time.Hour, valid: make(map[string][2]string)}
}

func (m *fakeTokenManager) Generate(userID string) (string, string, time.Time, error) {
	m.counter++
	tokenID := fmt.Sprintf("jti-%d", m.counter)
	token := fmt.Sprintf("token:%s:%s", tokenID, userID)
	m.valid[token] = [2]string{userID, tokenID}
	return token, tokenID, time.Now().Add(m.ttl), nil
}

func (m *fakeTokenManager) Validate(token string) (string, string, error) {
	if v, ok := m.valid[token]; ok {
		return v[0], v[1], nil
	}
	return "", "", fmt.Errorf("invalid token")
}

type fakeSessionStore struct {
	live map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{live: make(map[string]string)}
}

func (s *fakeSessionStore) Add(_ context.Context, tokenID, userID string, _ time.Duration) error {
	s.live[tokenID] = userID
	return nil
}

func (s *fakeSessionStore) Exists(_ context.Context, tokenID string) (bool, error) {
	_, ok := s.live[tokenID]
	return ok, nil
}

func (s *fakeSessionStore) Remove(_ context.Context, tokenID string) error {
	delete(s.live, tokenID)
	return nil
}
