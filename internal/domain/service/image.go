package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/entity"
	"github.com/meetpup/meetpup/internal/domain/roles"
	"github.com/meetpup/meetpup/internal/ports/secondary"
	"github.com/meetpup/meetpup/pkg/logger/types"
)

// ImageService uploads image bytes to blob storage and records the resulting
// URL. The upload and the row insert are two steps against two systems; a
// failed insert removes the uploaded blob so no orphan survives the request.
type ImageService struct {
	logger      *types.Logger
	repo        secondary.ImageRepository
	groups      secondary.GroupRepository
	events      secondary.EventRepository
	memberships secondary.MembershipRepository
	attendances secondary.AttendanceRepository
	blobs       secondary.BlobStorage
}

func NewImageService(
	logger *types.Logger,
	storage secondary.ImageRepository,
	groupStorage secondary.GroupRepository,
	eventStorage secondary.EventRepository,
	membershipStorage secondary.MembershipRepository,
	attendanceStorage secondary.AttendanceRepository,
	blobs secondary.BlobStorage,
) *ImageService {
	return &ImageService{
		logger:      logger,
		repo:        storage,
		groups:      groupStorage,
		events:      eventStorage,
		memberships: membershipStorage,
		attendances: attendanceStorage,
		blobs:       blobs,
	}
}

func (s *ImageService) AddGroupImage(ctx context.Context, principal roles.Principal, groupID string, filename, contentType string, body io.Reader, preview bool) (*entity.GroupImage, error) {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return nil, err
	}
	if err := roles.Authorize(roles.ActionManageImages, role); err != nil {
		return nil, err
	}

	url, err := s.blobs.Put(ctx, imageKey("groups", groupID, filename), contentType, body)
	if err != nil {
		return nil, apperror.Internal("Failed to store image", err)
	}

	image, err := s.repo.CreateGroupImage(ctx, &entity.GroupImage{
		GroupID: groupID,
		URL:     url,
		Preview: preview,
	})
	if err != nil {
		s.deleteBlob(ctx, url)
		return nil, err
	}
	return image, nil
}

// AddEventImage is open to the organizer, co-hosts, and confirmed attendees of
// the event.
func (s *ImageService) AddEventImage(ctx context.Context, principal roles.Principal, eventID string, filename, contentType string, body io.Reader, preview bool) (*entity.EventImage, error) {
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
	if !roles.Can(roles.ActionManageImages, role) {
		if principal.Anonymous() {
			return nil, apperror.Unauthenticated("Authentication required")
		}
		attendance, err := s.attendanceOrNilFor(ctx, eventID, principal.UserID)
		if err != nil {
			return nil, err
		}
		if attendance == nil || attendance.Status != entity.AttendanceStatusAttending {
			return nil, apperror.Forbidden("Only the organizer, a co-host or an attendee may add event images")
		}
	}

	url, err := s.blobs.Put(ctx, imageKey("events", eventID, filename), contentType, body)
	if err != nil {
		return nil, apperror.Internal("Failed to store image", err)
	}

	image, err := s.repo.CreateEventImage(ctx, &entity.EventImage{
		EventID: eventID,
		URL:     url,
		Preview: preview,
	})
	if err != nil {
		s.deleteBlob(ctx, url)
		return nil, err
	}
	return image, nil
}

func (s *ImageService) DeleteGroupImage(ctx context.Context, principal roles.Principal, imageID string) error {
	image, err := s.repo.GetGroupImage(ctx, imageID)
	if err != nil {
		return err
	}
	group, err := s.groups.Get(ctx, image.GroupID)
	if err != nil {
		return err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return err
	}
	if err := roles.Authorize(roles.ActionManageImages, role); err != nil {
		return err
	}

	if err := s.repo.DeleteGroupImage(ctx, imageID); err != nil {
		return err
	}
	s.deleteBlob(ctx, image.URL)
	return nil
}

func (s *ImageService) DeleteEventImage(ctx context.Context, principal roles.Principal, imageID string) error {
	image, err := s.repo.GetEventImage(ctx, imageID)
	if err != nil {
		return err
	}
	event, err := s.events.Get(ctx, image.EventID)
	if err != nil {
		return err
	}
	group, err := s.groups.Get(ctx, event.GroupID)
	if err != nil {
		return err
	}

	role, err := classify(ctx, s.memberships, principal, group)
	if err != nil {
		return err
	}
	if err := roles.Authorize(roles.ActionManageImages, role); err != nil {
		return err
	}

	if err := s.repo.DeleteEventImage(ctx, imageID); err != nil {
		return err
	}
	s.deleteBlob(ctx, image.URL)
	return nil
}

func (s *ImageService) deleteBlob(ctx context.Context, url string) {
	if err := s.blobs.Delete(ctx, url); err != nil {
		s.logger.Errorf("failed to delete blob %s: %v", url, err)
	}
}

func (s *ImageService) attendanceOrNilFor(ctx context.Context, eventID, userID string) (*entity.Attendance, error) {
	attendance, err := s.attendances.Get(ctx, eventID, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return attendance, nil
}

func imageKey(kind, parentID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", kind, parentID, uuid.New().String(), ext)
}
