package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := r.db.WithContext(ctx).Create(event).Error
	return event, translate(err, "Event", "")
}

func (r *EventRepository) Get(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "Event", "")
	}
	return &event, nil
}

func (r *EventRepository) GetDetail(ctx context.Context, id string) (*dto.EventDetail, error) {
	var event entity.Event
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Venue").
		Preload("Images").
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "Event", "")
	}

	numAttending, err := r.countAttending(ctx, id)
	if err != nil {
		return nil, err
	}

	return toEventDetail(event, numAttending), nil
}

func (r *EventRepository) GetAll(ctx context.Context) ([]dto.EventDetail, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *EventRepository) GetByGroupID(ctx context.Context, groupID string) ([]dto.EventDetail, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("group_id = ?", groupID))
}

func (r *EventRepository) list(ctx context.Context, tx *gorm.DB) ([]dto.EventDetail, error) {
	var events []entity.Event
	if err := tx.Preload("Group").Preload("Venue").Preload("Images").Order("start_date").Find(&events).Error; err != nil {
		return nil, translate(err, "Event", "")
	}

	details := make([]dto.EventDetail, len(events))
	for i, e := range events {
		numAttending, err := r.countAttending(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		details[i] = *toEventDetail(e, numAttending)
	}
	return details, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := r.db.WithContext(ctx).Save(event).Error
	return event, translate(err, "Event", "")
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.Event{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "Event", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Event", "")
	}
	return nil
}

func (r *EventRepository) countAttending(ctx context.Context, eventID string) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entity.Attendance{}).
		Where("event_id = ? AND status = ?", eventID, entity.AttendanceStatusAttending).
		Count(&n).Error
	if err != nil {
		return 0, translate(err, "Event", "")
	}
	return int(n), nil
}

func toEventDetail(e entity.Event, numAttending int) *dto.EventDetail {
	detail := &dto.EventDetail{
		Event:        e,
		NumAttending: numAttending,
		Group:        e.Group,
		Venue:        e.Venue,
	}
	detail.Images = make([]dto.ImageDetail, len(e.Images))
	for i, img := range e.Images {
		detail.Images[i] = dto.ImageDetail{ID: img.ID, URL: img.URL, Preview: img.Preview}
	}
	return detail
}
