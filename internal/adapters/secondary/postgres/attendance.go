package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(ctx context.Context, attendance *entity.Attendance) (*entity.Attendance, error) {
	err := r.db.WithContext(ctx).Create(attendance).Error
	return attendance, translate(err, "Attendance", "Attendance has already been requested")
}

func (r *AttendanceRepository) Get(ctx context.Context, eventID, userID string) (*entity.Attendance, error) {
	var attendance entity.Attendance
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&attendance).Error
	if err != nil {
		return nil, translate(err, "Attendance between the user and the event", "")
	}
	return &attendance, nil
}

func (r *AttendanceRepository) GetByEventID(ctx context.Context, eventID string) ([]dto.EventAttendee, error) {
	var attendances []entity.Attendance
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at").
		Find(&attendances).Error
	if err != nil {
		return nil, translate(err, "Event", "")
	}

	attendees := make([]dto.EventAttendee, 0, len(attendances))
	for _, a := range attendances {
		attendee := dto.EventAttendee{Status: a.Status}
		if a.User != nil {
			attendee.UserSummary = dto.UserSummary{
				ID:        a.User.ID,
				FirstName: a.User.FirstName,
				LastName:  a.User.LastName,
				Username:  a.User.Username,
			}
		}
		attendees = append(attendees, attendee)
	}
	return attendees, nil
}

func (r *AttendanceRepository) Update(ctx context.Context, attendance *entity.Attendance) (*entity.Attendance, error) {
	err := r.db.WithContext(ctx).Save(attendance).Error
	return attendance, translate(err, "Attendance between the user and the event", "")
}

func (r *AttendanceRepository) Delete(ctx context.Context, eventID, userID string) error {
	res := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&entity.Attendance{})
	if res.Error != nil {
		return translate(res.Error, "Attendance between the user and the event", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Attendance between the user and the event", "")
	}
	return nil
}
