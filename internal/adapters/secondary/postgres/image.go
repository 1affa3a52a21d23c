package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/meetpup/meetpup/internal/domain/entity"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// CreateGroupImage inserts the image row; when it is flagged as the preview,
// the previous preview is demoted in the same transaction so at most one
// preview exists per group.
func (r *ImageRepository) CreateGroupImage(ctx context.Context, image *entity.GroupImage) (*entity.GroupImage, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if image.Preview {
			if err := tx.Model(&entity.GroupImage{}).
				Where("group_id = ? AND preview", image.GroupID).
				UpdateColumn("preview", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(image).Error
	})
	return image, translate(err, "Group Image", "")
}

func (r *ImageRepository) CreateEventImage(ctx context.Context, image *entity.EventImage) (*entity.EventImage, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if image.Preview {
			if err := tx.Model(&entity.EventImage{}).
				Where("event_id = ? AND preview", image.EventID).
				UpdateColumn("preview", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(image).Error
	})
	return image, translate(err, "Event Image", "")
}

func (r *ImageRepository) GetGroupImage(ctx context.Context, id string) (*entity.GroupImage, error) {
	var image entity.GroupImage
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "Group Image", "")
	}
	return &image, nil
}

func (r *ImageRepository) GetEventImage(ctx context.Context, id string) (*entity.EventImage, error) {
	var image entity.EventImage
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "Event Image", "")
	}
	return &image, nil
}

func (r *ImageRepository) DeleteGroupImage(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.GroupImage{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "Group Image", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Group Image", "")
	}
	return nil
}

func (r *ImageRepository) DeleteEventImage(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.EventImage{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "Event Image", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Event Image", "")
	}
	return nil
}
