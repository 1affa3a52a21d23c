package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/meetpup/meetpup/internal/domain/entity"
)

type VenueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) Create(ctx context.Context, venue *entity.Venue) (*entity.Venue, error) {
	err := r.db.WithContext(ctx).Create(venue).Error
	return venue, translate(err, "Venue", "")
}

func (r *VenueRepository) Get(ctx context.Context, id string) (*entity.Venue, error) {
	var venue entity.Venue
	err := r.db.WithContext(ctx).First(&venue, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "Venue", "")
	}
	return &venue, nil
}

func (r *VenueRepository) GetByGroupID(ctx context.Context, groupID string) ([]entity.Venue, error) {
	var venues []entity.Venue
	err := r.db.WithContext(ctx).Where("group_id = ?", groupID).Order("created_at").Find(&venues).Error
	if err != nil {
		return nil, translate(err, "Venue", "")
	}
	return venues, nil
}

func (r *VenueRepository) Update(ctx context.Context, venue *entity.Venue) (*entity.Venue, error) {
	err := r.db.WithContext(ctx).Save(venue).Error
	return venue, translate(err, "Venue", "")
}
