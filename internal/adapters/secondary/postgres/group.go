package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	err := r.db.WithContext(ctx).Create(group).Error
	return group, translate(err, "Group", "A group with that name already exists")
}

func (r *GroupRepository) Get(ctx context.Context, id string) (*entity.Group, error) {
	var group entity.Group
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "Group", "")
	}
	return &group, nil
}

func (r *GroupRepository) GetDetail(ctx context.Context, id string) (*dto.GroupDetail, error) {
	var group entity.Group
	err := r.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Images").
		First(&group, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "Group", "")
	}

	var numEvents int64
	if err := r.db.WithContext(ctx).Model(&entity.Event{}).Where("group_id = ?", id).Count(&numEvents).Error; err != nil {
		return nil, translate(err, "Group", "")
	}

	return toGroupDetail(group, int(numEvents)), nil
}

func (r *GroupRepository) GetAll(ctx context.Context) ([]dto.GroupDetail, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *GroupRepository) GetByOrganizer(ctx context.Context, organizerID string) ([]dto.GroupDetail, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("organizer_id = ?", organizerID))
}

func (r *GroupRepository) list(ctx context.Context, tx *gorm.DB) ([]dto.GroupDetail, error) {
	var groups []entity.Group
	if err := tx.Preload("Organizer").Preload("Images").Order("created_at").Find(&groups).Error; err != nil {
		return nil, translate(err, "Group", "")
	}

	counts, err := r.eventCounts(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]dto.GroupDetail, len(groups))
	for i, g := range groups {
		details[i] = *toGroupDetail(g, counts[g.ID])
	}
	return details, nil
}

func (r *GroupRepository) eventCounts(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		GroupID string
		N       int
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Event{}).
		Select("group_id, COUNT(*) AS n").
		Group("group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "Group", "")
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.GroupID] = row.N
	}
	return counts, nil
}

func (r *GroupRepository) Update(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	err := r.db.WithContext(ctx).Save(group).Error
	return group, translate(err, "Group", "A group with that name already exists")
}

// Delete removes the group; foreign keys cascade to events, venues,
// memberships and images.
func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&entity.Group{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "Group", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Group", "")
	}
	return nil
}

func (r *GroupRepository) AdjustMembers(ctx context.Context, id string, delta int) error {
	err := r.db.WithContext(ctx).
		Model(&entity.Group{}).
		Where("id = ?", id).
		UpdateColumn("num_members", gorm.Expr("num_members + ?", delta)).Error
	return translate(err, "Group", "")
}

// RecountMembers rebuilds num_members for every group: the organizer plus
// memberships with status member or co-host.
func (r *GroupRepository) RecountMembers(ctx context.Context) error {
	err := r.db.WithContext(ctx).Exec(`
		UPDATE groups g SET num_members = 1 + (
			SELECT COUNT(*) FROM memberships m
			WHERE m.group_id = g.id AND m.status IN ('member', 'co-host')
		)`).Error
	return translate(err, "Group", "")
}

func toGroupDetail(g entity.Group, numEvents int) *dto.GroupDetail {
	detail := &dto.GroupDetail{
		Group:     g,
		NumEvents: numEvents,
	}
	if g.Organizer != nil {
		detail.Organizer = dto.UserSummary{
			ID:        g.Organizer.ID,
			FirstName: g.Organizer.FirstName,
			LastName:  g.Organizer.LastName,
			Username:  g.Organizer.Username,
		}
	}
	detail.Images = make([]dto.ImageDetail, len(g.Images))
	for i, img := range g.Images {
		detail.Images[i] = dto.ImageDetail{ID: img.ID, URL: img.URL, Preview: img.Preview}
	}
	return detail
}
