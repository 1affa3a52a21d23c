package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, membership *entity.Membership) (*entity.Membership, error) {
	err := r.db.WithContext(ctx).Create(membership).Error
	return membership, translate(err, "Membership", "Membership has already been requested")
}

func (r *MembershipRepository) Get(ctx context.Context, groupID, userID string) (*entity.Membership, error) {
	var membership entity.Membership
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&membership).Error
	if err != nil {
		return nil, translate(err, "Membership between the user and the group", "")
	}
	return &membership, nil
}

func (r *MembershipRepository) GetByGroupID(ctx context.Context, groupID string) ([]dto.GroupMember, error) {
	var memberships []entity.Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("group_id = ?", groupID).
		Order("created_at").
		Find(&memberships).Error
	if err != nil {
		return nil, translate(err, "Group", "")
	}

	members := make([]dto.GroupMember, 0, len(memberships))
	for _, m := range memberships {
		member := dto.GroupMember{Status: m.Status, JoinedAt: m.CreatedAt}
		if m.User != nil {
			member.UserSummary = dto.UserSummary{
				ID:        m.User.ID,
				FirstName: m.User.FirstName,
				LastName:  m.User.LastName,
				Username:  m.User.Username,
			}
		}
		members = append(members, member)
	}
	return members, nil
}

func (r *MembershipRepository) Update(ctx context.Context, membership *entity.Membership) (*entity.Membership, error) {
	err := r.db.WithContext(ctx).Save(membership).Error
	return membership, translate(err, "Membership between the user and the group", "")
}

func (r *MembershipRepository) Delete(ctx context.Context, groupID, userID string) error {
	res := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&entity.Membership{})
	if res.Error != nil {
		return translate(res.Error, "Membership between the user and the group", "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Membership between the user and the group", "")
	}
	return nil
}
