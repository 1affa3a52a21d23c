package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/meetpup/meetpup/internal/domain/entity"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := r.db.WithContext(ctx).Create(user).Error
	return user, translate(err, "User", "User already exists")
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "User", "")
	}
	return &user, nil
}

// GetByCredential matches the login credential against email or username.
// Emails are stored lowercased, so lowering the credential makes the email
// match case-insensitive while usernames stay exact.
func (r *UserRepository) GetByCredential(ctx context.Context, credential string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", strings.ToLower(credential), credential).
		First(&user).Error
	if err != nil {
		return nil, translate(err, "User", "")
	}
	return &user, nil
}
