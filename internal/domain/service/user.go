package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
	"github.com/meetpup/meetpup/internal/domain/utils/validator"
	"github.com/meetpup/meetpup/internal/ports/secondary"
	"github.com/meetpup/meetpup/pkg/logger/types"
)

type UserService struct {
	logger *types.Logger
	repo   secondary.UserRepository
	mail   secondary.MailClient
}

func NewUserService(logger *types.Logger, storage secondary.UserRepository, mail secondary.MailClient) *UserService {
	return &UserService{
		logger: logger,
		repo:   storage,
		mail:   mail,
	}
}

func (s *UserService) SignUp(ctx context.Context, in dto.SignUpInput) (*entity.User, error) {
	if errs := validator.SignUp(in); len(errs) > 0 {
		return nil, apperror.Validation("Bad Request", errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal("Failed to hash password", err)
	}

	user, err := s.repo.Create(ctx, &entity.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Username:     in.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	// Welcome mail is best effort and must never fail the signup.
	if s.mail != nil {
		if err := s.mail.SendWelcome(user.Email, user.FirstName); err != nil {
			s.logger.Errorf("failed to send welcome mail to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.repo.GetByID(ctx, id)
}
