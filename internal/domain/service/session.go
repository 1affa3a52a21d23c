package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/meetpup/meetpup/internal/domain/apperror"
	"github.com/meetpup/meetpup/internal/domain/dto"
	"github.com/meetpup/meetpup/internal/domain/entity"
	"github.com/meetpup/meetpup/internal/domain/roles"
	"github.com/meetpup/meetpup/internal/domain/utils/validator"
	"github.com/meetpup/meetpup/internal/ports/secondary"
	"github.com/meetpup/meetpup/pkg/logger/types"
)

// SessionService issues, revokes and resolves session tokens. Tokens are
// signed JWTs whose ids are registered in the session store; a token that
// verifies but is not registered counts as revoked.
type SessionService struct {
	logger   *types.Logger
	users    secondary.UserRepository
	tokens   secondary.TokenManager
	sessions secondary.SessionStore
}

func NewSessionService(
	logger *types.Logger,
	userStorage secondary.UserRepository,
	tokens secondary.TokenManager,
	sessions secondary.SessionStore,
) *SessionService {
	return &SessionService{
		logger:   logger,
		users:    userStorage,
		tokens:   tokens,
		sessions: sessions,
	}
}

func (s *SessionService) LogIn(ctx context.Context, in dto.LoginInput) (*entity.User, string, error) {
	if errs := validator.Login(in); len(errs) > 0 {
		return nil, "", apperror.Validation("Bad Request", errs)
	}

	user, err := s.users.GetByCredential(ctx, in.Credential)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, "", apperror.Unauthenticated("Invalid credentials")
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, "", apperror.Unauthenticated("Invalid credentials")
	}

	token, tokenID, expiresAt, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", apperror.Internal("Failed to issue session token", err)
	}

	if err := s.sessions.Add(ctx, tokenID, user.ID, expiresAt.Sub(nowFn())); err != nil {
		return nil, "", apperror.Internal("Failed to register session", err)
	}

	s.logger.Debugf("session opened for user %s", user.ID)

	return user, token, nil
}

func (s *SessionService) LogOut(ctx context.Context, token string) error {
	_, tokenID, err := s.tokens.Validate(token)
	if err != nil {
		// Nothing to revoke; logout of a dead token still succeeds.
		return nil
	}
	return s.sessions.Remove(ctx, tokenID)
}

// Resolve never fails: every defect in the credential degrades to the
// anonymous principal and asks the transport to clear the stored cookie.
func (s *SessionService) Resolve(ctx context.Context, token string) (roles.Principal, bool) {
	if token == "" {
		return roles.Principal{}, false
	}

	userID, tokenID, err := s.tokens.Validate(token)
	if err != nil {
		return roles.Principal{}, true
	}

	live, err := s.sessions.Exists(ctx, tokenID)
	if err != nil {
		s.logger.Errorf("session store lookup failed: %v", err)
		return roles.Principal{}, true
	}
	if !live {
		return roles.Principal{}, true
	}

	// A valid token whose user is gone degrades to anonymous as well.
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return roles.Principal{}, true
	}

	return roles.Principal{UserID: userID}, false
}

func (s *SessionService) Current(ctx context.Context, principal roles.Principal) (*entity.User, error) {
	if principal.Anonymous() {
		return nil, nil
	}
	return s.users.GetByID(ctx, principal.UserID)
}
