package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/sistema-extras/internal"
	userDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// Service is the main auth service with dependencies
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	accessTTL      time.Duration
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen *JWTTokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		accessTTL:      tokenGen.AccessTokenTTL,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Login validates credentials and returns tokens
func (s *Service) Login(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			s.logger.Warn("login failed: unknown email", "email", email)
			return AuthTokens{}, internal.ErrInvalidCredentials
		}
		return AuthTokens{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: wrong password", "user_id", u.ID)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	tokens, err := s.issue(u)
	if err != nil {
		return AuthTokens{}, err
	}
	s.logger.Info("user logged in", "user_id", u.ID, "role", u.Role)
	return tokens, nil
}

// Refresh validates a refresh token and rotates the pair. The user row is
// read again so a deleted account cannot keep refreshing.
func (s *Service) Refresh(ctx context.Context, dto RefreshTokenDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	claims, err := s.tokenGenerator.ValidateRefreshToken(dto.RefreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return AuthTokens{}, internal.ErrInvalidToken
		}
		return AuthTokens{}, err
	}

	return s.issue(u)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateAccessToken(tokenString)
}

// Authenticate resolves an access token into the current principal.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*internal.User, error) {
	claims, err := s.tokenGenerator.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, err
	}
	return toPrincipal(u), nil
}

func (s *Service) ChangePassword(ctx context.Context, principal *internal.User, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.userRepo.GetByID(ctx, principal.ID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.CurrentPassword)); err != nil {
		return internal.NewValidationFieldError("current_password", "current password is incorrect", internal.ErrCodeInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		s.logger.Error("failed to update password", "user_id", u.ID, "error", err)
		return err
	}

	s.logger.Info("password changed", "user_id", u.ID)
	return nil
}

func (s *Service) issue(u *userDatamodel.User) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(u.ID, u.Email, u.Role)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

func toPrincipal(u *userDatamodel.User) *internal.User {
	ids := []string(u.AuthorizedCompanyIDs)
	if ids == nil {
		ids = []string{}
	}
	return &internal.User{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 u.Name,
		Role:                 internal.NormalizeRole(u.Role),
		Setor:                u.Setor,
		AuthorizedCompanyIDs: ids,
	}
}
