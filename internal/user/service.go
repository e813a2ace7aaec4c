package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/sistema-extras/internal"
	userDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Update(ctx context.Context, u *userDatamodel.User) error
	Delete(ctx context.Context, email string) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}

	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, email string) (*User, error) {
	row, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateUser(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := NormalizeEmail(dto.Email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		s.logger.Warn("user already exists", "email", email)
		return nil, internal.ErrUserExists
	} else if !errors.Is(err, internal.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	ids := dto.AuthorizedCompanyIDs
	if ids == nil {
		ids = []string{}
	}
	now := time.Now().UTC()
	u := &User{
		ID:                   uuid.NewString(),
		Email:                email,
		PasswordHash:         hash,
		Name:                 dto.Name,
		Role:                 internal.NormalizeRole(dto.Role),
		Setor:                dto.Setor,
		AuthorizedCompanyIDs: ids,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, ToDataModel(u)); err != nil {
		s.logger.Error("failed to create user", "email", email, "error", err)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *Service) UpdateUser(ctx context.Context, email string, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	u := FromDataModel(row)

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Role != nil {
		u.Role = internal.NormalizeRole(*dto.Role)
	}
	if dto.Setor != nil {
		u.Setor = *dto.Setor
	}
	if dto.AuthorizedCompanyIDs != nil {
		u.AuthorizedCompanyIDs = append([]string{}, (*dto.AuthorizedCompanyIDs)...)
	}
	if dto.Password != nil {
		hash, err := s.HashPassword(*dto.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, ToDataModel(u)); err != nil {
		s.logger.Error("failed to update user", "user_id", u.ID, "error", err)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", u.ID)
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if err := s.repo.Delete(ctx, email); err != nil {
		if !errors.Is(err, internal.ErrUserNotFound) {
			s.logger.Error("failed to delete user", "email", email, "error", err)
		}
		return err
	}
	s.logger.Info("user deleted", "email", email)
	return nil
}

// HashPassword hashes with the configured bcrypt cost.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
