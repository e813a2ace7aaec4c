package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/core/common/pgerr"
	userDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/user"
	"github.com/frahmantamala/sistema-extras/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.WithContext(ctx).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	return mapError(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepository) Update(ctx context.Context, u *userDatamodel.User) error {
	res := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"password":               u.PasswordHash,
		"name":                   u.Name,
		"role":                   u.Role,
		"setor":                  u.Setor,
		"authorized_company_ids": u.AuthorizedCompanyIDs,
		"updated_at":             u.UpdatedAt,
	})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, email string) error {
	res := r.db.WithContext(ctx).Where("email = ?", email).Delete(&userDatamodel.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return internal.ErrUserNotFound
	case pgerr.IsUniqueViolation(err):
		return internal.ErrUserExists.WithCause(err)
	}
	return err
}
