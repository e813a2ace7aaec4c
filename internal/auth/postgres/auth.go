package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/sistema-extras/internal"
	userDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// Repository is the credential view of the users table.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password": passwordHash, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *Repository) first(ctx context.Context, query string, arg interface{}) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
