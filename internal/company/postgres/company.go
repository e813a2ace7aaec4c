package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/company"
	"github.com/frahmantamala/sistema-extras/internal/core/common/pgerr"
	companyDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/company"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.RepositoryAPI {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) GetAll(ctx context.Context) ([]*companyDatamodel.Company, error) {
	var companies []*companyDatamodel.Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *CompanyRepository) GetByIDs(ctx context.Context, ids []string) ([]*companyDatamodel.Company, error) {
	var companies []*companyDatamodel.Company
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*companyDatamodel.Company, error) {
	var c companyDatamodel.Company
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, c *companyDatamodel.Company) error {
	return mapWriteError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CompanyRepository) Update(ctx context.Context, c *companyDatamodel.Company) error {
	return mapWriteError(r.db.WithContext(ctx).Save(c).Error)
}

func (r *CompanyRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&companyDatamodel.Company{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&companyDatamodel.Company{}).Count(&n).Error
	return n, err
}

func mapWriteError(err error) error {
	if pgerr.IsUniqueViolation(err) {
		return internal.ErrDuplicate.WithCause(err)
	}
	return err
}
