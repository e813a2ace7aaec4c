package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/core/common/pgerr"
	employeeDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/employee"
	"github.com/frahmantamala/sistema-extras/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetAll(ctx context.Context, companyID string) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	q := r.db.WithContext(ctx).Order("name ASC")
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	err := q.Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	return mapWriteError(r.db.WithContext(ctx).Create(e).Error)
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employeeDatamodel.Employee) error {
	return mapWriteError(r.db.WithContext(ctx).Save(e).Error)
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&employeeDatamodel.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{}).Count(&n).Error
	return n, err
}

func mapWriteError(err error) error {
	switch {
	case pgerr.IsUniqueViolation(err):
		return internal.ErrDuplicate.WithCause(err)
	case pgerr.IsForeignKeyViolation(err):
		return internal.ErrCompanyNotFound.WithCause(err)
	}
	return err
}
