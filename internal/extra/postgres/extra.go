package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/core/common/pgerr"
	extraDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/extra"
	"github.com/frahmantamala/sistema-extras/internal/extra"
	"gorm.io/gorm"
)

const detailColumns = `e.*,
	COALESCE(emp.name, 'N/A') AS employee_name,
	COALESCE(c.name, 'N/A') AS company_name,
	COALESCE(u.name, 'N/A') AS user_name`

type ExtraRepository struct {
	db *gorm.DB
}

func NewExtraRepository(db *gorm.DB) extra.RepositoryAPI {
	return &ExtraRepository{db: db}
}

func (r *ExtraRepository) Create(ctx context.Context, e *extraDatamodel.Extra) error {
	return mapWriteError(r.db.WithContext(ctx).Create(e).Error)
}

func (r *ExtraRepository) CreateBatch(ctx context.Context, extras []*extraDatamodel.Extra) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range extras {
			if err := tx.Create(e).Error; err != nil {
				return mapWriteError(err)
			}
		}
		return nil
	})
}

func (r *ExtraRepository) GetByID(ctx context.Context, id string) (*extraDatamodel.Extra, error) {
	var e extraDatamodel.Extra
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrExtraNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExtraRepository) List(ctx context.Context, userID string) ([]*extraDatamodel.Extra, error) {
	var extras []*extraDatamodel.Extra
	q := r.db.WithContext(ctx).Order("data_evento DESC, created_at DESC")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Find(&extras).Error
	return extras, err
}

func (r *ExtraRepository) Update(ctx context.Context, e *extraDatamodel.Extra) error {
	res := r.db.WithContext(ctx).Save(e)
	if res.Error != nil {
		return mapWriteError(res.Error)
	}
	return nil
}

func (r *ExtraRepository) UpdateStatus(ctx context.Context, e *extraDatamodel.Extra, from string) error {
	res := r.db.WithContext(ctx).Model(&extraDatamodel.Extra{}).
		Where("id = ? AND status = ?", e.ID, from).
		Updates(map[string]interface{}{
			"status":       e.Status,
			"aprovado_por": e.AprovadoPor,
			"aprovado_em":  e.AprovadoEm,
			"ciencia_por":  e.CienciaPor,
			"ciencia_em":   e.CienciaEm,
			"updated_at":   e.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// another decision landed first
		return internal.ErrInvalidTransition
	}
	return nil
}

func (r *ExtraRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&extraDatamodel.Extra{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrExtraNotFound
	}
	return nil
}

func (r *ExtraRepository) ListWithDetails(ctx context.Context, filter extra.Filter) ([]*extraDatamodel.ExtraDetail, error) {
	q := r.db.WithContext(ctx).
		Table("extras AS e").
		Select(detailColumns).
		Joins("LEFT JOIN employees emp ON emp.id = e.employee_id").
		Joins("LEFT JOIN companies c ON c.id = e.company_id").
		Joins("LEFT JOIN users u ON u.id = e.user_id")

	from, to := filter.DateRange()
	if from != "" {
		q = q.Where("e.data_evento >= ?", from)
	}
	if to != "" {
		q = q.Where("e.data_evento <= ?", to)
	}
	if filter.Setor != "" {
		q = q.Where("e.setor = ?", filter.Setor)
	}
	if filter.CompanyID != "" {
		q = q.Where("e.company_id = ?", filter.CompanyID)
	}
	if filter.UserID != "" {
		q = q.Where("e.user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("e.status = ?", filter.Status)
	}

	var rows []*extraDatamodel.ExtraDetail
	err := q.Order("e.data_evento DESC, e.created_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *ExtraRepository) Totals(ctx context.Context) (int64, float64, error) {
	var out struct {
		Count int64
		Total float64
	}
	err := r.db.WithContext(ctx).Model(&extraDatamodel.Extra{}).
		Select("COUNT(*) AS count, COALESCE(SUM(valor), 0) AS total").
		Scan(&out).Error
	return out.Count, out.Total, err
}

func mapWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case pgerr.IsForeignKeyViolation(err):
		if strings.Contains(pgerr.Constraint(err), "employee") {
			return internal.ErrEmployeeNotFound.WithCause(err)
		}
		return internal.ErrCompanyNotFound.WithCause(err)
	case pgerr.IsUniqueViolation(err):
		return internal.ErrDuplicate.WithCause(err)
	}
	return err
}
