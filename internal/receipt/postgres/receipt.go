package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/sistema-extras/internal"
	receiptDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/receipt"
	"github.com/frahmantamala/sistema-extras/internal/receipt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const sourceQuery = `SELECT
	e.id AS extra_id,
	e.data_evento,
	e.hora_entrada,
	e.hora_saida,
	e.valor,
	COALESCE(e.setor, '') AS setor,
	COALESCE(e.vaga, '') AS vaga,
	e.status,
	e.aprovado_em,
	e.ciencia_em,
	COALESCE(c.name, '') AS company_name,
	COALESCE(emp.name, '') AS employee_name,
	COALESCE(emp.cpf, '') AS cpf,
	COALESCE(emp.pix_key, '') AS pix_key,
	COALESCE(emp.banco, '') AS banco,
	ap.name AS approver_name,
	ci.name AS acknowledged_by
FROM extras e
LEFT JOIN employees emp ON emp.id = e.employee_id
LEFT JOIN companies c ON c.id = e.company_id
LEFT JOIN users ap ON ap.id = e.aprovado_por
LEFT JOIN users ci ON ci.id = e.ciencia_por
WHERE e.id = ?`

const missingQuery = `SELECT e.id
FROM extras e
LEFT JOIN recibos r ON r.extra_id = e.id
WHERE e.status IN ('aprovado', 'ciente') AND r.id IS NULL
ORDER BY e.data_evento`

// eligibleQuery is a no-op update that takes the extra's row lock and only
// matches while the extra can still carry a receipt.
const eligibleQuery = `UPDATE extras SET status = status
WHERE id = ? AND status IN ('aprovado', 'ciente')`

type ReceiptRepository struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) receipt.RepositoryAPI {
	return &ReceiptRepository{db: db}
}

func (r *ReceiptRepository) LoadSource(ctx context.Context, extraID string) (*receiptDatamodel.Source, error) {
	var src receiptDatamodel.Source
	res := r.db.WithContext(ctx).Raw(sourceQuery, extraID).Scan(&src)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrExtraNotFound
	}
	return &src, nil
}

// Upsert keeps one receipt per extra, replacing the document in place. It
// returns ErrReceiptNotReady when the extra left aprovado/ciente after the
// receipt was rendered. A reset racing with the insert waits on the row
// lock, so its invalidation always runs after the receipt is stored.
func (r *ReceiptRepository) Upsert(ctx context.Context, rec *receiptDatamodel.Receipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(eligibleQuery, rec.ExtraID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrReceiptNotReady
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "extra_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"pdf", "total", "created_at"}),
		}).Create(rec).Error
	})
}

func (r *ReceiptRepository) GetByExtraID(ctx context.Context, extraID string) (*receiptDatamodel.Receipt, error) {
	var rec receiptDatamodel.Receipt
	if err := r.db.WithContext(ctx).Where("extra_id = ?", extraID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrReceiptNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ReceiptRepository) Delete(ctx context.Context, extraID string) error {
	res := r.db.WithContext(ctx).Where("extra_id = ?", extraID).Delete(&receiptDatamodel.Receipt{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrReceiptNotFound
	}
	return nil
}

func (r *ReceiptRepository) ListMissing(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Raw(missingQuery).Scan(&ids).Error
	return ids, err
}
