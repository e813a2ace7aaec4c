package receipt

import (
	"time"

	"github.com/frahmantamala/sistema-extras/internal/core/common/validation"
)

type GenerateDTO struct {
	ExtraID string `json:"extra_id"`
}

func (d GenerateDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("extra_id", d.ExtraID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ReceiptResponse struct {
	ExtraID   string    `json:"extra_id"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	PDFURL    string    `json:"pdf_url"`
}

func NewReceiptResponse(r *Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ExtraID:   r.ExtraID,
		Total:     r.Total,
		CreatedAt: r.CreatedAt,
		PDFURL:    r.DataURL(),
	}
}
