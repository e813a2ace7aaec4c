package receipt

import (
	"encoding/base64"
	"fmt"
	"time"

	receiptDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/receipt"
)

const ContentType = "application/pdf"

type Receipt struct {
	ID        string
	ExtraID   string
	PDF       []byte
	Total     float64
	CreatedAt time.Time
}

// DataURL embeds the PDF so clients can open it without a second request.
func (r *Receipt) DataURL() string {
	return "data:" + ContentType + ";base64," + base64.StdEncoding.EncodeToString(r.PDF)
}

func (r *Receipt) Filename() string {
	return fmt.Sprintf("recibo_%s.pdf", r.ExtraID)
}

func ToDataModel(r *Receipt) *receiptDatamodel.Receipt {
	return &receiptDatamodel.Receipt{
		ID:        r.ID,
		ExtraID:   r.ExtraID,
		PDF:       r.PDF,
		Total:     r.Total,
		CreatedAt: r.CreatedAt,
	}
}

func FromDataModel(r *receiptDatamodel.Receipt) *Receipt {
	return &Receipt{
		ID:        r.ID,
		ExtraID:   r.ExtraID,
		PDF:       r.PDF,
		Total:     r.Total,
		CreatedAt: r.CreatedAt,
	}
}
