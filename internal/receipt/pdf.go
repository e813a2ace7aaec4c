package receipt

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/frahmantamala/sistema-extras/internal/core/common/validation"
	receiptDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/receipt"
	"github.com/go-pdf/fpdf"
)

const (
	brDateLayout = "02/01/2006"
	marginLeft   = 14.0
	marginRight  = 196.0
	valueColumn  = 150.0
)

type Renderer interface {
	Render(src *receiptDatamodel.Source) ([]byte, error)
}

// PDFRenderer draws the fixed single-page receipt.
type PDFRenderer struct {
	approverName string
	now          func() time.Time
}

func NewPDFRenderer(approverName string) *PDFRenderer {
	if strings.TrimSpace(approverName) == "" {
		approverName = "Gestor"
	}
	return &PDFRenderer{approverName: approverName, now: time.Now}
}

func (r *PDFRenderer) Render(src *receiptDatamodel.Source) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Recibo de Pagamento de Extra", true)
	pdf.SetCreator("sistema-extras", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(x, y float64, s string) {
		pdf.Text(x, y, tr(s))
	}
	rightText := func(x, y float64, s string) {
		pdf.Text(x-pdf.GetStringWidth(tr(s)), y, tr(s))
	}

	pageWidth, _ := pdf.GetPageSize()
	y := 18.0

	pdf.SetFont("Helvetica", "B", 16)
	title := "Recibo de Pagamento de Extra"
	text((pageWidth-pdf.GetStringWidth(tr(title)))/2, y, title)
	y += 10

	pdf.SetFont("Helvetica", "", 11)
	text(marginLeft, y, "Empresa: "+orNA(src.CompanyName))
	y += 6
	text(marginLeft, y, "Setor: "+orNA(src.Setor))
	y += 6
	text(marginLeft, y, "Atração/Vaga: "+orNA(src.Vaga))
	y += 8

	text(marginLeft, y, "Funcionário: "+orNA(src.EmployeeName))
	y += 6
	text(marginLeft, y, "CPF: "+orNA(src.CPF))
	y += 6
	if src.PixKey != "" {
		text(marginLeft, y, "PIX: "+src.PixKey)
		y += 6
	}
	if src.Banco != "" {
		text(marginLeft, y, "Banco: "+src.Banco)
		y += 8
	}

	pdf.Line(marginLeft, y, marginRight, y)
	y += 6

	text(marginLeft, y, "Data")
	text(60, y, "Entrada")
	text(90, y, "Saída")
	rightText(valueColumn, y, "Valor (R$)")
	y += 4
	pdf.Line(marginLeft, y, marginRight, y)
	y += 6

	text(marginLeft, y, FormatDate(src.DataEvento))
	text(60, y, orDash(src.HoraEntrada))
	text(90, y, orDash(src.HoraSaida))
	rightText(valueColumn, y, FormatBRL(src.Valor))
	y += 7

	pdf.Line(marginLeft, y, marginRight, y)
	y += 8

	pdf.SetFont("Helvetica", "B", 12)
	text(marginLeft, y, "TOTAL: "+FormatBRL(src.Valor))
	y += 10

	pdf.SetFont("Helvetica", "", 10)
	approver := r.approverName
	if src.ApproverName != nil && *src.ApproverName != "" {
		approver = *src.ApproverName
	}
	approvedAt := r.now()
	if src.AprovadoEm != nil {
		approvedAt = *src.AprovadoEm
	}
	text(marginLeft, y, fmt.Sprintf("Aprovado por: %s em %s", approver, approvedAt.Format(brDateLayout)))
	y += 6
	if src.AcknowledgedBy != nil && *src.AcknowledgedBy != "" {
		acknowledgedAt := "-"
		if src.CienciaEm != nil {
			acknowledgedAt = src.CienciaEm.Format(brDateLayout)
		}
		text(marginLeft, y, fmt.Sprintf("Ciência por: %s em %s", *src.AcknowledgedBy, acknowledgedAt))
		y += 8
	}

	y += 20
	text(marginLeft, y, "___________________________________")
	y += 6
	text(marginLeft, y, "Assinatura do Gestor")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatBRL renders a value as Brazilian currency, e.g. R$ 1.234,56.
func FormatBRL(v float64) string {
	cents := int64(math.Round(math.Abs(v) * 100))
	digits := fmt.Sprintf("%d", cents/100)

	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}

	sign := ""
	if v < 0 && cents > 0 {
		sign = "-"
	}
	return fmt.Sprintf("R$ %s%s,%02d", sign, grouped.String(), cents%100)
}

// FormatDate turns YYYY-MM-DD into dd/mm/yyyy.
func FormatDate(s string) string {
	if s == "" {
		return "-"
	}
	t, err := time.Parse(validation.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format(brDateLayout)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
