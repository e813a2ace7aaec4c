package extra

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/core/common/validation"
)

type CreateExtraDTO struct {
	EmployeeID  string  `json:"employee_id"`
	CompanyID   string  `json:"company_id"`
	DataEvento  string  `json:"data_evento"`
	HoraEntrada string  `json:"hora_entrada"`
	HoraSaida   string  `json:"hora_saida"`
	Valor       float64 `json:"valor"`
	Setor       string  `json:"setor"`
	Vaga        string  `json:"vaga"`
}

// BatchItemDTO is one date of a multi-date submission.
type BatchItemDTO struct {
	DataEvento  string  `json:"data_evento"`
	HoraEntrada string  `json:"hora_entrada"`
	HoraSaida   string  `json:"hora_saida"`
	Valor       float64 `json:"valor"`
}

type CreateBatchDTO struct {
	EmployeeID string         `json:"employee_id"`
	CompanyID  string         `json:"company_id"`
	Setor      string         `json:"setor"`
	Vaga       string         `json:"vaga"`
	Items      []BatchItemDTO `json:"items"`
}

type UpdateExtraDTO struct {
	EmployeeID  *string  `json:"employee_id,omitempty"`
	CompanyID   *string  `json:"company_id,omitempty"`
	DataEvento  *string  `json:"data_evento,omitempty"`
	HoraEntrada *string  `json:"hora_entrada,omitempty"`
	HoraSaida   *string  `json:"hora_saida,omitempty"`
	Valor       *float64 `json:"valor,omitempty"`
	Setor       *string  `json:"setor,omitempty"`
	Vaga        *string  `json:"vaga,omitempty"`
}

type StatusDTO struct {
	Status string `json:"status"`
}

func (d CreateExtraDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("employee_id", d.EmployeeID).Required()
	v.Field("company_id", d.CompanyID).Required()
	v.Shift("", d.DataEvento, d.HoraEntrada, d.HoraSaida, d.Valor)
	v.Field("setor", d.Setor).MaxLength(255)
	v.Field("vaga", d.Vaga).MaxLength(255)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d CreateBatchDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("employee_id", d.EmployeeID).Required()
	v.Field("company_id", d.CompanyID).Required()
	v.Field("items", len(d.Items)).Custom(func(interface{}) *internal.AppError {
		if len(d.Items) == 0 {
			return internal.NewValidationFieldError("items", "items must not be empty", internal.ErrCodeValidationFailed)
		}
		return nil
	})
	for i, item := range d.Items {
		v.Shift(fmt.Sprintf("items[%d].", i), item.DataEvento, item.HoraEntrada, item.HoraSaida, item.Valor)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateExtraDTO) Validate() error {
	v := validation.NewValidator()
	if d.EmployeeID != nil {
		v.Field("employee_id", d.EmployeeID).Required()
	}
	if d.CompanyID != nil {
		v.Field("company_id", d.CompanyID).Required()
	}
	if d.DataEvento != nil {
		v.Field("data_evento", d.DataEvento).Required().Date()
	}
	if d.HoraEntrada != nil {
		v.Field("hora_entrada", d.HoraEntrada).Required().Clock()
	}
	if d.HoraSaida != nil {
		v.Field("hora_saida", d.HoraSaida).Required().Clock()
	}
	if d.Valor != nil {
		v.Field("valor", validation.RoundValor(*d.Valor)).Positive()
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d StatusDTO) Validate() error {
	if !ValidStatus(d.Status) {
		return internal.NewValidationFieldError("status",
			"status must be one of pendente, ciente, aprovado, rejeitado", internal.ErrCodeInvalidStatus)
	}
	return nil
}

const (
	ReportDaily   = "daily"
	ReportMonthly = "monthly"
	ReportCustom  = "custom"
)

// Filter narrows the detailed listing. Empty fields do not filter.
type Filter struct {
	StartDate  string
	EndDate    string
	Setor      string
	CompanyID  string
	UserID     string
	Status     string
	ReportType string
}

func FilterFromQuery(q url.Values) Filter {
	return Filter{
		StartDate:  strings.TrimSpace(q.Get("start_date")),
		EndDate:    strings.TrimSpace(q.Get("end_date")),
		Setor:      strings.TrimSpace(q.Get("setor")),
		CompanyID:  strings.TrimSpace(q.Get("company_id")),
		UserID:     strings.TrimSpace(q.Get("user_id")),
		Status:     strings.TrimSpace(q.Get("status")),
		ReportType: strings.TrimSpace(q.Get("report_type")),
	}
}

func (f Filter) Validate() error {
	v := validation.NewValidator()
	v.Field("start_date", f.StartDate).Date()
	v.Field("end_date", f.EndDate).Date()
	if f.ReportType != "" {
		v.Field("report_type", f.ReportType).OneOf(ReportDaily, ReportMonthly, ReportCustom)
	}
	if f.Status != "" {
		v.Field("status", f.Status).OneOf(StatusPendente, StatusCiente, StatusAprovado, StatusRejeitado)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// DateRange resolves the report type into an inclusive [from, to] range of
// YYYY-MM-DD strings. Either bound may be empty.
func (f Filter) DateRange() (string, string) {
	switch f.ReportType {
	case ReportDaily:
		return f.StartDate, f.StartDate
	case ReportMonthly:
		start, err := time.Parse(validation.DateLayout, f.StartDate)
		if err != nil {
			return f.StartDate, f.EndDate
		}
		first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return first.Format(validation.DateLayout), last.Format(validation.DateLayout)
	}
	return f.StartDate, f.EndDate
}
