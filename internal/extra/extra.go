package extra

import (
	"time"

	extraDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/extra"
)

const (
	StatusPendente  = "pendente"
	StatusCiente    = "ciente"
	StatusAprovado  = "aprovado"
	StatusRejeitado = "rejeitado"
)

// transitions lists the statuses reachable from each status. Terminal
// statuses have no entry.
var transitions = map[string][]string{
	StatusPendente: {StatusCiente, StatusAprovado, StatusRejeitado},
	StatusCiente:   {StatusAprovado, StatusRejeitado},
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPendente, StatusCiente, StatusAprovado, StatusRejeitado:
		return true
	}
	return false
}

type Extra struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	EmployeeID  string     `json:"employee_id"`
	CompanyID   string     `json:"company_id"`
	DataEvento  string     `json:"data_evento"`
	HoraEntrada string     `json:"hora_entrada"`
	HoraSaida   string     `json:"hora_saida"`
	Valor       float64    `json:"valor"`
	Setor       string     `json:"setor"`
	Vaga        string     `json:"vaga"`
	Status      string     `json:"status"`
	AprovadoPor *string    `json:"aprovado_por"`
	AprovadoEm  *time.Time `json:"aprovado_em"`
	CienciaPor  *string    `json:"ciencia_por"`
	CienciaEm   *time.Time `json:"ciencia_em"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ExtraDetail is the reporting view of an extra.
type ExtraDetail struct {
	Extra
	EmployeeName string `json:"employee_name"`
	CompanyName  string `json:"company_name"`
	UserName     string `json:"user_name"`
}

func (e *Extra) CanTransitionTo(status string) bool {
	for _, next := range transitions[e.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// ApplyStatus moves the extra to status and stamps who did it.
func (e *Extra) ApplyStatus(status, by string, now time.Time) {
	e.Status = status
	switch status {
	case StatusCiente:
		e.CienciaPor = &by
		e.CienciaEm = &now
	case StatusAprovado:
		e.AprovadoPor = &by
		e.AprovadoEm = &now
	}
	e.UpdatedAt = now
}

// Reset sends the extra back for review after an edit.
func (e *Extra) Reset(now time.Time) {
	e.Status = StatusPendente
	e.AprovadoPor = nil
	e.AprovadoEm = nil
	e.CienciaPor = nil
	e.CienciaEm = nil
	e.UpdatedAt = now
}

// ReceiptEligible reports whether a receipt may be issued.
func (e *Extra) ReceiptEligible() bool {
	return e.Status == StatusAprovado || e.Status == StatusCiente
}

func ToDataModel(e *Extra) *extraDatamodel.Extra {
	return &extraDatamodel.Extra{
		ID:          e.ID,
		UserID:      e.UserID,
		EmployeeID:  e.EmployeeID,
		CompanyID:   e.CompanyID,
		DataEvento:  e.DataEvento,
		HoraEntrada: e.HoraEntrada,
		HoraSaida:   e.HoraSaida,
		Valor:       e.Valor,
		Setor:       e.Setor,
		Vaga:        e.Vaga,
		Status:      e.Status,
		AprovadoPor: e.AprovadoPor,
		AprovadoEm:  e.AprovadoEm,
		CienciaPor:  e.CienciaPor,
		CienciaEm:   e.CienciaEm,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *extraDatamodel.Extra) *Extra {
	return &Extra{
		ID:          e.ID,
		UserID:      e.UserID,
		EmployeeID:  e.EmployeeID,
		CompanyID:   e.CompanyID,
		DataEvento:  e.DataEvento,
		HoraEntrada: e.HoraEntrada,
		HoraSaida:   e.HoraSaida,
		Valor:       e.Valor,
		Setor:       e.Setor,
		Vaga:        e.Vaga,
		Status:      e.Status,
		AprovadoPor: e.AprovadoPor,
		AprovadoEm:  e.AprovadoEm,
		CienciaPor:  e.CienciaPor,
		CienciaEm:   e.CienciaEm,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func DetailFromDataModel(d *extraDatamodel.ExtraDetail) *ExtraDetail {
	return &ExtraDetail{
		Extra:        *FromDataModel(&d.Extra),
		EmployeeName: d.EmployeeName,
		CompanyName:  d.CompanyName,
		UserName:     d.UserName,
	}
}
