package receipt

import "time"

type Receipt struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	ExtraID   string    `gorm:"column:extra_id;uniqueIndex;not null"`
	PDF       []byte    `gorm:"column:pdf;not null"`
	Total     float64   `gorm:"column:total;type:numeric(10,2);not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Receipt) TableName() string {
	return "recibos"
}

// Source is everything a receipt prints, read in one join.
type Source struct {
	ExtraID        string     `gorm:"column:extra_id"`
	DataEvento     string     `gorm:"column:data_evento"`
	HoraEntrada    string     `gorm:"column:hora_entrada"`
	HoraSaida      string     `gorm:"column:hora_saida"`
	Valor          float64    `gorm:"column:valor"`
	Setor          string     `gorm:"column:setor"`
	Vaga           string     `gorm:"column:vaga"`
	Status         string     `gorm:"column:status"`
	AprovadoEm     *time.Time `gorm:"column:aprovado_em"`
	CienciaEm      *time.Time `gorm:"column:ciencia_em"`
	CompanyName    string     `gorm:"column:company_name"`
	EmployeeName   string     `gorm:"column:employee_name"`
	CPF            string     `gorm:"column:cpf"`
	PixKey         string     `gorm:"column:pix_key"`
	Banco          string     `gorm:"column:banco"`
	ApproverName   *string    `gorm:"column:approver_name"`
	AcknowledgedBy *string    `gorm:"column:acknowledged_by"`
}
