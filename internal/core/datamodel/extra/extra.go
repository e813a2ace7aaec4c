package extra

import "time"

type Extra struct {
	ID          string     `gorm:"column:id;primaryKey;type:varchar(64)"`
	UserID      string     `gorm:"column:user_id;not null;index"`
	EmployeeID  string     `gorm:"column:employee_id;not null;index"`
	CompanyID   string     `gorm:"column:company_id;not null;index"`
	DataEvento  string     `gorm:"column:data_evento;not null"`
	HoraEntrada string     `gorm:"column:hora_entrada;not null"`
	HoraSaida   string     `gorm:"column:hora_saida;not null"`
	Valor       float64    `gorm:"column:valor;type:numeric(10,2);not null"`
	Setor       string     `gorm:"column:setor"`
	Vaga        string     `gorm:"column:vaga"`
	Status      string     `gorm:"column:status;not null"`
	AprovadoPor *string    `gorm:"column:aprovado_por"`
	AprovadoEm  *time.Time `gorm:"column:aprovado_em"`
	CienciaPor  *string    `gorm:"column:ciencia_por"`
	CienciaEm   *time.Time `gorm:"column:ciencia_em"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Extra) TableName() string {
	return "extras"
}

// ExtraDetail is an extra joined with the display names of its relations.
type ExtraDetail struct {
	Extra
	EmployeeName string `gorm:"column:employee_name"`
	CompanyName  string `gorm:"column:company_name"`
	UserName     string `gorm:"column:user_name"`
}
