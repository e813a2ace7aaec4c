package company

import "time"

type Company struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	Name      string    `gorm:"column:name;not null"`
	CNPJ      string    `gorm:"column:cnpj"`
	Endereco  string    `gorm:"column:endereco"`
	Cidade    string    `gorm:"column:cidade"`
	Estado    string    `gorm:"column:estado"`
	CEP       string    `gorm:"column:cep"`
	Telefone  string    `gorm:"column:telefone"`
	Email     string    `gorm:"column:email"`
	Ativa     bool      `gorm:"column:ativa"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
