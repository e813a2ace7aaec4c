package employee

import "time"

type Employee struct {
	ID             string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	Name           string    `gorm:"column:name;not null"`
	CPF            string    `gorm:"column:cpf"`
	RG             string    `gorm:"column:rg"`
	Endereco       string    `gorm:"column:endereco"`
	Cidade         string    `gorm:"column:cidade"`
	Estado         string    `gorm:"column:estado"`
	CEP            string    `gorm:"column:cep"`
	Telefone       string    `gorm:"column:telefone"`
	Email          string    `gorm:"column:email"`
	DataNascimento *string   `gorm:"column:data_nascimento"`
	Cargo          string    `gorm:"column:cargo"`
	PixKey         string    `gorm:"column:pix_key"`
	Banco          string    `gorm:"column:banco"`
	CompanyID      *string   `gorm:"column:company_id;index"`
	Ativo          bool      `gorm:"column:ativo"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
