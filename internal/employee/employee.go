package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/employee"
)

type Employee struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CPF            string    `json:"cpf"`
	RG             string    `json:"rg"`
	Endereco       string    `json:"endereco"`
	Cidade         string    `json:"cidade"`
	Estado         string    `json:"estado"`
	CEP            string    `json:"cep"`
	Telefone       string    `json:"telefone"`
	Email          string    `json:"email"`
	DataNascimento *string   `json:"data_nascimento"`
	Cargo          string    `json:"cargo"`
	PixKey         string    `json:"pix_key"`
	Banco          string    `json:"banco"`
	CompanyID      *string   `json:"company_id"`
	Ativo          bool      `json:"ativo"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:             e.ID,
		Name:           e.Name,
		CPF:            e.CPF,
		RG:             e.RG,
		Endereco:       e.Endereco,
		Cidade:         e.Cidade,
		Estado:         e.Estado,
		CEP:            e.CEP,
		Telefone:       e.Telefone,
		Email:          e.Email,
		DataNascimento: e.DataNascimento,
		Cargo:          e.Cargo,
		PixKey:         e.PixKey,
		Banco:          e.Banco,
		CompanyID:      e.CompanyID,
		Ativo:          e.Ativo,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:             e.ID,
		Name:           e.Name,
		CPF:            e.CPF,
		RG:             e.RG,
		Endereco:       e.Endereco,
		Cidade:         e.Cidade,
		Estado:         e.Estado,
		CEP:            e.CEP,
		Telefone:       e.Telefone,
		Email:          e.Email,
		DataNascimento: e.DataNascimento,
		Cargo:          e.Cargo,
		PixKey:         e.PixKey,
		Banco:          e.Banco,
		CompanyID:      e.CompanyID,
		Ativo:          e.Ativo,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
