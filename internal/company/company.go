package company

import (
	"time"

	companyDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/company"
)

type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	Endereco  string    `json:"endereco"`
	Cidade    string    `json:"cidade"`
	Estado    string    `json:"estado"`
	CEP       string    `json:"cep"`
	Telefone  string    `json:"telefone"`
	Email     string    `json:"email"`
	Ativa     bool      `json:"ativa"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToDataModel(c *Company) *companyDatamodel.Company {
	return &companyDatamodel.Company{
		ID:        c.ID,
		Name:      c.Name,
		CNPJ:      c.CNPJ,
		Endereco:  c.Endereco,
		Cidade:    c.Cidade,
		Estado:    c.Estado,
		CEP:       c.CEP,
		Telefone:  c.Telefone,
		Email:     c.Email,
		Ativa:     c.Ativa,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(c *companyDatamodel.Company) *Company {
	return &Company{
		ID:        c.ID,
		Name:      c.Name,
		CNPJ:      c.CNPJ,
		Endereco:  c.Endereco,
		Cidade:    c.Cidade,
		Estado:    c.Estado,
		CEP:       c.CEP,
		Telefone:  c.Telefone,
		Email:     c.Email,
		Ativa:     c.Ativa,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
