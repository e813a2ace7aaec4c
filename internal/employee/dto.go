package employee

import (
	"github.com/frahmantamala/sistema-extras/internal/core/common/validation"
)

const cpfDigits = 11

type CreateEmployeeDTO struct {
	Name           string  `json:"name"`
	CPF            string  `json:"cpf"`
	RG             string  `json:"rg"`
	Endereco       string  `json:"endereco"`
	Cidade         string  `json:"cidade"`
	Estado         string  `json:"estado"`
	CEP            string  `json:"cep"`
	Telefone       string  `json:"telefone"`
	Email          string  `json:"email"`
	DataNascimento *string `json:"data_nascimento,omitempty"`
	Cargo          string  `json:"cargo"`
	PixKey         string  `json:"pix_key"`
	Banco          string  `json:"banco"`
	CompanyID      *string `json:"company_id,omitempty"`
	Ativo          *bool   `json:"ativo,omitempty"`
}

type UpdateEmployeeDTO struct {
	Name           *string `json:"name,omitempty"`
	CPF            *string `json:"cpf,omitempty"`
	RG             *string `json:"rg,omitempty"`
	Endereco       *string `json:"endereco,omitempty"`
	Cidade         *string `json:"cidade,omitempty"`
	Estado         *string `json:"estado,omitempty"`
	CEP            *string `json:"cep,omitempty"`
	Telefone       *string `json:"telefone,omitempty"`
	Email          *string `json:"email,omitempty"`
	DataNascimento *string `json:"data_nascimento,omitempty"`
	Cargo          *string `json:"cargo,omitempty"`
	PixKey         *string `json:"pix_key,omitempty"`
	Banco          *string `json:"banco,omitempty"`
	CompanyID      *string `json:"company_id,omitempty"`
	Ativo          *bool   `json:"ativo,omitempty"`
}

func (d *CreateEmployeeDTO) Normalize() {
	d.CPF = validation.OnlyDigits(d.CPF)
	d.DataNascimento = emptyToNil(d.DataNascimento)
	d.CompanyID = emptyToNil(d.CompanyID)
}

func (d *UpdateEmployeeDTO) Normalize() {
	if d.CPF != nil {
		cpf := validation.OnlyDigits(*d.CPF)
		d.CPF = &cpf
	}
}

func (d CreateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("cpf", d.CPF).Digits(cpfDigits)
	v.Field("email", d.Email).Email()
	v.Field("data_nascimento", d.DataNascimento).Date()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", d.Name).Required().MaxLength(255)
	}
	v.Field("cpf", d.CPF).Digits(cpfDigits)
	v.Field("email", d.Email).Email()
	v.Field("data_nascimento", d.DataNascimento).Date()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
