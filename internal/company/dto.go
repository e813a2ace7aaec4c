package company

import (
	"github.com/frahmantamala/sistema-extras/internal/core/common/validation"
)

const cnpjDigits = 14

type CreateCompanyDTO struct {
	Name     string `json:"name"`
	CNPJ     string `json:"cnpj"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	Estado   string `json:"estado"`
	CEP      string `json:"cep"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
	Ativa    *bool  `json:"ativa,omitempty"`
}

type UpdateCompanyDTO struct {
	Name     *string `json:"name,omitempty"`
	CNPJ     *string `json:"cnpj,omitempty"`
	Endereco *string `json:"endereco,omitempty"`
	Cidade   *string `json:"cidade,omitempty"`
	Estado   *string `json:"estado,omitempty"`
	CEP      *string `json:"cep,omitempty"`
	Telefone *string `json:"telefone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Ativa    *bool   `json:"ativa,omitempty"`
}

// Normalize strips punctuation from the CNPJ before validation.
func (d *CreateCompanyDTO) Normalize() {
	d.CNPJ = validation.OnlyDigits(d.CNPJ)
}

func (d *UpdateCompanyDTO) Normalize() {
	if d.CNPJ != nil {
		cnpj := validation.OnlyDigits(*d.CNPJ)
		d.CNPJ = &cnpj
	}
}

func (d CreateCompanyDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("cnpj", d.CNPJ).Digits(cnpjDigits)
	v.Field("email", d.Email).Email()
	v.Field("estado", d.Estado).MaxLength(2)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateCompanyDTO) Validate() error {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", d.Name).Required().MaxLength(255)
	}
	v.Field("cnpj", d.CNPJ).Digits(cnpjDigits)
	v.Field("email", d.Email).Email()
	v.Field("estado", d.Estado).MaxLength(2)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
