package user

import (
	"strings"

	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/core/common/validation"
)

type CreateUserDTO struct {
	Email                string   `json:"email"`
	Password             string   `json:"password"`
	Name                 string   `json:"name"`
	Role                 string   `json:"role"`
	Setor                string   `json:"setor"`
	AuthorizedCompanyIDs []string `json:"authorized_company_ids"`
}

// UpdateUserDTO merges into the stored user; nil fields are left alone.
type UpdateUserDTO struct {
	Password             *string   `json:"password,omitempty"`
	Name                 *string   `json:"name,omitempty"`
	Role                 *string   `json:"role,omitempty"`
	Setor                *string   `json:"setor,omitempty"`
	AuthorizedCompanyIDs *[]string `json:"authorized_company_ids,omitempty"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func roleValidator(value interface{}) *internal.AppError {
	var role string
	switch v := value.(type) {
	case string:
		role = v
	case *string:
		if v == nil {
			return nil
		}
		role = *v
	}
	if internal.NormalizeRole(role) == "" {
		return internal.NewValidationFieldError("role", "role must be one of admin, gestor, lançador", internal.ErrCodeInvalidRole)
	}
	return nil
}

func (d CreateUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email().MaxLength(255)
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("role", d.Role).Required().Custom(roleValidator)
	v.Field("password", d.Password).Required().Custom(func(value interface{}) *internal.AppError {
		if d.Password == "" {
			return nil
		}
		return validation.ValidatePassword("password", d.Password)
	})
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d UpdateUserDTO) Validate() error {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", d.Name).Required().MaxLength(255)
	}
	if d.Role != nil {
		v.Field("role", d.Role).Custom(roleValidator)
	}
	if d.Password != nil {
		v.Field("password", *d.Password).Custom(func(value interface{}) *internal.AppError {
			return validation.ValidatePassword("password", *d.Password)
		})
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
