package auth

import (
	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/core/common/validation"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d ChangePasswordDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("current_password", d.CurrentPassword).Required()
	v.Field("new_password", d.NewPassword).Required().Custom(func(interface{}) *internal.AppError {
		if d.NewPassword == "" {
			return nil
		}
		if d.NewPassword == d.CurrentPassword {
			return internal.NewValidationFieldError("new_password",
				"new_password must differ from current_password", internal.ErrCodeWeakPassword)
		}
		return validation.ValidatePassword("new_password", d.NewPassword)
	})
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
