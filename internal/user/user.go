package user

import (
	"time"

	"github.com/frahmantamala/sistema-extras/internal"
	userDatamodel "github.com/frahmantamala/sistema-extras/internal/core/datamodel/user"
)

type User struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	Name                 string    `json:"name"`
	Role                 string    `json:"role"`
	Setor                string    `json:"setor"`
	AuthorizedCompanyIDs []string  `json:"authorized_company_ids"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ToPrincipal strips the credential and returns the request identity.
func (u *User) ToPrincipal() *internal.User {
	ids := make([]string, len(u.AuthorizedCompanyIDs))
	copy(ids, u.AuthorizedCompanyIDs)
	return &internal.User{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 u.Name,
		Role:                 u.Role,
		Setor:                u.Setor,
		AuthorizedCompanyIDs: ids,
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:                   u.ID,
		Email:                u.Email,
		PasswordHash:         u.PasswordHash,
		Name:                 u.Name,
		Role:                 u.Role,
		Setor:                u.Setor,
		AuthorizedCompanyIDs: userDatamodel.StringList(u.AuthorizedCompanyIDs),
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	ids := []string(u.AuthorizedCompanyIDs)
	if ids == nil {
		ids = []string{}
	}
	return &User{
		ID:                   u.ID,
		Email:                u.Email,
		PasswordHash:         u.PasswordHash,
		Name:                 u.Name,
		Role:                 u.Role,
		Setor:                u.Setor,
		AuthorizedCompanyIDs: ids,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}
