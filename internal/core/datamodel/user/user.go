package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	ID                   string     `gorm:"column:id;primaryKey;type:varchar(64)"`
	Email                string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash         string     `gorm:"column:password;not null"`
	Name                 string     `gorm:"column:name;not null"`
	Role                 string     `gorm:"column:role;not null"`
	Setor                string     `gorm:"column:setor"`
	AuthorizedCompanyIDs StringList `gorm:"column:authorized_company_ids;type:jsonb"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// StringList is stored as a JSON array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode string list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}
