package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PermissionMap is the role's opaque capability map, stored as JSONB.
// Keys are "resource:action" strings ("sales:create", "purchase_orders:approve").
type PermissionMap map[string]bool

func (m PermissionMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *PermissionMap) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*m = PermissionMap{}
		return nil
	default:
		return errors.New("permission map: unsupported source type")
	}
	return json.Unmarshal(data, m)
}

type Role struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string        `gorm:"uniqueIndex;not null"`
	Permissions PermissionMap `gorm:"type:jsonb;not null;default:'{}'"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FullName     string
	Active       bool       `gorm:"not null;default:true"`
	Superuser    bool       `gorm:"not null;default:false"`
	RoleID       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Role *Role `gorm:"foreignKey:RoleID"`
}

// Can reports whether the user holds a permission. Superusers hold all.
func (u *User) Can(perm string) bool {
	if u.Superuser {
		return true
	}
	if u.Role == nil {
		return false
	}
	return u.Role.Permissions[perm]
}
