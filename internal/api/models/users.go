package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a closed set. Unknown values are rejected at the boundary.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName   string    `gorm:"size:150" json:"first_name"`
	LastName    string    `gorm:"size:150" json:"last_name"`
	Bio         string    `gorm:"type:text" json:"bio"`
	Role        Role      `gorm:"type:varchar(16);default:'user';not null" json:"role"`
	IsSuperuser bool      `gorm:"default:false;not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

// IsAdmin: superusers have admin capability regardless of role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

func (User) TableName() string {
	return "users"
}
