package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// rank orders roles so that a higher rank satisfies every lower requirement.
func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	return r.rank() > 0
}

// Satisfies reports whether r meets the required minimum role.
func (r Role) Satisfies(required Role) bool {
	return r.Valid() && r.rank() >= required.rank()
}

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:varchar(16);not null" json:"role"`
	Active       bool      `gorm:"not null" json:"activo"`
}

// UserUpdate carries the optional fields of a user edit; nil fields are left
// untouched.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *Role
	Active       *bool
}
