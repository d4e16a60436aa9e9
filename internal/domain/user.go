package domain

import "time"

// Role is the access level carried by a user and their tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// User is an account able to open tickets. Records are immutable after registration.
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:256;not null"`
	Role         Role   `gorm:"size:20;not null;default:user"`
	CreatedAt    time.Time
}

// TableName pins the table name used by the store.
func (User) TableName() string {
	return "users"
}
