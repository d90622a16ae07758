package models

import (
	"fmt"
	"time"
)

// Role is the capability tier of a user
type Role string

const (
	RoleAdmin        Role = "admin"
	RolePhysician    Role = "physician"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
)

// Roles lists every valid role
var Roles = []Role{RoleAdmin, RolePhysician, RoleNurse, RoleReceptionist}

// Valid reports whether r is one of the enumerated roles
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole converts a raw string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return role, nil
}

// User represents the users table
// Users are never hard-deleted; Active is toggled instead
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null;size:100" json:"email"`
	PasswordHash string     `gorm:"not null;size:255" json:"-"`
	FullName     string     `gorm:"not null;size:100" json:"full_name"`
	Role         Role       `gorm:"not null;size:20;index" json:"role"`
	Active       bool       `gorm:"not null;default:true" json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
