package models

import (
	"strings"

	"gorm.io/gorm"
)

// UserRole determines which operations a user may perform.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleViewer  UserRole = "viewer"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleViewer
}

// User is an account that can authenticate against the API.
type User struct {
	DefaultModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	Role         UserRole
	Active       bool
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if u.Role == "" {
		u.Role = RoleViewer
	}

	if !u.Role.Valid() {
		return ErrUserRoleInvalid
	}

	return nil
}
