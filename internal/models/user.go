package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`
}

// HasRole сравнивает роль пользователя с требуемой.
func (u User) HasRole(role UserRole) bool {
	return u.Role == role
}
