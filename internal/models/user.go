// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Role enumerates the access levels a user can hold.
type Role string

const (
	// RoleAdmin grants access to administrative endpoints.
	RoleAdmin Role = "ADMIN"
	// RoleUser is the default role for every new account.
	RoleUser Role = "USER"
)

// User represents an account in the Inkwell application. Email is stored
// lowercased; PasswordHash is nil for accounts created through an OAuth
// provider, which must therefore own at least one Account row.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash *string    `gorm:"column:password_hash" json:"-"`
	Avatar       *string    `json:"avatar,omitempty"`
	Role         Role       `gorm:"type:varchar(10);not null;default:'USER'" json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Profile      *Profile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Accounts     []Account  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Posts        []Post     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Bookmarks    []Bookmark `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
