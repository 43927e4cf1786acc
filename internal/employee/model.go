package employee

import (
	"strings"
)

// Role is derived at runtime, never stored: every employee has RoleUser,
// RoleAdmin is added iff the admin flag is set.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Theme is the UI theme preference of an employee.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Employee is a staff member. The email address doubles as the login key.
type Employee struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	FirstName      string `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName       string `gorm:"type:varchar(255);not null" json:"last_name"`
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   string `gorm:"type:varchar(255);not null" json:"-"`
	Admin          bool   `gorm:"not null;default:false" json:"admin"`
	Theme          Theme  `gorm:"type:varchar(10);not null;default:light" json:"theme"`
	PasswordChange bool   `gorm:"not null;default:false" json:"password_change"`
}

// FullName joins first and last name with a single space, the same
// separator and order the UI displays and the request filter searches.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Roles returns the derived role set.
func (e *Employee) Roles() []Role {
	roles := []Role{RoleUser}
	if e.Admin {
		roles = append(roles, RoleAdmin)
	}
	return roles
}

// HasRole reports whether the derived role set contains role.
func (e *Employee) HasRole(role Role) bool {
	for _, r := range e.Roles() {
		if r == role {
			return true
		}
	}
	return false
}
