package entity

import (
	"strings"
	"time"
)

// Role names granted to users. Authorization checks compare against these.
const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleOrganizer = "ORGANIZER"
)

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Principal is the request-scoped identity derived from a validated token.
// It carries the complete role set; authorization depends on all of them.
type Principal struct {
	ID       int64
	Username string
	Email    string
	Roles    []string
}

// HasRole reports whether the principal holds the given role,
// accepting both the bare form and the ROLE_-prefixed form, case-insensitive.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(r, role) || strings.EqualFold(r, "ROLE_"+role) {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the principal holds at least one of the roles.
func (p *Principal) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if p.HasRole(role) {
			return true
		}
	}
	return false
}
