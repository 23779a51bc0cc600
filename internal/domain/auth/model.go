// Package auth provides authentication and authorization domain logic.
package auth

import (
	"context"
	"strings"

	"inventory/internal/core/apperror"
	"inventory/internal/core/entity"
)

// Role is a user's authorization level.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleStoreManager Role = "storemanager"
	RoleCustomer     Role = "customer"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStoreManager, RoleCustomer:
		return true
	}
	return false
}

// User represents a system user.
type User struct {
	entity.BaseEntity
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	FirstName    string `db:"first_name" json:"firstName"`
	LastName     string `db:"last_name" json:"lastName"`
	Role         Role   `db:"role" json:"role"`
	IsActive     bool   `db:"is_active" json:"isActive"`
}

// NewUser creates a new active user. Email is trimmed and lowercased.
func NewUser(email, passwordHash, firstName, lastName string, role Role) *User {
	if role == "" {
		role = RoleCustomer
	}
	return &User{
		BaseEntity:   entity.NewBaseEntity(),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         role,
		IsActive:     true,
	}
}

// Validate validates user data.
func (u *User) Validate(ctx context.Context) error {
	switch {
	case u.Email == "":
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	case u.FirstName == "":
		return apperror.NewValidation("firstName is required").WithDetail("field", "firstName")
	case u.LastName == "":
		return apperror.NewValidation("lastName is required").WithDetail("field", "lastName")
	case !u.Role.IsValid():
		return apperror.NewValidation("invalid role").WithDetail("field", "role")
	}
	return nil
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Patch lists the fields an administrator may change on a user.
type Patch struct {
	FirstName *string
	LastName  *string
	IsActive  *bool
}

// Apply copies the set fields onto u and returns the columns it changed.
func (p Patch) Apply(u *User) []string {
	var columns []string
	if p.FirstName != nil {
		u.FirstName = strings.TrimSpace(*p.FirstName)
		columns = append(columns, "first_name")
	}
	if p.LastName != nil {
		u.LastName = strings.TrimSpace(*p.LastName)
		columns = append(columns, "last_name")
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
		columns = append(columns, "is_active")
	}
	u.Touch()
	return append(columns, "updated_at")
}

// NormalizeEmail trims and lowercases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Credentials for login.
type Credentials struct {
	Email    string
	Password string
}

// RegisterRequest for user registration. Role defaults to customer.
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      Role
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
