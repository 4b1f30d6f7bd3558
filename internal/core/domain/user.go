package domain

import (
	"fmt"
	"time"
)

// Role is the coarse permission tier of a user.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleAccountant Role = "Accountant"
	RoleManager    Role = "Manager"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleAccountant, RoleManager}

// Capability names an action gated by role.
type Capability string

const (
	// CapManageUsers covers every mutation of the user collection,
	// registration included.
	CapManageUsers Capability = "manage_users"
	// CapViewAllUsers lets a caller list users other than themselves.
	CapViewAllUsers   Capability = "view_all_users"
	CapManageInvoices Capability = "manage_invoices"
	CapViewDashboard  Capability = "view_dashboard"
)

// ParseRole converts s into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAccountant, RoleManager:
		return true
	default:
		return false
	}
}

// Can reports whether the role grants c.
func (r Role) Can(c Capability) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleAccountant, RoleManager:
		switch c {
		case CapManageInvoices, CapViewDashboard:
			return true
		case CapManageUsers, CapViewAllUsers:
			return false
		}
		return false
	default:
		return false
	}
}

// Capabilities returns the capabilities granted to the role, in a stable order.
func (r Role) Capabilities() []Capability {
	all := []Capability{CapManageUsers, CapViewAllUsers, CapManageInvoices, CapViewDashboard}
	out := make([]Capability, 0, len(all))
	for _, c := range all {
		if r.Can(c) {
			out = append(out, c)
		}
	}
	return out
}

// User models an authenticated actor in the system.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated caller as seen by the core.
type Identity struct {
	UserID   uint
	Username string
	Role     Role
}

func (i Identity) Can(c Capability) bool {
	return i.Role.Can(c)
}
