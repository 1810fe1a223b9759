package model

import "fmt"

// Role is the closed set of account roles. Roles are mutually exclusive;
// an account holds exactly one.
type Role string

const (
	RoleClient  Role = "CLIENT"
	RoleSupport Role = "SUPPORT"
	RoleAdmin   Role = "ADMIN"
)

// Roles lists every defined role.
var Roles = []Role{RoleClient, RoleSupport, RoleAdmin}

// ParseRole validates a wire value against the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleSupport, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Valid reports whether the role is one of the defined roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Label returns the display name used by the original product UI.
func (r Role) Label() string {
	switch r {
	case RoleClient:
		return "Cliente"
	case RoleSupport:
		return "Soporte"
	case RoleAdmin:
		return "Administrador"
	}
	return string(r)
}
