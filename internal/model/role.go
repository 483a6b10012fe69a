package model

import "strings"

// Canonical role names as stored on users
const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

// Role claims carried in issued tokens (uppercased role names)
const (
	ClaimAdmin    = "ADMIN"
	ClaimManager  = "MANAGER"
	ClaimEmployee = "EMPLOYEE"
)

// Role is one of the fixed system roles. Roles live in memory for the lifetime
// of the process and are never written to the store.
type Role struct {
	ID   int    `json:"role_id"`
	Name string `json:"role_name"`
}

var roles = [...]Role{
	{ID: 1, Name: RoleAdmin},
	{ID: 2, Name: RoleManager},
	{ID: 3, Name: RoleEmployee},
}

// FindRoleByName matches a role name case-insensitively
func FindRoleByName(name string) (Role, bool) {
	for _, r := range roles {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Role{}, false
}

// FindRoleByID returns the role with the given id
func FindRoleByID(id int) (Role, bool) {
	for _, r := range roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// RoleClaim converts a role name into the form embedded in tokens
func RoleClaim(name string) string {
	return strings.ToUpper(name)
}
