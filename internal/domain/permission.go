package domain

import (
	"fmt"
	"slices"
	"strings"
)

type Permission string

const (
	PermissionAdmin            Permission = "ADMIN"
	PermissionUser             Permission = "USER"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

var allPermissions = []Permission{
	PermissionAdmin,
	PermissionUser,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

func AllPermissions() []Permission {
	return slices.Clone(allPermissions)
}

func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.ToUpper(strings.TrimSpace(s)))
	if !slices.Contains(allPermissions, p) {
		return "", fmt.Errorf("unknown permission %q: %w", s, ErrValidation)
	}
	return p, nil
}

func (p Permission) String() string { return string(p) }

// UnmarshalText keeps stored and decoded permission sets inside the closed enumeration.
func (p *Permission) UnmarshalText(b []byte) error {
	parsed, err := ParsePermission(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Permission) MarshalText() ([]byte, error) {
	return []byte(p), nil
}

func DefaultPermissions() []Permission {
	return []Permission{PermissionUser}
}

// NormalizePermissions deduplicates while keeping the first-seen order.
func NormalizePermissions(perms []Permission) ([]Permission, error) {
	if len(perms) == 0 {
		return nil, fmt.Errorf("permission set cannot be empty: %w", ErrValidation)
	}
	out := make([]Permission, 0, len(perms))
	for _, p := range perms {
		if !slices.Contains(allPermissions, p) {
			return nil, fmt.Errorf("unknown permission %q: %w", string(p), ErrValidation)
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func HasAny(held []Permission, anyOf ...Permission) bool {
	for _, p := range anyOf {
		if slices.Contains(held, p) {
			return true
		}
	}
	return false
}
