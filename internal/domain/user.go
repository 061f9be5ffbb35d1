package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Permission is a named capability checked by protected routes.
type Permission string

const (
	PermBooksRead   Permission = "books:read"
	PermBooksWrite  Permission = "books:write"
	PermBooksDelete Permission = "books:delete"
	PermBooksExport Permission = "books:export"
)

// rolePermissions is the single source of truth for authorisation.
var rolePermissions = map[Role][]Permission{
	RoleUser: {
		PermBooksRead,
		PermBooksWrite,
	},
	RoleAdmin: {
		PermBooksRead,
		PermBooksWrite,
		PermBooksDelete,
		PermBooksExport,
	},
}

// Valid reports whether the role is known.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// HasPermission returns true if the role grants perm.
func HasPermission(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// User represents an authenticated user of the system.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Can reports whether the user's role grants perm.
func (u *User) Can(perm Permission) bool {
	if u == nil {
		return false
	}
	return HasPermission(u.Role, perm)
}
