package auth

import "strings"

// Role replica users.Role sin importar el dominio (ports no depende de domain).
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func ParseRole(s string) Role {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleUser
	}
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
	Role     Role
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
