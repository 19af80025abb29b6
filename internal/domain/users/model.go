package users

import (
	"time"

	"cat-rescue/internal/ports/auth"
)

// User es el perfil local de una identidad emitida afuera (dev headers, JWT
// o el servicio de identidad). El ID es el subject del token.
type User struct {
	ID string

	Email     string
	FirstName string
	LastName  string

	// StreetAddress alimenta la región del reporte anonimizado
	// (texto después de la última coma).
	StreetAddress string
	PostalCode    string

	Role     auth.Role
	Enabled  bool
	TenantID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == auth.RoleAdmin
}
