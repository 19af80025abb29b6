package apitokens

import "time"

const tokenPrefix = "health_"

// Token habilita a una organización externa a leer la vista anonimizada.
type Token struct {
	ID           string
	Token        string
	Organization string
	Active       bool
	CreatedAt    time.Time
	ExpiresAt    *time.Time // nil = no vence
}

// IsValid: activo y no vencido a la hora now.
func (t Token) IsValid(now time.Time) bool {
	if !t.Active {
		return false
	}
	return t.ExpiresAt == nil || now.Before(*t.ExpiresAt)
}
