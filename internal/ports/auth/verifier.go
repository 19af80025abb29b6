package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
// La emisión de tokens vive fuera de este servicio.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
