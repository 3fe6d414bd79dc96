package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskvault/taskvault/internal/apperr"
	"github.com/taskvault/taskvault/internal/models"
)

// IdentityKey is the context key the bearer guard stores the authenticated
// subject under.
const IdentityKey = contextKey("identity")

// Authenticator validates a raw bearer token: blacklist, signature/expiry,
// and subject existence.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// authenticated identity to the request context.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			apperr.Write(w, r, apperr.Unauthorized(apperr.CodeTokenMissing, "missing or malformed authorization header"))
			return
		}

		identity, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetIdentity extracts the authenticated identity from the context.
// Returns nil if the request did not pass the bearer guard.
func GetIdentity(ctx context.Context) *models.Identity {
	if identity, ok := ctx.Value(IdentityKey).(*models.Identity); ok {
		return identity
	}
	return nil
}
