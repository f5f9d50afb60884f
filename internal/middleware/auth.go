package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/timetrack/timetrack-go/internal/crypto"
	"github.com/timetrack/timetrack-go/internal/model"
)

type contextKey string

const principalKey contextKey = "principal"

// UserResolver looks up a user record by username. Satisfied by
// *repository.UserRepository.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// Auth returns middleware that validates a Bearer token from the
// Authorization header and resolves its subject to a stored user. A
// token whose subject has been deleted since issuance is rejected the
// same way as an invalid token.
func Auth(secret string, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				unauthorized(w, "invalid authorization format")
				return
			}

			username, err := crypto.ValidateToken(token, secret)
			if err != nil {
				unauthorized(w, "could not validate credentials")
				return
			}

			user, err := users.GetByUsername(r.Context(), username)
			if err != nil {
				unauthorized(w, "could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext extracts the authenticated user from the request
// context.
func PrincipalFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(principalKey).(*model.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
