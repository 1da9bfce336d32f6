package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/purgedigital/agency-controller-api/internal/usecases/sessioning"
	"github.com/purgedigital/agency-controller-api/pkg/apiErrors"
)

type contextKey string

const (
	ContextKeySession contextKey = "session"
)

// AuthMiddleware valida o token de sessão e injeta a sessão resolvida no
// contexto da requisição. O login e o healthcheck são as únicas rotas
// públicas.
func AuthMiddleware(sessionService sessioning.Sessioner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthcheck" ||
				(r.URL.Path == "/v1/session" && r.Method == http.MethodPost) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingToken, "Authorization header is required", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrMissingToken, "Bearer token is required", nil)
				return
			}

			session, err := sessionService.Resolve(tokenString)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Invalid token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext recupera a sessão injetada pelo AuthMiddleware
func SessionFromContext(ctx context.Context) (*sessioning.Session, bool) {
	session, ok := ctx.Value(ContextKeySession).(*sessioning.Session)
	return session, ok
}
