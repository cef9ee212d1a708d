package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jbiddulph/localseo/internal/usecases/authenticating"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// publicPaths são rotas acessíveis sem token: login, registro, healthcheck,
// webhook do Stripe (validado por assinatura) e o gatilho externo de cron
// (validado por segredo via query string).
var publicPaths = map[string]bool{
	"/v1/login":           true,
	"/v1/register":        true,
	"/healthcheck":        true,
	"/v1/billing/webhook": true,
	"/v1/cron/track":      true,
}

func isPublicPath(r *http.Request) bool {
	if publicPaths[r.URL.Path] {
		return true
	}

	// Relatórios compartilháveis são públicos por construção: o slug opaco é a
	// credencial de acesso.
	if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/reports/") {
		return true
	}

	return false
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Bearer token is required", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
