package http

import (
	"context"
	"net"
	"net/http"
	"strings"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/security"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthMiddleware verifies the bearer token, requires the superadmin role and
// places the resulting Actor (with client IP) on the request context.
type AuthMiddleware struct {
	verifier security.TokenVerifier
}

func NewAuthMiddleware(verifier security.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := m.verifier.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if claims.Role != security.RoleSuperadmin {
			writeJSONError(w, http.StatusForbidden, "superadmin role required")
			return
		}

		actor := domain.Actor{
			ID:        claims.ActorID,
			Name:      claims.Name,
			Email:     claims.Email,
			IPAddress: clientIP(r),
		}
		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the authenticated actor placed by AuthMiddleware.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
