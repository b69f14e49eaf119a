package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	authdomain "github.com/RealMosam/SEMS/internal/domain/auth"
	"github.com/RealMosam/SEMS/internal/telemetry"
)

type ctxKeyClaims struct{}

// authMiddleware rejects requests without a valid bearer token before any
// handler runs and stores the validated claims in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			s.metrics.TokenValidations.WithLabelValues("missing").Inc()
			unauthorized(w, "authorization token required")
			return
		}

		claims, err := s.deps.Tokens.Validate(token)
		if err != nil {
			s.metrics.TokenValidations.WithLabelValues("invalid").Inc()
			if !errors.Is(err, authdomain.ErrTokenInvalid) {
				telemetry.LogWithTrace(r.Context(), s.logger).ErrorContext(r.Context(), "token validation failed",
					slog.String("error", err.Error()))
			} else {
				telemetry.LogWithTrace(r.Context(), s.logger).DebugContext(r.Context(), "token rejected",
					slog.String("reason", err.Error()))
			}
			unauthorized(w, "invalid or expired token")
			return
		}

		s.metrics.TokenValidations.WithLabelValues("valid").Inc()
		ctx := context.WithValue(r.Context(), ctxKeyClaims{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	writeError(w, http.StatusUnauthorized, message)
}

// ClaimsFromContext returns the claims stored by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*authdomain.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims{}).(*authdomain.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		unauthorized(w, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

func extractBearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
