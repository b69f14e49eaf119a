package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	authdomain "github.com/RealMosam/SEMS/internal/domain/auth"
	"github.com/RealMosam/SEMS/internal/telemetry"
)

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload credentialsPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	token, err := s.deps.Auth.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, authdomain.ErrUnauthorized) {
			s.metrics.AuthAttempts.WithLabelValues("failure").Inc()
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		s.metrics.AuthAttempts.WithLabelValues("error").Inc()
		s.writeDomainError(w, r, err)
		return
	}

	s.metrics.AuthAttempts.WithLabelValues("success").Inc()
	telemetry.LogWithTrace(r.Context(), s.logger).InfoContext(r.Context(), "token issued",
		slog.String("subject", payload.Username))
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload credentialsPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	if _, err := s.deps.Auth.Register(r.Context(), payload.Username, payload.Password); err != nil {
		switch {
		case errors.Is(err, authdomain.ErrUsernameExists):
			s.metrics.Registrations.WithLabelValues("conflict").Inc()
			writeError(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, authdomain.ErrInvalidInput):
			s.metrics.Registrations.WithLabelValues("invalid").Inc()
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.metrics.Registrations.WithLabelValues("error").Inc()
			s.writeDomainError(w, r, err)
		}
		return
	}

	s.metrics.Registrations.WithLabelValues("created").Inc()
	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
}
