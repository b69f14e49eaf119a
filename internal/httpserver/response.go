package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	authdomain "github.com/RealMosam/SEMS/internal/domain/auth"
	participationdomain "github.com/RealMosam/SEMS/internal/domain/participation"
	playerdomain "github.com/RealMosam/SEMS/internal/domain/player"
	sportdomain "github.com/RealMosam/SEMS/internal/domain/sport"
	"github.com/RealMosam/SEMS/internal/telemetry"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, listResponse[T]{Items: items})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

// writeDomainError maps domain sentinels to status codes. Unknown errors are
// logged and answered with a generic 500.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isAny(err, authdomain.ErrInvalidInput, playerdomain.ErrInvalidInput, participationdomain.ErrInvalidInput,
		sportdomain.ErrInvalidInput, playerdomain.ErrInvalidGender, participationdomain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	case isAny(err, authdomain.ErrUnauthorized, authdomain.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, err.Error())
	case isAny(err, playerdomain.ErrNotFound, participationdomain.ErrNotFound,
		sportdomain.ErrSportNotFound, sportdomain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case isAny(err, authdomain.ErrUsernameExists, playerdomain.ErrAlreadyExists, participationdomain.ErrDuplicate,
		participationdomain.ErrInvalidTransition, participationdomain.ErrEventFull):
		writeError(w, http.StatusConflict, err.Error())
	default:
		telemetry.LogWithTrace(r.Context(), s.logger).ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
