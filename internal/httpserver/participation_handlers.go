package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	participationdomain "github.com/RealMosam/SEMS/internal/domain/participation"
	participationusecase "github.com/RealMosam/SEMS/internal/usecase/participation"
)

func (s *Server) handleParticipations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		filter := participationusecase.ListFilter{
			PlayerID: query.Get("playerId"),
			Status:   query.Get("status"),
		}
		if raw := query.Get("eventId"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, "eventId must be a positive integer")
				return
			}
			filter.EventID = n
		}
		items, err := s.deps.Participations.List(ctx, filter)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeList[*participationdomain.Participation](w, items)
	case http.MethodPost:
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			unauthorized(w, "authentication required")
			return
		}
		var payload participationusecase.CreateInput
		if !decodeJSON(w, r, &payload) {
			return
		}
		item, err := s.deps.Participations.Create(ctx, claims.Subject, payload)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleParticipationByID(w http.ResponseWriter, r *http.Request) {
	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/participations/"), "/")
	segments := strings.Split(remainder, "/")
	id := segments[0]
	if id == "" || len(segments) > 2 {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	if len(segments) == 2 {
		if segments[1] != "status" {
			writeError(w, http.StatusNotFound, "resource not found")
			return
		}
		s.handleParticipationStatus(w, r, id)
		return
	}

	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		item, err := s.deps.Participations.Get(ctx, id)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		if err := s.deps.Participations.Delete(ctx, id); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodDelete)
	}
}

func (s *Server) handleParticipationStatus(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPut && r.Method != http.MethodPatch {
		writeMethodNotAllowed(w, http.MethodPut, http.MethodPatch)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	item, err := s.deps.Participations.UpdateStatus(r.Context(), id, payload.Status)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
