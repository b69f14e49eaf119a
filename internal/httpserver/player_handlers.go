package httpserver

import (
	"net/http"
	"strings"

	playerdomain "github.com/RealMosam/SEMS/internal/domain/player"
	playerusecase "github.com/RealMosam/SEMS/internal/usecase/player"
)

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		items, err := s.deps.Players.List(ctx)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeList[*playerdomain.Player](w, items)
	case http.MethodPost:
		var payload playerusecase.CreateInput
		if !decodeJSON(w, r, &payload) {
			return
		}
		item, err := s.deps.Players.Create(ctx, payload)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handlePlayerByID(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/players/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		item, err := s.deps.Players.Get(ctx, id)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPut, http.MethodPatch:
		var payload playerusecase.UpdateInput
		if !decodeJSON(w, r, &payload) {
			return
		}
		item, err := s.deps.Players.Update(ctx, id, payload)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		if err := s.deps.Players.Delete(ctx, id); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}
