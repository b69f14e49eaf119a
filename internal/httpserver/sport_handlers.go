package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	sportdomain "github.com/RealMosam/SEMS/internal/domain/sport"
)

func (s *Server) handleSports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	ctx := r.Context()
	if name := r.URL.Query().Get("name"); name != "" {
		item, err := s.deps.Sports.FindSportByName(ctx, name)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
		return
	}

	items, err := s.deps.Sports.ListSports(ctx)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeList[*sportdomain.Sport](w, items)
}

func (s *Server) handleSportByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	id, ok := intPathID(w, r.URL.Path, "/api/sports/")
	if !ok {
		return
	}
	item, err := s.deps.Sports.GetSport(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	sportID := 0
	if raw := r.URL.Query().Get("sportId"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "sportId must be a positive integer")
			return
		}
		sportID = n
	}

	items, err := s.deps.Sports.ListEvents(r.Context(), sportID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeList[*sportdomain.Event](w, items)
}

func (s *Server) handleEventByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	id, ok := intPathID(w, r.URL.Path, "/api/events/")
	if !ok {
		return
	}
	item, err := s.deps.Sports.GetEvent(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// intPathID parses the single numeric segment after prefix.
func intPathID(w http.ResponseWriter, path, prefix string) (int, bool) {
	raw := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if raw == "" || strings.Contains(raw, "/") {
		writeError(w, http.StatusNotFound, "resource not found")
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
