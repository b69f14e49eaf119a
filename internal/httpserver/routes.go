package httpserver

import "net/http"

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/health", s.handleHealth)
	s.router.HandleFunc("/ready", s.handleReady)
	s.router.Handle("/metrics", s.metrics.Handler())

	if s.deps.Auth != nil {
		for _, prefix := range []string{"", "/api/login"} {
			s.router.HandleFunc(prefix+"/authenticate", s.handleAuthenticate)
			s.router.HandleFunc(prefix+"/register", s.handleRegister)
		}
	}

	if s.deps.Tokens == nil {
		return
	}
	authenticated := s.authMiddleware
	s.router.Handle("/api/whoami", authenticated(http.HandlerFunc(s.handleWhoAmI)))

	if s.deps.Players != nil {
		s.router.Handle("/api/players", authenticated(http.HandlerFunc(s.handlePlayers)))
		s.router.Handle("/api/players/", authenticated(http.HandlerFunc(s.handlePlayerByID)))
	}
	if s.deps.Sports != nil {
		s.router.Handle("/api/sports", authenticated(http.HandlerFunc(s.handleSports)))
		s.router.Handle("/api/sports/", authenticated(http.HandlerFunc(s.handleSportByID)))
		s.router.Handle("/api/events", authenticated(http.HandlerFunc(s.handleEvents)))
		s.router.Handle("/api/events/", authenticated(http.HandlerFunc(s.handleEventByID)))
	}
	if s.deps.Participations != nil {
		s.router.Handle("/api/participations", authenticated(http.HandlerFunc(s.handleParticipations)))
		s.router.Handle("/api/participations/", authenticated(http.HandlerFunc(s.handleParticipationByID)))
	}
}
