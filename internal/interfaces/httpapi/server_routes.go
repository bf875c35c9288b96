package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/teams", handler.ListTeamsBySeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/schedule", handler.GetSchedule)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/schedule.ics", handler.GetScheduleCalendar)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/matches", handler.ListMatchesBySeason)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/thresholds", handler.GetMatchThresholds)
	mux.HandleFunc("GET /v1/matches/{matchID}/teams/{teamID}/lineup", handler.GetLineup)
	mux.HandleFunc("GET /v1/matches/{matchID}/feed", handler.StreamMatchFeed)
	mux.HandleFunc("GET /v1/members", handler.ListMembers)
}

// registerMemberRoutes covers captain actions. The usecases decide whether
// the member may act for the team in the path.
func registerMemberRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/matches/{matchID}/teams/{teamID}/lineup", RequireAuth(verifier, http.HandlerFunc(handler.SubmitLineup)))
	mux.Handle("POST /v1/matches/{matchID}/teams/{teamID}/lineup/lock", RequireAuth(verifier, http.HandlerFunc(handler.LockLineup)))
	mux.Handle("POST /v1/matches/{matchID}/teams/{teamID}/lineup/unlock", RequireAuth(verifier, http.HandlerFunc(handler.UnlockLineup)))
	mux.Handle("PUT /v1/matches/{matchID}/score", RequireAuth(verifier, http.HandlerFunc(handler.SubmitScore)))
}

func registerOperatorRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	operator := func(fn http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireOperator(fn))
	}

	mux.Handle("POST /v1/seasons", operator(handler.CreateSeason))
	mux.Handle("POST /v1/seasons/{seasonID}/teams", operator(handler.CreateTeam))
	mux.Handle("POST /v1/seasons/{seasonID}/schedule/apply", operator(handler.ApplySchedule))
	mux.Handle("POST /v1/members", operator(handler.CreateMember))
}
