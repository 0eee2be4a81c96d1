package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/leaderboards", handler.ListLeaderboards)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/leaderboards/{category}", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/matches/{matchID}/player-stats", handler.ListMatchPlayerStats)
}
