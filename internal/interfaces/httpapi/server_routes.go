package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
)

type routeGuards struct {
	verifier    TokenVerifier
	maintenance MaintenanceChecker
	logger      *logging.Logger
}

func (g routeGuards) user(fn http.HandlerFunc) http.Handler {
	return RequireAuth(g.verifier, MaintenanceGuard(g.maintenance, g.logger, fn))
}

func (g routeGuards) admin(fn http.HandlerFunc) http.Handler {
	return RequireAuth(g.verifier, RequireAdmin(fn))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/settings", handler.GetSettings)
	mux.HandleFunc("GET /v1/scoring/rules", handler.GetScoringRules)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/gameweeks", handler.ListGameweeks)
	mux.HandleFunc("GET /v1/gameweeks/active", handler.GetActiveGameweek)
	mux.HandleFunc("GET /v1/gameweeks/{gameweekID}/stats", handler.ListGameweekStats)
	mux.HandleFunc("GET /v1/gameweeks/{gameweekID}/stats/{playerID}/breakdown", handler.GetPointsBreakdown)
	mux.HandleFunc("GET /v1/gameweeks/{gameweekID}/votes/results", handler.GetVoteResults)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, g routeGuards) {
	mux.Handle("GET /v1/dashboard/highlights", g.user(handler.GetDashboardHighlights))

	mux.Handle("GET /v1/teams/me", g.user(handler.GetMyTeam))
	mux.Handle("POST /v1/teams/me/selection", g.user(handler.SelectSquad))
	mux.Handle("GET /v1/teams/me/gameweeks/{gameweekID}", g.user(handler.GetMyTeamForGameweek))
	mux.Handle("GET /v1/teams/me/history", g.user(handler.GetMyHistory))
	mux.Handle("GET /v1/teams/users/{username}/gameweeks/{gameweekID}", g.user(handler.GetManagerTeamForGameweek))

	mux.Handle("POST /v1/mini-leagues", g.user(handler.CreateMiniLeague))
	mux.Handle("POST /v1/mini-leagues/join", g.user(handler.JoinMiniLeague))
	mux.Handle("GET /v1/mini-leagues/me", g.user(handler.ListMyMiniLeagues))
	mux.Handle("GET /v1/mini-leagues/{leagueID}/standings", g.user(handler.GetMiniLeagueStandings))

	mux.Handle("GET /v1/gameweeks/{gameweekID}/votes/me", g.user(handler.GetMyVote))
	mux.Handle("POST /v1/gameweeks/{gameweekID}/votes", g.user(handler.SubmitVote))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, g routeGuards) {
	mux.Handle("POST /v1/admin/players", g.admin(handler.CreatePlayer))
	mux.Handle("PUT /v1/admin/players/{playerID}", g.admin(handler.UpdatePlayer))
	mux.Handle("DELETE /v1/admin/players/{playerID}", g.admin(handler.DeletePlayer))

	mux.Handle("POST /v1/admin/gameweeks", g.admin(handler.CreateGameweek))
	mux.Handle("POST /v1/admin/gameweeks/{gameweekID}/activate", g.admin(handler.ActivateGameweek))
	mux.Handle("POST /v1/admin/gameweeks/{gameweekID}/calculate", g.admin(handler.CalculateGameweekPoints))
	mux.Handle("POST /v1/admin/gameweeks/{gameweekID}/voting/open", g.admin(handler.OpenVoting))
	mux.Handle("POST /v1/admin/gameweeks/{gameweekID}/voting/close", g.admin(handler.CloseVoting))
	mux.Handle("POST /v1/admin/gameweeks/{gameweekID}/stats", g.admin(handler.SubmitMatchStat))

	mux.Handle("POST /v1/admin/scoring/preview", g.admin(handler.PreviewPoints))
	mux.Handle("PUT /v1/admin/settings", g.admin(handler.UpdateSettings))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/reconcile-totals", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcileTotalsJob)))
}
