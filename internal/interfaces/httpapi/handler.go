package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

type Handler struct {
	standingsService *usecase.StandingsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(standingsService *usecase.StandingsService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingsService: standingsService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListStandings serves GET /v1/tournaments/{tournamentID}/standings?stage=&group=.
func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	req := tournamentViewRequest{
		TournamentID: strings.TrimSpace(r.PathValue("tournamentID")),
		Stage:        strings.TrimSpace(r.URL.Query().Get("stage")),
		GroupID:      strings.TrimSpace(r.URL.Query().Get("group")),
	}
	view, err := h.loadView(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsViewToDTO(view))
}

// ListLeaderboards serves every category board for one stage; group filters do not apply to players.
func (h *Handler) ListLeaderboards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeaderboards")
	defer span.End()

	req := tournamentViewRequest{
		TournamentID: strings.TrimSpace(r.PathValue("tournamentID")),
		Stage:        strings.TrimSpace(r.URL.Query().Get("stage")),
	}
	view, err := h.loadView(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "list leaderboards failed", "tournament_id", req.TournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	boards := make([]leaderboardDTO, 0, len(view.Leaderboards))
	for _, board := range view.Leaderboards {
		boards = append(boards, boardToDTO(board.Category, board.Rankings))
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardsDTO{
		TournamentID: view.TournamentID,
		Version:      view.Version,
		Stage:        string(view.Filter.Stage),
		Boards:       boards,
	})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	req := tournamentViewRequest{
		TournamentID: strings.TrimSpace(r.PathValue("tournamentID")),
		Stage:        strings.TrimSpace(r.URL.Query().Get("stage")),
	}
	rawCategory := strings.TrimSpace(r.PathValue("category"))
	category, ok := leaderboard.ParseCategory(rawCategory)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown leaderboard category %q", usecase.ErrInvalidInput, rawCategory))
		return
	}

	view, err := h.loadView(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed",
			"tournament_id", req.TournamentID,
			"category", category,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardsDTO{
		TournamentID: view.TournamentID,
		Version:      view.Version,
		Stage:        string(view.Filter.Stage),
		Boards:       []leaderboardDTO{boardToDTO(category, view.Board(category))},
	})
}

func (h *Handler) ListMatchPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPlayerStats")
	defer span.End()

	req := matchStatsRequest{MatchID: strings.TrimSpace(r.PathValue("matchID"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.standingsService.MatchPlayerStats(ctx, req.MatchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match player stats failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerMatchStatDTO, 0, len(stats))
	for _, item := range stats {
		items = append(items, playerMatchStatToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, matchPlayerStatsDTO{MatchID: req.MatchID, Stats: items})
}

func (h *Handler) loadView(ctx context.Context, req tournamentViewRequest) (usecase.View, error) {
	if err := h.validateRequest(ctx, req); err != nil {
		return usecase.View{}, err
	}
	filter, err := usecase.ParseViewFilter(req.Stage, req.GroupID)
	if err != nil {
		return usecase.View{}, err
	}
	return h.standingsService.View(ctx, req.TournamentID, filter)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type tournamentViewRequest struct {
	TournamentID string `validate:"required,max=128,printascii"`
	Stage        string `validate:"omitempty,max=32,printascii"`
	GroupID      string `validate:"omitempty,max=128,printascii"`
}

type matchStatsRequest struct {
	MatchID string `validate:"required,max=128,printascii"`
}
