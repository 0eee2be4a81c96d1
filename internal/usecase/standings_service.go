package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/platform/cache"
)

// MatchStatsLoader is the per-match player stat lookup.
type MatchStatsLoader interface {
	MatchPlayerStats(ctx context.Context, matchID string) ([]leaderboard.PlayerMatchStat, error)
}

// StandingsService serves views keyed by dataset version so repeated reads skip recomputation.
type StandingsService struct {
	datasets DatasetLoader
	stats    MatchStatsLoader
	views    *cache.Store
}

func NewStandingsService(datasets DatasetLoader, stats MatchStatsLoader, views *cache.Store) *StandingsService {
	if views == nil {
		views = cache.NewStore(0)
	}

	return &StandingsService{
		datasets: datasets,
		stats:    stats,
		views:    views,
	}
}

func (s *StandingsService) View(ctx context.Context, tournamentID string, filter ViewFilter) (View, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.View")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return View{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	if filter.Stage == "" {
		filter.Stage = match.StageAll
	}

	dataset, err := s.datasets.Load(ctx, tournamentID)
	if err != nil {
		return View{}, fmt.Errorf("load tournament dataset: %w", err)
	}

	key := viewCacheKey(tournamentID, dataset.Version, filter)
	value, err := s.views.GetOrLoad(ctx, key, func(context.Context) (any, error) {
		return BuildView(dataset, filter), nil
	})
	if err != nil {
		return View{}, fmt.Errorf("build view: %w", err)
	}

	view, ok := value.(View)
	if !ok {
		return View{}, fmt.Errorf("unexpected cached view type %T", value)
	}
	return view.Clone(), nil
}

func (s *StandingsService) Standings(ctx context.Context, tournamentID string, filter ViewFilter) ([]standing.TeamStanding, error) {
	view, err := s.View(ctx, tournamentID, filter)
	if err != nil {
		return nil, err
	}
	return view.Standings, nil
}

func (s *StandingsService) Leaderboards(ctx context.Context, tournamentID string, stage match.Stage) ([]leaderboard.Board, error) {
	view, err := s.View(ctx, tournamentID, ViewFilter{Stage: stage})
	if err != nil {
		return nil, err
	}
	return view.Leaderboards, nil
}

func (s *StandingsService) Leaderboard(ctx context.Context, tournamentID string, category leaderboard.Category, stage match.Stage) ([]leaderboard.PlayerRanking, error) {
	view, err := s.View(ctx, tournamentID, ViewFilter{Stage: stage})
	if err != nil {
		return nil, err
	}
	return view.Board(category), nil
}

func (s *StandingsService) MatchPlayerStats(ctx context.Context, matchID string) ([]leaderboard.PlayerMatchStat, error) {
	if s.stats == nil {
		return nil, fmt.Errorf("%w: match stats are not configured", ErrDependencyUnavailable)
	}
	return s.stats.MatchPlayerStats(ctx, matchID)
}

// Invalidate forces the next read of the tournament to refetch.
func (s *StandingsService) Invalidate(ctx context.Context, tournamentID string) {
	tournamentID = strings.TrimSpace(tournamentID)
	s.datasets.Invalidate(ctx, tournamentID)
	s.views.DeletePrefix(ctx, tournamentID+"|")
}

func viewCacheKey(tournamentID, version string, filter ViewFilter) string {
	return strings.Join([]string{tournamentID, version, string(filter.Stage), filter.GroupID}, "|")
}
