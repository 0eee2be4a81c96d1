package cache

import (
	"context"
	"maps"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
)

// TournamentSource memoizes another source per tournament. Concurrent misses for one key
// share a single upstream call.
type TournamentSource struct {
	next  tournament.Source
	cache *basecache.Store
}

func NewTournamentSource(next tournament.Source, cache *basecache.Store) *TournamentSource {
	return &TournamentSource{next: next, cache: cache}
}

func (s *TournamentSource) FetchTeams(ctx context.Context, tournamentID string) ([]team.TournamentTeam, error) {
	key := tournamentKey(tournamentID) + "teams"
	v, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := s.next.FetchTeams(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]team.TournamentTeam(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.TournamentTeam)
	out := make([]team.TournamentTeam, 0, len(items))
	for _, item := range items {
		if item.BackendStats != nil {
			stats := *item.BackendStats
			item.BackendStats = &stats
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *TournamentSource) FetchMatches(ctx context.Context, tournamentID string) ([]match.Payload, error) {
	key := tournamentKey(tournamentID) + "matches"
	v, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := s.next.FetchMatches(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]match.Payload(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Payload)
	out := make([]match.Payload, 0, len(items))
	for _, item := range items {
		out = append(out, maps.Clone(item))
	}
	return out, nil
}

func (s *TournamentSource) FetchPlayerStats(ctx context.Context, tournamentID string) ([]leaderboard.PlayerMatchStat, error) {
	key := tournamentKey(tournamentID) + "player_stats"
	v, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := s.next.FetchPlayerStats(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]leaderboard.PlayerMatchStat(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]leaderboard.PlayerMatchStat)
	return append([]leaderboard.PlayerMatchStat(nil), items...), nil
}

func (s *TournamentSource) FetchMatchPlayerStats(ctx context.Context, matchID string) ([]leaderboard.PlayerMatchStat, error) {
	key := "match:" + matchID + ":player_stats"
	v, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := s.next.FetchMatchPlayerStats(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return append([]leaderboard.PlayerMatchStat(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]leaderboard.PlayerMatchStat)
	return append([]leaderboard.PlayerMatchStat(nil), items...), nil
}

// Invalidate drops every cached entry of the tournament.
func (s *TournamentSource) Invalidate(ctx context.Context, tournamentID string) {
	s.cache.DeletePrefix(ctx, tournamentKey(tournamentID))
}

func tournamentKey(tournamentID string) string {
	return "tournament:" + tournamentID + ":"
}
