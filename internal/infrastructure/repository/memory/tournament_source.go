package memory

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
)

// Tournament is one seeded tournament with its raw data.
type Tournament struct {
	ID          string
	LeagueID    string
	Name        string
	Teams       []team.TournamentTeam
	Matches     []match.Payload
	PlayerStats []leaderboard.PlayerMatchStat
}

type TournamentSource struct {
	mu          sync.RWMutex
	tournaments map[string]Tournament
}

func NewTournamentSource(items []Tournament) *TournamentSource {
	tournaments := make(map[string]Tournament, len(items))
	for _, item := range items {
		tournaments[item.ID] = item
	}

	return &TournamentSource{tournaments: tournaments}
}

func (s *TournamentSource) FetchTeams(_ context.Context, tournamentID string) ([]team.TournamentTeam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.tournaments[strings.TrimSpace(tournamentID)]
	if !ok {
		return nil, tournament.ErrNotFound
	}

	out := make([]team.TournamentTeam, 0, len(item.Teams))
	for _, row := range item.Teams {
		if row.BackendStats != nil {
			stats := *row.BackendStats
			row.BackendStats = &stats
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *TournamentSource) FetchMatches(_ context.Context, tournamentID string) ([]match.Payload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.tournaments[strings.TrimSpace(tournamentID)]
	if !ok {
		return nil, tournament.ErrNotFound
	}

	out := make([]match.Payload, 0, len(item.Matches))
	for _, payload := range item.Matches {
		out = append(out, maps.Clone(payload))
	}
	return out, nil
}

func (s *TournamentSource) FetchPlayerStats(_ context.Context, tournamentID string) ([]leaderboard.PlayerMatchStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.tournaments[strings.TrimSpace(tournamentID)]
	if !ok {
		return nil, tournament.ErrNotFound
	}

	out := make([]leaderboard.PlayerMatchStat, 0, len(item.PlayerStats))
	out = append(out, item.PlayerStats...)
	return out, nil
}

func (s *TournamentSource) FetchMatchPlayerStats(_ context.Context, matchID string) ([]leaderboard.PlayerMatchStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matchID = strings.TrimSpace(matchID)
	out := make([]leaderboard.PlayerMatchStat, 0)
	for _, item := range s.tournaments {
		for _, stat := range item.PlayerStats {
			if stat.MatchID == matchID {
				out = append(out, stat)
			}
		}
	}
	return out, nil
}

// Upsert replaces a tournament wholesale.
func (s *TournamentSource) Upsert(_ context.Context, item Tournament) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tournaments[strings.TrimSpace(item.ID)] = item
}

// ListTournaments lists seeded tournaments of a league ordered by id; an empty leagueID lists all.
func (s *TournamentSource) ListTournaments(_ context.Context, leagueID string) ([]tournament.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	leagueID = strings.TrimSpace(leagueID)
	out := make([]tournament.Summary, 0, len(s.tournaments))
	for _, item := range s.tournaments {
		if leagueID != "" && item.LeagueID != leagueID {
			continue
		}
		out = append(out, tournament.Summary{ID: item.ID, LeagueID: item.LeagueID, Name: item.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
