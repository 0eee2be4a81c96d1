package tournament

import (
	"context"
	"errors"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

var ErrNotFound = errors.New("tournament not found")

// Source exposes the raw tournament data the aggregators are fed from.
// Matches are returned undecoded so every backend shape goes through the normalizer.
type Source interface {
	FetchTeams(ctx context.Context, tournamentID string) ([]team.TournamentTeam, error)
	FetchMatches(ctx context.Context, tournamentID string) ([]match.Payload, error)
	FetchPlayerStats(ctx context.Context, tournamentID string) ([]leaderboard.PlayerMatchStat, error)
	FetchMatchPlayerStats(ctx context.Context, matchID string) ([]leaderboard.PlayerMatchStat, error)
}

// Summary identifies one tournament of a league.
type Summary struct {
	ID       string
	LeagueID string
	Name     string
}

// Catalog lists tournaments by league. Only some sources can enumerate.
type Catalog interface {
	ListTournaments(ctx context.Context, leagueID string) ([]Summary, error)
}
