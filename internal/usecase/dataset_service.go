package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

// DatasetLoader yields normalized tournament snapshots.
type DatasetLoader interface {
	Load(ctx context.Context, tournamentID string) (tournament.Dataset, error)
	Invalidate(ctx context.Context, tournamentID string)
}

// invalidator is implemented by caching sources.
type invalidator interface {
	Invalidate(ctx context.Context, tournamentID string)
}

type DatasetService struct {
	source tournament.Source
	logger *logging.Logger
	now    func() time.Time
}

func NewDatasetService(source tournament.Source, logger *logging.Logger) *DatasetService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DatasetService{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Load fetches roster, matches and player stats concurrently and normalizes them into one snapshot.
// Malformed matches are logged and skipped; any source error fails the whole load.
func (s *DatasetService) Load(ctx context.Context, tournamentID string) (tournament.Dataset, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetService.Load")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Dataset{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	var (
		teams    []team.TournamentTeam
		payloads []match.Payload
		stats    []leaderboard.PlayerMatchStat
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := s.source.FetchTeams(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("fetch teams: %w", err)
		}
		teams = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.source.FetchMatches(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("fetch matches: %w", err)
		}
		payloads = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.source.FetchPlayerStats(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("fetch player stats: %w", err)
		}
		stats = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return tournament.Dataset{}, classifySourceError(tournamentID, err)
	}

	matches, rejected := match.NormalizeAll(payloads)
	rejectedIDs := make(map[string]struct{}, len(rejected))
	for _, item := range rejected {
		s.logger.WarnContext(ctx, "skip malformed match",
			"tournament_id", tournamentID,
			"index", item.Index,
			"match_id", item.MatchID,
			"reason", item.Reason,
		)
		if item.MatchID != "" {
			rejectedIDs[item.MatchID] = struct{}{}
		}
	}

	teamIDs := participationTeamIDs(teams)
	for i := range matches {
		matches[i].HomeTeamID = resolveTeamID(teamIDs, matches[i].HomeTeamID)
		matches[i].AwayTeamID = resolveTeamID(teamIDs, matches[i].AwayTeamID)
	}

	dataset := tournament.Dataset{
		TournamentID: tournamentID,
		Teams:        teams,
		Matches:      matches,
		Rejected:     len(rejected),
		FetchedAt:    s.now().UTC(),
	}
	dataset.PlayerStats = bindPlayerStats(dataset, stats, teamIDs, rejectedIDs)
	dataset.Version = dataset.Fingerprint()

	s.logger.DebugContext(ctx, "tournament dataset loaded",
		"tournament_id", tournamentID,
		"teams", len(teams),
		"matches", len(matches),
		"player_stats", len(dataset.PlayerStats),
		"rejected", len(rejected),
		"version", dataset.Version,
	)

	return dataset, nil
}

// MatchPlayerStats returns raw per-player contributions for one match.
func (s *DatasetService) MatchPlayerStats(ctx context.Context, matchID string) ([]leaderboard.PlayerMatchStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetService.MatchPlayerStats")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	items, err := s.source.FetchMatchPlayerStats(ctx, matchID)
	if err != nil {
		return nil, classifySourceError(matchID, fmt.Errorf("fetch match player stats: %w", err))
	}
	return items, nil
}

// Invalidate drops any cached source data for the tournament.
func (s *DatasetService) Invalidate(ctx context.Context, tournamentID string) {
	if cached, ok := s.source.(invalidator); ok {
		cached.Invalidate(ctx, strings.TrimSpace(tournamentID))
	}
}

func classifySourceError(key string, err error) error {
	switch {
	case errors.Is(err, tournament.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	case errors.Is(err, resilience.ErrCircuitOpen):
		return fmt.Errorf("%w: %w: %w", ErrFetchFailure, ErrDependencyUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}
}

// participationTeamIDs maps participation ids to team ids for rosters where they differ.
func participationTeamIDs(teams []team.TournamentTeam) map[string]string {
	out := make(map[string]string, len(teams))
	for _, item := range teams {
		participationID := strings.TrimSpace(item.ID)
		teamID := item.TeamID()
		if participationID == "" || teamID == "" || participationID == teamID {
			continue
		}
		out[participationID] = teamID
	}
	return out
}

func resolveTeamID(teamIDs map[string]string, id string) string {
	if mapped, ok := teamIDs[id]; ok {
		return mapped
	}
	return id
}

// bindPlayerStats copies each stat's stage and status from its parent match.
// Stats of rejected matches are dropped; stats of unknown matches keep what the source reported.
func bindPlayerStats(
	dataset tournament.Dataset,
	stats []leaderboard.PlayerMatchStat,
	teamIDs map[string]string,
	rejectedIDs map[string]struct{},
) []leaderboard.PlayerMatchStat {
	matchesByID := make(map[string]match.Match, len(dataset.Matches))
	for _, item := range dataset.Matches {
		if item.ID != "" {
			matchesByID[item.ID] = item
		}
	}

	out := make([]leaderboard.PlayerMatchStat, 0, len(stats))
	for _, item := range stats {
		parent, kept := matchesByID[item.MatchID]
		if _, rejected := rejectedIDs[item.MatchID]; rejected && !kept {
			continue
		}
		if kept {
			item.Stage = parent.Stage
			item.MatchStatus = parent.Status
		}
		item.TeamID = resolveTeamID(teamIDs, item.TeamID)
		if item.TeamName == "" {
			item.TeamName = dataset.TeamName(item.TeamID)
		}
		out = append(out, item)
	}
	return out
}
