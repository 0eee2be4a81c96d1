package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/rawdata"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

// SnapshotSource serves tournaments from the mirrored documents.
type SnapshotSource struct {
	repo rawdata.Repository
}

func NewSnapshotSource(repo rawdata.Repository) *SnapshotSource {
	return &SnapshotSource{repo: repo}
}

// FetchTeams reports tournament.ErrNotFound when nothing was ever mirrored for the tournament.
func (s *SnapshotSource) FetchTeams(ctx context.Context, tournamentID string) ([]team.TournamentTeam, error) {
	items, err := s.repo.ListByTournament(ctx, tournamentID, rawdata.EntityTeams)
	if err != nil {
		return nil, fmt.Errorf("list team snapshots tournament=%s: %w", tournamentID, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no team snapshots for %s", tournament.ErrNotFound, tournamentID)
	}

	out := make([]team.TournamentTeam, 0, len(items))
	for _, item := range items {
		decoded, err := decodeTeam(item)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

func (s *SnapshotSource) FetchMatches(ctx context.Context, tournamentID string) ([]match.Payload, error) {
	items, err := s.repo.ListByTournament(ctx, tournamentID, rawdata.EntityMatches)
	if err != nil {
		return nil, fmt.Errorf("list match snapshots tournament=%s: %w", tournamentID, err)
	}

	out := make([]match.Payload, 0, len(items))
	for _, item := range items {
		decoded, err := decodeMatch(item)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

func (s *SnapshotSource) FetchPlayerStats(ctx context.Context, tournamentID string) ([]leaderboard.PlayerMatchStat, error) {
	items, err := s.repo.ListByTournament(ctx, tournamentID, rawdata.EntityPlayerStats)
	if err != nil {
		return nil, fmt.Errorf("list player stat snapshots tournament=%s: %w", tournamentID, err)
	}
	return decodeStats(items)
}

func (s *SnapshotSource) FetchMatchPlayerStats(ctx context.Context, matchID string) ([]leaderboard.PlayerMatchStat, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", tournament.ErrNotFound)
	}
	items, err := s.repo.ListByEntityKeyPrefix(ctx, rawdata.EntityPlayerStats, statKey(matchID, ""))
	if err != nil {
		return nil, fmt.Errorf("list player stat snapshots match=%s: %w", matchID, err)
	}
	return decodeStats(items)
}

func decodeStats(items []rawdata.Payload) ([]leaderboard.PlayerMatchStat, error) {
	out := make([]leaderboard.PlayerMatchStat, 0, len(items))
	for _, item := range items {
		decoded, err := decodeStat(item)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

// MirroredSource writes every successful tournament fetch through to the mirror.
// Mirror failures are logged and never fail the read.
type MirroredSource struct {
	next       tournament.Source
	repo       rawdata.Repository
	sourceName string
	logger     *logging.Logger
}

func NewMirroredSource(next tournament.Source, repo rawdata.Repository, sourceName string, logger *logging.Logger) *MirroredSource {
	if logger == nil {
		logger = logging.Default()
	}
	sourceName = strings.TrimSpace(sourceName)
	if sourceName == "" {
		sourceName = "league_api"
	}

	return &MirroredSource{
		next:       next,
		repo:       repo,
		sourceName: sourceName,
		logger:     logger,
	}
}

func (s *MirroredSource) FetchTeams(ctx context.Context, tournamentID string) ([]team.TournamentTeam, error) {
	items, err := s.next.FetchTeams(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	payloads, encErr := teamPayloads(s.sourceName, tournamentID, items)
	s.mirror(ctx, tournamentID, rawdata.EntityTeams, payloads, encErr)
	return items, nil
}

func (s *MirroredSource) FetchMatches(ctx context.Context, tournamentID string) ([]match.Payload, error) {
	items, err := s.next.FetchMatches(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	payloads, encErr := matchPayloads(s.sourceName, tournamentID, items)
	s.mirror(ctx, tournamentID, rawdata.EntityMatches, payloads, encErr)
	return items, nil
}

func (s *MirroredSource) FetchPlayerStats(ctx context.Context, tournamentID string) ([]leaderboard.PlayerMatchStat, error) {
	items, err := s.next.FetchPlayerStats(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	payloads, encErr := statPayloads(s.sourceName, tournamentID, items)
	s.mirror(ctx, tournamentID, rawdata.EntityPlayerStats, payloads, encErr)
	return items, nil
}

// FetchMatchPlayerStats is not mirrored: a per-match subset would retire the rest of the tournament's stats.
func (s *MirroredSource) FetchMatchPlayerStats(ctx context.Context, matchID string) ([]leaderboard.PlayerMatchStat, error) {
	return s.next.FetchMatchPlayerStats(ctx, matchID)
}

func (s *MirroredSource) Invalidate(ctx context.Context, tournamentID string) {
	if inv, ok := s.next.(interface {
		Invalidate(ctx context.Context, tournamentID string)
	}); ok {
		inv.Invalidate(ctx, tournamentID)
	}
}

func (s *MirroredSource) mirror(ctx context.Context, tournamentID, entityType string, payloads []rawdata.Payload, encErr error) {
	if encErr != nil {
		s.logger.WarnContext(ctx, "encode snapshot failed",
			"tournament_id", tournamentID,
			"entity_type", entityType,
			"error", encErr,
		)
		return
	}
	if err := s.repo.ReplaceTournament(ctx, tournamentID, entityType, payloads); err != nil {
		s.logger.WarnContext(ctx, "mirror snapshot failed",
			"tournament_id", tournamentID,
			"entity_type", entityType,
			"count", len(payloads),
			"error", err,
		)
		return
	}
	s.logger.DebugContext(ctx, "mirrored snapshot",
		"tournament_id", tournamentID,
		"entity_type", entityType,
		"count", len(payloads),
	)
}
