package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	tournamentmock "github.com/riskibarqy/league-standings/internal/mocks/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
	"github.com/stretchr/testify/mock"
)

func TestDatasetService_Load_NormalizesAndBindsUsingMockery(t *testing.T) {
	t.Parallel()

	source := tournamentmock.NewSource(t)
	service := NewDatasetService(source, logging.NewNop())
	tournamentID := "cup-2025"

	source.
		On("FetchTeams", mock.Anything, tournamentID).
		Return([]team.TournamentTeam{
			{ID: "tt-a", Team: team.Team{ID: "A", Name: "Alpha"}},
			{ID: "tt-b", Team: team.Team{ID: "B", Name: "Bravo"}},
		}, nil).
		Once()
	source.
		On("FetchMatches", mock.Anything, tournamentID).
		Return([]match.Payload{
			{"_id": "m1", "homeTeam": "tt-a", "awayTeam": "tt-b", "homeScore": float64(2), "awayScore": float64(0), "status": "completed", "stage": "semi_final"},
			{"id": "m2", "home_team_id": "B", "away_team_id": "A", "status": "completed"},
			{"id": "m3", "home_team_id": "B", "away_team_id": "A", "status": "scheduled", "stage": "final"},
		}, nil).
		Once()
	source.
		On("FetchPlayerStats", mock.Anything, tournamentID).
		Return([]leaderboard.PlayerMatchStat{
			{PlayerID: "p1", PlayerName: "Pat", TeamID: "tt-a", MatchID: "m1", RusherPoints: 7},
			{PlayerID: "p1", PlayerName: "Pat", TeamID: "tt-a", MatchID: "m2", RusherPoints: 9},
			{PlayerID: "p2", PlayerName: "Sam", TeamID: "B", MatchID: "m3", QBPoints: 3},
		}, nil).
		Once()

	got, err := service.Load(context.Background(), tournamentID)
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}

	if got.Rejected != 1 || len(got.Matches) != 2 {
		t.Fatalf("expected one rejected and two kept matches, got rejected=%d matches=%d", got.Rejected, len(got.Matches))
	}
	if got.Matches[0].HomeTeamID != "A" || got.Matches[0].AwayTeamID != "B" {
		t.Fatalf("expected participation ids mapped to team ids, got %+v", got.Matches[0])
	}
	if got.Version == "" || got.FetchedAt.IsZero() {
		t.Fatalf("expected version and fetch time, got %+v", got)
	}

	if len(got.PlayerStats) != 2 {
		t.Fatalf("expected stat of rejected match to be dropped, got %+v", got.PlayerStats)
	}
	first := got.PlayerStats[0]
	if first.Stage != match.StageSemiFinal || first.MatchStatus != match.StatusCompleted || first.TeamID != "A" || first.TeamName != "Alpha" {
		t.Fatalf("expected stat bound to parent match and roster, got %+v", first)
	}
	if second := got.PlayerStats[1]; second.MatchStatus != match.StatusScheduled || second.Stage != match.StageFinal {
		t.Fatalf("expected scheduled status bound, got %+v", second)
	}
}

func TestDatasetService_Load_KeepsStatsOfMatchWithRejectedDuplicate(t *testing.T) {
	t.Parallel()

	valid := match.Payload{"id": "m1", "home_team_id": "A", "away_team_id": "B", "score": map[string]any{"home": float64(2), "away": float64(1)}, "status": "completed"}
	broken := match.Payload{"id": "m1", "home_team_id": "A", "status": "completed"}

	cases := []struct {
		name     string
		payloads []match.Payload
	}{
		{name: "valid then malformed", payloads: []match.Payload{valid, broken}},
		{name: "malformed then valid", payloads: []match.Payload{broken, valid}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			source := tournamentmock.NewSource(t)
			service := NewDatasetService(source, logging.NewNop())

			source.On("FetchTeams", mock.Anything, "t-1").Return([]team.TournamentTeam{
				{ID: "tt-a", Team: team.Team{ID: "A", Name: "Alpha"}},
				{ID: "tt-b", Team: team.Team{ID: "B", Name: "Bravo"}},
			}, nil).Once()
			source.On("FetchMatches", mock.Anything, "t-1").Return(tc.payloads, nil).Once()
			source.On("FetchPlayerStats", mock.Anything, "t-1").Return([]leaderboard.PlayerMatchStat{
				{PlayerID: "p1", PlayerName: "Pat", TeamID: "A", MatchID: "m1", RusherPoints: 10},
			}, nil).Once()

			got, err := service.Load(context.Background(), "t-1")
			if err != nil {
				t.Fatalf("load dataset: %v", err)
			}
			if len(got.Matches) != 1 || got.Rejected != 1 {
				t.Fatalf("expected one kept and one rejected match, got matches=%d rejected=%d", len(got.Matches), got.Rejected)
			}
			if len(got.PlayerStats) != 1 || got.PlayerStats[0].MatchStatus != match.StatusCompleted {
				t.Fatalf("expected stat of kept match bound, got %+v", got.PlayerStats)
			}

			view := BuildView(got, ViewFilter{Stage: match.StageAll})
			if len(view.Standings) == 0 || view.Standings[0].TeamID != "A" || view.Standings[0].Played != 1 {
				t.Fatalf("expected A to lead with one played, got %+v", view.Standings)
			}
			rushers := view.Board(leaderboard.CategoryRusher)
			if len(rushers) != 1 || rushers[0].TotalPoints != 10 || rushers[0].MatchesPlayed != 1 {
				t.Fatalf("expected rusher board to count the kept match, got %+v", rushers)
			}
		})
	}
}

func TestDatasetService_Load_MapsSourceErrorsUsingMockery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		err     error
		targets []error
	}{
		{name: "not found", err: tournament.ErrNotFound, targets: []error{ErrNotFound}},
		{name: "circuit open", err: resilience.ErrCircuitOpen, targets: []error{ErrFetchFailure, ErrDependencyUnavailable}},
		{name: "transport", err: errors.New("connection reset"), targets: []error{ErrFetchFailure}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			source := tournamentmock.NewSource(t)
			service := NewDatasetService(source, logging.NewNop())

			source.On("FetchTeams", mock.Anything, "t-1").Return(nil, tc.err).Once()
			source.On("FetchMatches", mock.Anything, "t-1").Return([]match.Payload{}, nil).Maybe()
			source.On("FetchPlayerStats", mock.Anything, "t-1").Return([]leaderboard.PlayerMatchStat{}, nil).Maybe()

			_, err := service.Load(context.Background(), "t-1")
			for _, target := range tc.targets {
				if !errors.Is(err, target) {
					t.Fatalf("expected %v in chain, got %v", target, err)
				}
			}
		})
	}
}

func TestDatasetService_Load_RequiresTournamentID(t *testing.T) {
	t.Parallel()

	service := NewDatasetService(tournamentmock.NewSource(t), logging.NewNop())
	if _, err := service.Load(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.MatchPlayerStats(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDatasetService_MatchPlayerStatsUsingMockery(t *testing.T) {
	t.Parallel()

	source := tournamentmock.NewSource(t)
	service := NewDatasetService(source, logging.NewNop())
	expected := []leaderboard.PlayerMatchStat{{PlayerID: "p1", MatchID: "m1", AttackerPoints: 4}}

	source.On("FetchMatchPlayerStats", mock.Anything, "m1").Return(expected, nil).Once()

	got, err := service.MatchPlayerStats(context.Background(), "m1")
	if err != nil {
		t.Fatalf("match player stats: %v", err)
	}
	if len(got) != 1 || got[0].AttackerPoints != 4 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

type invalidatingSource struct {
	*tournamentmock.Source
	invalidated []string
}

func (s *invalidatingSource) Invalidate(_ context.Context, tournamentID string) {
	s.invalidated = append(s.invalidated, tournamentID)
}

func TestDatasetService_InvalidateDelegatesToCachingSource(t *testing.T) {
	t.Parallel()

	source := &invalidatingSource{Source: tournamentmock.NewSource(t)}
	service := NewDatasetService(source, logging.NewNop())

	service.Invalidate(context.Background(), " t-9 ")
	if len(source.invalidated) != 1 || source.invalidated[0] != "t-9" {
		t.Fatalf("expected invalidate to reach source, got %v", source.invalidated)
	}
}
