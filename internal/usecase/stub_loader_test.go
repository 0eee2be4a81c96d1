package usecase

import (
	"context"
	"sync"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
)

type stubLoader struct {
	mu          sync.Mutex
	datasets    map[string]tournament.Dataset
	errs        map[string]error
	gates       map[string]chan struct{}
	loads       map[string]int
	invalidated []string
}

func newStubLoader() *stubLoader {
	return &stubLoader{
		datasets: map[string]tournament.Dataset{},
		errs:     map[string]error{},
		gates:    map[string]chan struct{}{},
		loads:    map[string]int{},
	}
}

func (s *stubLoader) Load(_ context.Context, tournamentID string) (tournament.Dataset, error) {
	s.mu.Lock()
	gate := s.gates[tournamentID]
	s.loads[tournamentID]++
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs[tournamentID]; err != nil {
		return tournament.Dataset{}, err
	}
	item, ok := s.datasets[tournamentID]
	if !ok {
		return tournament.Dataset{}, ErrNotFound
	}
	return item, nil
}

func (s *stubLoader) Invalidate(_ context.Context, tournamentID string) {
	s.mu.Lock()
	s.invalidated = append(s.invalidated, tournamentID)
	s.mu.Unlock()
}

func (s *stubLoader) set(tournamentID string, dataset tournament.Dataset, err error) {
	s.mu.Lock()
	s.datasets[tournamentID] = dataset
	if err != nil {
		s.errs[tournamentID] = err
	} else {
		delete(s.errs, tournamentID)
	}
	s.mu.Unlock()
}

func (s *stubLoader) gate(tournamentID string) chan struct{} {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[tournamentID] = ch
	s.mu.Unlock()
	return ch
}

func (s *stubLoader) loadCount(tournamentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads[tournamentID]
}

func sampleDataset(tournamentID, version string) tournament.Dataset {
	return tournament.Dataset{
		TournamentID: tournamentID,
		Version:      version,
		Teams: []team.TournamentTeam{
			{ID: "tt-a", Team: team.Team{ID: "A", Name: "Alpha"}, GroupID: "g1", GroupName: "Group 1"},
			{ID: "tt-b", Team: team.Team{ID: "B", Name: "Bravo"}, GroupID: "g1", GroupName: "Group 1"},
			{ID: "tt-c", Team: team.Team{ID: "C", Name: "Charlie"}, GroupID: "g2", GroupName: "Group 2",
				BackendStats: &team.Stats{Won: 2, Drawn: 0, Lost: 1, GoalsFor: 6, GoalsAgainst: 3, Points: 6}},
		},
		Matches: []match.Match{
			{ID: "m1", HomeTeamID: "A", AwayTeamID: "B", HomeScore: 3, AwayScore: 1, Status: match.StatusCompleted, Stage: match.StageRegularRound, GroupID: "g1"},
			{ID: "m2", HomeTeamID: "A", AwayTeamID: "B", HomeScore: 0, AwayScore: 1, Status: match.StatusCompleted, Stage: match.StageFinal},
		},
		PlayerStats: []leaderboard.PlayerMatchStat{
			{PlayerID: "p1", PlayerName: "Pat", TeamName: "Alpha", MatchID: "m1", RusherPoints: 10, Stage: match.StageRegularRound, MatchStatus: match.StatusCompleted},
			{PlayerID: "p2", PlayerName: "Sam", TeamName: "Bravo", MatchID: "m2", RusherPoints: 4, QBPoints: 6, Stage: match.StageFinal, MatchStatus: match.StatusCompleted},
		},
	}
}
