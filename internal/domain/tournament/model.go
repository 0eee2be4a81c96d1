package tournament

import (
	"hash/fnv"
	"strconv"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

// Dataset is an immutable snapshot of one tournament, already normalized.
type Dataset struct {
	TournamentID string
	Teams        []team.TournamentTeam
	Matches      []match.Match
	PlayerStats  []leaderboard.PlayerMatchStat
	Rejected     int
	FetchedAt    time.Time
	Version      string
}

// Fingerprint hashes the dataset content. Two fetches of unchanged data share a fingerprint.
func (d Dataset) Fingerprint() string {
	h := fnv.New64a()
	write := func(parts ...string) {
		for _, part := range parts {
			_, _ = h.Write([]byte(part))
			_, _ = h.Write([]byte{0})
		}
	}

	write(d.TournamentID)
	for _, item := range d.Teams {
		write(item.TeamID(), item.Team.Name, item.GroupID, string(item.Status))
		if item.BackendStats != nil {
			s := item.BackendStats
			write(itoa(s.Won), itoa(s.Drawn), itoa(s.Lost), itoa(s.GoalsFor), itoa(s.GoalsAgainst), itoa(s.Points))
		}
	}
	for _, item := range d.Matches {
		write(item.ID, item.HomeTeamID, item.AwayTeamID, itoa(item.HomeScore), itoa(item.AwayScore),
			string(item.Status), string(item.Stage), item.GroupID)
	}
	for _, item := range d.PlayerStats {
		write(item.PlayerID, item.MatchID, item.TeamID, itoa(item.RusherPoints), itoa(item.AttackerPoints),
			itoa(item.DefencePoints), itoa(item.QBPoints))
	}

	return strconv.FormatUint(h.Sum64(), 16)
}

// TeamName resolves a team id against the roster; empty when unknown.
func (d Dataset) TeamName(teamID string) string {
	for _, item := range d.Teams {
		if item.TeamID() == teamID {
			return item.Team.Name
		}
	}
	return ""
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
