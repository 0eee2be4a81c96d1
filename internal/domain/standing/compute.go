package standing

import (
	"sort"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

// Compute derives a ranked table from the roster and the completed matches selected by filter.
//
// Every roster team gets a row even when it has not played. When filter.GroupID is set only
// that group's members are seeded. Participants missing from the roster get a row appended
// after the seeded ones, in order of first appearance. Inputs are not modified.
func Compute(teams []team.TournamentTeam, matches []match.Match, filter Filter) []TeamStanding {
	rows := make([]TeamStanding, 0, len(teams))
	indexByTeam := make(map[string]int, len(teams))
	names := make(map[string]string, len(teams))

	for _, item := range teams {
		if teamID := item.TeamID(); teamID != "" {
			if _, seen := names[teamID]; !seen {
				names[teamID] = item.Team.Name
			}
		}
		if !item.InGroup(filter.GroupID) {
			continue
		}
		teamID := item.TeamID()
		if teamID == "" {
			continue
		}
		if _, exists := indexByTeam[teamID]; exists {
			continue
		}
		indexByTeam[teamID] = len(rows)
		rows = append(rows, TeamStanding{
			TeamID:   teamID,
			TeamName: item.Team.Name,
			Source:   SourceComputed,
		})
	}

	rowFor := func(teamID string) *TeamStanding {
		if idx, ok := indexByTeam[teamID]; ok {
			return &rows[idx]
		}
		indexByTeam[teamID] = len(rows)
		rows = append(rows, TeamStanding{TeamID: teamID, TeamName: names[teamID], Source: SourceComputed})
		return &rows[len(rows)-1]
	}

	for _, item := range matches {
		if !filter.selects(item) {
			continue
		}
		home := rowFor(item.HomeTeamID)
		home.apply(item.HomeScore, item.AwayScore)
		away := rowFor(item.AwayTeamID)
		away.apply(item.AwayScore, item.HomeScore)
	}

	for i := range rows {
		rows[i].GoalDifference = rows[i].GoalsFor - rows[i].GoalsAgainst
	}

	Rank(rows)
	return rows
}

// Rank sorts rows by points, goal difference then goals for (all descending) and assigns positions.
// Full ties keep their current relative order.
func Rank(rows []TeamStanding) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
}

func (s *TeamStanding) apply(scored, conceded int) {
	s.Played++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		s.Won++
		s.Points += PointsWin
	case scored == conceded:
		s.Drawn++
		s.Points += PointsDraw
	default:
		s.Lost++
		s.Points += PointsLoss
	}
}
