package standing

import "github.com/riskibarqy/league-standings/internal/domain/team"

// FromBackendStats turns the partial figures attached to roster records into fallback rows.
// Teams without attached figures are skipped.
func FromBackendStats(teams []team.TournamentTeam) []TeamStanding {
	out := make([]TeamStanding, 0, len(teams))
	for _, item := range teams {
		if item.BackendStats == nil {
			continue
		}
		teamID := item.TeamID()
		if teamID == "" {
			continue
		}
		stats := item.BackendStats
		out = append(out, TeamStanding{
			TeamID:       teamID,
			TeamName:     item.Team.Name,
			Won:          maxInt(stats.Won, 0),
			Drawn:        maxInt(stats.Drawn, 0),
			Lost:         maxInt(stats.Lost, 0),
			GoalsFor:     maxInt(stats.GoalsFor, 0),
			GoalsAgainst: maxInt(stats.GoalsAgainst, 0),
			Points:       maxInt(stats.Points, 0),
		})
	}
	return out
}

// MergeFallback overlays backend figures on a computed table.
//
// A fallback row is used only for a team with no match-derived figures (absent, or Played == 0)
// and only when the fallback itself has played matches. Fallback rows are normalized so
// Played = Won + Drawn + Lost and GoalDifference = GoalsFor - GoalsAgainst hold, then tagged
// SourceBackendFallback. The merged table is re-ranked. Neither input is modified.
func MergeFallback(computed, fallback []TeamStanding) []TeamStanding {
	out := make([]TeamStanding, len(computed))
	copy(out, computed)
	if len(fallback) == 0 {
		return out
	}

	indexByTeam := make(map[string]int, len(out))
	for i, row := range out {
		indexByTeam[row.TeamID] = i
	}

	for _, candidate := range fallback {
		if candidate.TeamID == "" {
			continue
		}
		row := normalizeFallback(candidate)
		if row.Played == 0 {
			continue
		}
		idx, exists := indexByTeam[row.TeamID]
		if !exists {
			indexByTeam[row.TeamID] = len(out)
			out = append(out, row)
			continue
		}
		if out[idx].Played > 0 {
			continue
		}
		if row.TeamName == "" {
			row.TeamName = out[idx].TeamName
		}
		out[idx] = row
	}

	Rank(out)
	return out
}

func normalizeFallback(row TeamStanding) TeamStanding {
	row.Won = maxInt(row.Won, 0)
	row.Drawn = maxInt(row.Drawn, 0)
	row.Lost = maxInt(row.Lost, 0)
	row.Played = row.Won + row.Drawn + row.Lost
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	row.Position = 0
	row.Source = SourceBackendFallback
	return row
}

func maxInt(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
