package memory

import (
	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

const (
	LeagueIDJakartaFlag    = "jkt-flag-league"
	TournamentIDSpringCup  = "jkt-spring-cup-2025"
	TournamentIDSummerOpen = "jkt-summer-open-2025"
	groupIDNorth           = "grp-north"
	groupIDSouth           = "grp-south"
)

func SeedTournaments() []Tournament {
	return []Tournament{
		{
			ID:          TournamentIDSpringCup,
			LeagueID:    LeagueIDJakartaFlag,
			Name:        "Spring Cup 2025",
			Teams:       seedSpringCupTeams(),
			Matches:     seedSpringCupMatches(),
			PlayerStats: seedSpringCupPlayerStats(),
		},
		{
			ID:       TournamentIDSummerOpen,
			LeagueID: LeagueIDJakartaFlag,
			Name:     "Summer Open 2025",
			Teams: []team.TournamentTeam{
				{ID: "so-tt-1", TournamentID: TournamentIDSummerOpen, Team: team.Team{ID: "team-hawks", Name: "Kemang Hawks"}, Status: team.StatusApproved,
					BackendStats: &team.Stats{Played: 2, Won: 2, GoalsFor: 58, GoalsAgainst: 31, Points: 6}},
				{ID: "so-tt-2", TournamentID: TournamentIDSummerOpen, Team: team.Team{ID: "team-rhinos", Name: "Senayan Rhinos"}, Status: team.StatusApproved,
					BackendStats: &team.Stats{Played: 2, Lost: 2, GoalsFor: 31, GoalsAgainst: 58}},
				{ID: "so-tt-3", TournamentID: TournamentIDSummerOpen, Team: team.Team{ID: "team-sharks", Name: "Ancol Sharks"}, Status: team.StatusPending},
			},
			Matches: []match.Payload{
				{"id": "so-m1", "home_team_id": "team-hawks", "away_team_id": "team-sharks", "status": "scheduled", "stage": "regular_round", "scheduled_at": "2025-07-05T09:00:00Z"},
			},
		},
	}
}

func seedSpringCupTeams() []team.TournamentTeam {
	return []team.TournamentTeam{
		{ID: "sc-tt-1", TournamentID: TournamentIDSpringCup, Team: team.Team{ID: "team-hawks", Name: "Kemang Hawks"}, GroupID: groupIDNorth, GroupName: "North", Status: team.StatusApproved},
		{ID: "sc-tt-2", TournamentID: TournamentIDSpringCup, Team: team.Team{ID: "team-rhinos", Name: "Senayan Rhinos"}, GroupID: groupIDNorth, GroupName: "North", Status: team.StatusApproved},
		{ID: "sc-tt-3", TournamentID: TournamentIDSpringCup, Team: team.Team{ID: "team-sharks", Name: "Ancol Sharks"}, GroupID: groupIDSouth, GroupName: "South", Status: team.StatusApproved},
		{ID: "sc-tt-4", TournamentID: TournamentIDSpringCup, Team: team.Team{ID: "team-owls", Name: "Menteng Owls"}, GroupID: groupIDSouth, GroupName: "South", Status: team.StatusApproved},
	}
}

// Spring Cup mixes legacy and current match shapes, as the backend did during its migration.
func seedSpringCupMatches() []match.Payload {
	return []match.Payload{
		{"_id": "sc-m1", "homeTeam": map[string]any{"_id": "sc-tt-1", "team": map[string]any{"_id": "team-hawks"}}, "awayTeam": "sc-tt-2",
			"homeScore": float64(28), "awayScore": float64(14), "status": "completed", "stage": "regular_round", "group": groupIDNorth, "scheduledAt": "2025-03-01T09:00:00Z"},
		{"_id": "sc-m2", "homeTeam": "sc-tt-3", "awayTeam": "sc-tt-4",
			"homeScore": "21", "awayScore": "21", "status": "finished", "stage": "group", "group": map[string]any{"_id": groupIDSouth}, "scheduledAt": "2025-03-01T11:00:00Z"},
		{"id": "sc-m3", "home_team_id": "team-rhinos", "away_team_id": "team-hawks",
			"score": map[string]any{"home": float64(20), "away": float64(27)}, "status": "completed", "stage": "regular_round", "group_id": groupIDNorth, "scheduled_at": "2025-03-08T09:00:00Z"},
		{"id": "sc-m4", "home_team_id": "team-owls", "away_team_id": "team-sharks",
			"home_score": float64(35), "away_score": float64(7), "status": "completed", "stage": "regular_round", "group_id": groupIDSouth, "scheduled_at": "2025-03-08T11:00:00Z"},
		{"id": "sc-m5", "home_team_id": "team-hawks", "away_team_id": "team-sharks",
			"score": map[string]any{"home": float64(24), "away": float64(18)}, "status": "completed", "stage": "semi_final", "scheduled_at": "2025-03-15T09:00:00Z"},
		{"id": "sc-m6", "home_team_id": "team-owls", "away_team_id": "team-rhinos",
			"score": map[string]any{"home": float64(13), "away": float64(19)}, "status": "completed", "stage": "semi_final", "scheduled_at": "2025-03-15T11:00:00Z"},
		{"id": "sc-m7", "home_team_id": "team-hawks", "away_team_id": "team-rhinos",
			"status": "scheduled", "stage": "final", "scheduled_at": "2025-03-22T10:00:00Z"},
	}
}

func seedSpringCupPlayerStats() []leaderboard.PlayerMatchStat {
	hawks := func(id, name, matchID string, rusher, attacker, defence, qb int) leaderboard.PlayerMatchStat {
		return leaderboard.PlayerMatchStat{PlayerID: id, PlayerName: name, TeamID: "team-hawks", MatchID: matchID,
			RusherPoints: rusher, AttackerPoints: attacker, DefencePoints: defence, QBPoints: qb}
	}
	rhinos := func(id, name, matchID string, rusher, attacker, defence, qb int) leaderboard.PlayerMatchStat {
		return leaderboard.PlayerMatchStat{PlayerID: id, PlayerName: name, TeamID: "team-rhinos", MatchID: matchID,
			RusherPoints: rusher, AttackerPoints: attacker, DefencePoints: defence, QBPoints: qb}
	}
	south := func(teamID, id, name, matchID string, rusher, attacker, defence, qb int) leaderboard.PlayerMatchStat {
		return leaderboard.PlayerMatchStat{PlayerID: id, PlayerName: name, TeamID: teamID, MatchID: matchID,
			RusherPoints: rusher, AttackerPoints: attacker, DefencePoints: defence, QBPoints: qb}
	}

	return []leaderboard.PlayerMatchStat{
		hawks("pl-adit", "Aditya Pratama", "sc-m1", 10, 0, 0, 12),
		hawks("pl-bima", "Bima Santoso", "sc-m1", 0, 14, 2, 0),
		rhinos("pl-citra", "Citra Lestari", "sc-m1", 6, 8, 0, 0),
		hawks("pl-adit", "Aditya Pratama", "sc-m3", 14, 0, 0, 9),
		hawks("pl-bima", "Bima Santoso", "sc-m3", 0, 12, 4, 0),
		rhinos("pl-citra", "Citra Lestari", "sc-m3", 0, 14, 0, 0),
		rhinos("pl-dewi", "Dewi Anggraini", "sc-m3", 0, 0, 6, 6),
		south("team-sharks", "pl-eka", "Eka Putra", "sc-m2", 7, 14, 0, 0),
		south("team-owls", "pl-fajar", "Fajar Nugroho", "sc-m2", 0, 0, 3, 15),
		south("team-owls", "pl-fajar", "Fajar Nugroho", "sc-m4", 0, 0, 2, 21),
		south("team-sharks", "pl-eka", "Eka Putra", "sc-m4", 7, 0, 0, 0),
		hawks("pl-adit", "Aditya Pratama", "sc-m5", 0, 6, 0, 18),
		south("team-sharks", "pl-eka", "Eka Putra", "sc-m5", 12, 6, 0, 0),
		rhinos("pl-citra", "Citra Lestari", "sc-m6", 13, 6, 0, 0),
		south("team-owls", "pl-fajar", "Fajar Nugroho", "sc-m6", 0, 0, 0, 13),
	}
}
