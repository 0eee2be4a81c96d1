package httpapi

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

type standingsViewDTO struct {
	TournamentID    string            `json:"tournamentId"`
	Version         string            `json:"version"`
	FetchedAt       string            `json:"fetchedAt,omitempty"`
	Stage           string            `json:"stage"`
	GroupID         string            `json:"groupId,omitempty"`
	Groups          []groupDTO        `json:"groups"`
	Standings       []teamStandingDTO `json:"standings"`
	RejectedMatches int               `json:"rejectedMatches"`
}

type groupDTO struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type teamStandingDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	Source         string `json:"source"`
}

type leaderboardsDTO struct {
	TournamentID string           `json:"tournamentId"`
	Version      string           `json:"version"`
	Stage        string           `json:"stage"`
	Boards       []leaderboardDTO `json:"boards"`
}

type leaderboardDTO struct {
	Category string             `json:"category"`
	Rankings []playerRankingDTO `json:"rankings"`
}

type playerRankingDTO struct {
	Position      int    `json:"position"`
	PlayerID      string `json:"playerId"`
	PlayerName    string `json:"playerName"`
	TeamName      string `json:"teamName,omitempty"`
	TotalPoints   int    `json:"totalPoints"`
	MatchesPlayed int    `json:"matchesPlayed"`
}

type matchPlayerStatsDTO struct {
	MatchID string               `json:"matchId"`
	Stats   []playerMatchStatDTO `json:"stats"`
}

type playerMatchStatDTO struct {
	PlayerID       string `json:"playerId"`
	PlayerName     string `json:"playerName"`
	TeamID         string `json:"teamId,omitempty"`
	TeamName       string `json:"teamName,omitempty"`
	RusherPoints   int    `json:"rusherPoints"`
	AttackerPoints int    `json:"attackerPoints"`
	DefencePoints  int    `json:"defencePoints"`
	QBPoints       int    `json:"qbPoints"`
}

func standingsViewToDTO(view usecase.View) standingsViewDTO {
	groups := make([]groupDTO, 0, len(view.Groups))
	for _, item := range view.Groups {
		groups = append(groups, groupDTO{ID: item.ID, Name: item.Name})
	}
	rows := make([]teamStandingDTO, 0, len(view.Standings))
	for _, item := range view.Standings {
		rows = append(rows, teamStandingToDTO(item))
	}

	out := standingsViewDTO{
		TournamentID:    view.TournamentID,
		Version:         view.Version,
		Stage:           string(view.Filter.Stage),
		GroupID:         view.Filter.GroupID,
		Groups:          groups,
		Standings:       rows,
		RejectedMatches: view.Rejected,
	}
	if !view.FetchedAt.IsZero() {
		out.FetchedAt = view.FetchedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func teamStandingToDTO(item standing.TeamStanding) teamStandingDTO {
	return teamStandingDTO{
		Position:       item.Position,
		TeamID:         item.TeamID,
		TeamName:       item.TeamName,
		Played:         item.Played,
		Won:            item.Won,
		Drawn:          item.Drawn,
		Lost:           item.Lost,
		GoalsFor:       item.GoalsFor,
		GoalsAgainst:   item.GoalsAgainst,
		GoalDifference: item.GoalDifference,
		Points:         item.Points,
		Source:         string(item.Source),
	}
}

func boardToDTO(category leaderboard.Category, rankings []leaderboard.PlayerRanking) leaderboardDTO {
	items := make([]playerRankingDTO, 0, len(rankings))
	for _, item := range rankings {
		items = append(items, playerRankingDTO{
			Position:      item.Position,
			PlayerID:      item.PlayerID,
			PlayerName:    item.PlayerName,
			TeamName:      item.TeamName,
			TotalPoints:   item.TotalPoints,
			MatchesPlayed: item.MatchesPlayed,
		})
	}
	return leaderboardDTO{Category: string(category), Rankings: items}
}

func playerMatchStatToDTO(item leaderboard.PlayerMatchStat) playerMatchStatDTO {
	return playerMatchStatDTO{
		PlayerID:       item.PlayerID,
		PlayerName:     item.PlayerName,
		TeamID:         item.TeamID,
		TeamName:       item.TeamName,
		RusherPoints:   item.RusherPoints,
		AttackerPoints: item.AttackerPoints,
		DefencePoints:  item.DefencePoints,
		QBPoints:       item.QBPoints,
	}
}
