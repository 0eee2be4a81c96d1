package postgres

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/rawdata"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

type snapshotTableModel struct {
	ID              int64      `db:"id"`
	Source          string     `db:"source"`
	EntityType      string     `db:"entity_type"`
	EntityKey       string     `db:"entity_key"`
	TournamentID    string     `db:"tournament_public_id"`
	Payload         string     `db:"payload"`
	PayloadHash     string     `db:"payload_hash"`
	SourceUpdatedAt *time.Time `db:"source_updated_at"`
	Ordinal         int        `db:"ordinal"`
	IngestedAt      time.Time  `db:"ingested_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

type teamSnapshot struct {
	ID        string             `json:"id"`
	TeamID    string             `json:"teamId"`
	TeamName  string             `json:"teamName"`
	ImageURL  string             `json:"imageUrl,omitempty"`
	GroupID   string             `json:"groupId,omitempty"`
	GroupName string             `json:"groupName,omitempty"`
	Status    string             `json:"status,omitempty"`
	Stats     *teamStatsSnapshot `json:"stats,omitempty"`
}

type teamStatsSnapshot struct {
	Played       int `json:"played"`
	Won          int `json:"won"`
	Drawn        int `json:"drawn"`
	Lost         int `json:"lost"`
	GoalsFor     int `json:"goalsFor"`
	GoalsAgainst int `json:"goalsAgainst"`
	Points       int `json:"points"`
}

type playerStatSnapshot struct {
	PlayerID       string `json:"playerId"`
	PlayerName     string `json:"playerName"`
	TeamID         string `json:"teamId,omitempty"`
	TeamName       string `json:"teamName,omitempty"`
	MatchID        string `json:"matchId"`
	RusherPoints   int    `json:"rusherPoints"`
	AttackerPoints int    `json:"attackerPoints"`
	DefencePoints  int    `json:"defencePoints"`
	QBPoints       int    `json:"qbPoints"`
	Stage          string `json:"stage,omitempty"`
	MatchStatus    string `json:"matchStatus,omitempty"`
}

func newPayload(source, entityType, entityKey, tournamentID string, value any) (rawdata.Payload, error) {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return rawdata.Payload{}, fmt.Errorf("encode %s snapshot %s: %w", entityType, entityKey, err)
	}
	hash := sha256.Sum256(raw)
	return rawdata.Payload{
		Source:       source,
		EntityType:   entityType,
		EntityKey:    entityKey,
		TournamentID: tournamentID,
		PayloadJSON:  string(raw),
		PayloadHash:  hex.EncodeToString(hash[:]),
	}, nil
}

func teamPayloads(source, tournamentID string, items []team.TournamentTeam) ([]rawdata.Payload, error) {
	out := make([]rawdata.Payload, 0, len(items))
	for _, item := range items {
		snap := teamSnapshot{
			ID:        item.ID,
			TeamID:    item.Team.ID,
			TeamName:  item.Team.Name,
			ImageURL:  item.Team.ImageURL,
			GroupID:   item.GroupID,
			GroupName: item.GroupName,
			Status:    string(item.Status),
		}
		if s := item.BackendStats; s != nil {
			snap.Stats = &teamStatsSnapshot{
				Played: s.Played, Won: s.Won, Drawn: s.Drawn, Lost: s.Lost,
				GoalsFor: s.GoalsFor, GoalsAgainst: s.GoalsAgainst, Points: s.Points,
			}
		}
		payload, err := newPayload(source, rawdata.EntityTeams, "team:"+item.TeamID(), tournamentID, snap)
		if err != nil {
			return nil, err
		}
		out = append(out, payload)
	}
	return out, nil
}

func decodeTeam(item rawdata.Payload) (team.TournamentTeam, error) {
	var snap teamSnapshot
	if err := sonic.UnmarshalString(item.PayloadJSON, &snap); err != nil {
		return team.TournamentTeam{}, fmt.Errorf("decode team snapshot %s: %w", item.EntityKey, err)
	}
	out := team.TournamentTeam{
		ID:           snap.ID,
		TournamentID: item.TournamentID,
		Team:         team.Team{ID: snap.TeamID, Name: snap.TeamName, ImageURL: snap.ImageURL},
		GroupID:      snap.GroupID,
		GroupName:    snap.GroupName,
		Status:       team.RegistrationStatus(snap.Status),
	}
	if s := snap.Stats; s != nil {
		out.BackendStats = &team.Stats{
			Played: s.Played, Won: s.Won, Drawn: s.Drawn, Lost: s.Lost,
			GoalsFor: s.GoalsFor, GoalsAgainst: s.GoalsAgainst, Points: s.Points,
		}
	}
	return out, nil
}

// matchPayloads stores match documents verbatim so the normalizer sees the backend shape on replay.
func matchPayloads(source, tournamentID string, items []match.Payload) ([]rawdata.Payload, error) {
	out := make([]rawdata.Payload, 0, len(items))
	for i, item := range items {
		key := "match:" + matchKey(item, i)
		payload, err := newPayload(source, rawdata.EntityMatches, key, tournamentID, map[string]any(item))
		if err != nil {
			return nil, err
		}
		out = append(out, payload)
	}
	return out, nil
}

func decodeMatch(item rawdata.Payload) (match.Payload, error) {
	var out map[string]any
	if err := sonic.UnmarshalString(item.PayloadJSON, &out); err != nil {
		return nil, fmt.Errorf("decode match snapshot %s: %w", item.EntityKey, err)
	}
	return match.Payload(out), nil
}

func matchKey(item match.Payload, index int) string {
	for _, key := range []string{"id", "_id", "matchId", "match_id"} {
		switch typed := item[key].(type) {
		case string:
			if typed != "" {
				return typed
			}
		case float64:
			return strconv.FormatInt(int64(typed), 10)
		case int:
			return strconv.Itoa(typed)
		case int64:
			return strconv.FormatInt(typed, 10)
		}
	}
	return "#" + strconv.Itoa(index)
}

func statKey(matchID, playerID string) string {
	return "stat:" + matchID + ":" + playerID
}

func statPayloads(source, tournamentID string, items []leaderboard.PlayerMatchStat) ([]rawdata.Payload, error) {
	out := make([]rawdata.Payload, 0, len(items))
	for _, item := range items {
		snap := playerStatSnapshot{
			PlayerID:       item.PlayerID,
			PlayerName:     item.PlayerName,
			TeamID:         item.TeamID,
			TeamName:       item.TeamName,
			MatchID:        item.MatchID,
			RusherPoints:   item.RusherPoints,
			AttackerPoints: item.AttackerPoints,
			DefencePoints:  item.DefencePoints,
			QBPoints:       item.QBPoints,
			Stage:          string(item.Stage),
			MatchStatus:    string(item.MatchStatus),
		}
		payload, err := newPayload(source, rawdata.EntityPlayerStats, statKey(item.MatchID, item.PlayerID), tournamentID, snap)
		if err != nil {
			return nil, err
		}
		out = append(out, payload)
	}
	return out, nil
}

func decodeStat(item rawdata.Payload) (leaderboard.PlayerMatchStat, error) {
	var snap playerStatSnapshot
	if err := sonic.UnmarshalString(item.PayloadJSON, &snap); err != nil {
		return leaderboard.PlayerMatchStat{}, fmt.Errorf("decode player stat snapshot %s: %w", item.EntityKey, err)
	}
	return leaderboard.PlayerMatchStat{
		PlayerID:       snap.PlayerID,
		PlayerName:     snap.PlayerName,
		TeamID:         snap.TeamID,
		TeamName:       snap.TeamName,
		MatchID:        snap.MatchID,
		RusherPoints:   snap.RusherPoints,
		AttackerPoints: snap.AttackerPoints,
		DefencePoints:  snap.DefencePoints,
		QBPoints:       snap.QBPoints,
		Stage:          match.Stage(snap.Stage),
		MatchStatus:    match.Status(snap.MatchStatus),
	}, nil
}
