package leagueapi

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

// parseTournamentTeam reads a v1 ({_id, team:{_id}, group}) or v2 ({id, team_id, group_id, stats}) record.
func parseTournamentTeam(tournamentID string, item map[string]any) (team.TournamentTeam, bool) {
	nested := relationDataMap(item["team"])

	out := team.TournamentTeam{
		ID:           getIDAny(item, "_id", "id"),
		TournamentID: firstNonEmpty(getIDAny(item, "tournament_id", "tournamentId", "tournament"), tournamentID),
		Team: team.Team{
			ID:       firstNonEmpty(getIDAny(nested, "_id", "id"), getIDAny(item, "team_id", "teamId"), getID(item, "team")),
			Name:     firstNonEmpty(getString(nested, "name"), getString(item, "team_name"), getString(item, "name")),
			ImageURL: firstNonEmpty(getString(nested, "image_url"), getString(nested, "imageUrl"), getString(nested, "image"), getString(nested, "logo")),
		},
		Status: team.NormalizeStatus(firstNonEmpty(getString(item, "registration_status"), getString(item, "status"))),
	}

	out.GroupID = firstNonEmpty(getIDAny(item, "group_id", "groupId"), getID(item, "group"))
	out.GroupName = getString(item, "group_name")
	if group := relationDataMap(item["group"]); group != nil {
		out.GroupID = firstNonEmpty(out.GroupID, getIDAny(group, "_id", "id"))
		out.GroupName = firstNonEmpty(out.GroupName, getString(group, "name"))
	}

	if stats := relationDataMap(item["stats"]); stats != nil {
		out.BackendStats = &team.Stats{
			Played:       getIntAny(stats, "played", "matches_played", "matchesPlayed"),
			Won:          getIntAny(stats, "won", "wins"),
			Drawn:        getIntAny(stats, "drawn", "draw", "draws"),
			Lost:         getIntAny(stats, "lost", "losses"),
			GoalsFor:     getIntAny(stats, "goals_for", "goalsFor", "points_for", "pointsFor"),
			GoalsAgainst: getIntAny(stats, "goals_against", "goalsAgainst", "points_against", "pointsAgainst"),
			Points:       getIntAny(stats, "points", "pts"),
		}
	}

	if out.ID == "" && out.Team.ID == "" {
		return team.TournamentTeam{}, false
	}
	return out, true
}

// parsePlayerStats reads v1 camelCase and v2 snake_case stat rows. matchID fills rows that omit it.
func parsePlayerStats(items []map[string]any, matchID string) []leaderboard.PlayerMatchStat {
	out := make([]leaderboard.PlayerMatchStat, 0, len(items))
	for _, item := range items {
		player := relationDataMap(item["player"])
		squad := relationDataMap(item["team"])
		parent := relationDataMap(item["match"])

		row := leaderboard.PlayerMatchStat{
			PlayerID:       firstNonEmpty(getIDAny(player, "_id", "id"), getIDAny(item, "player_id", "playerId"), getID(item, "player")),
			PlayerName:     firstNonEmpty(getString(player, "name"), getString(item, "player_name"), getString(item, "playerName")),
			TeamID:         firstNonEmpty(getIDAny(squad, "_id", "id"), getIDAny(item, "team_id", "teamId"), getID(item, "team")),
			TeamName:       firstNonEmpty(getString(squad, "name"), getString(item, "team_name"), getString(item, "teamName")),
			MatchID:        firstNonEmpty(getIDAny(parent, "_id", "id"), getIDAny(item, "match_id", "matchId"), getID(item, "match"), matchID),
			RusherPoints:   getIntAny(item, "rusher_points", "rusherPoints"),
			AttackerPoints: getIntAny(item, "attacker_points", "attackerPoints"),
			DefencePoints:  getIntAny(item, "defence_points", "defencePoints", "defense_points", "defensePoints"),
			QBPoints:       getIntAny(item, "qb_points", "qbPoints"),
		}
		if row.PlayerID == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	value, ok := src[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func getID(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	switch typed := src[key].(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatInt(int64(typed), 10)
	case int64:
		return strconv.FormatInt(typed, 10)
	case int:
		return strconv.Itoa(typed)
	default:
		return ""
	}
}

func getIDAny(src map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := getID(src, key); value != "" {
			return value
		}
	}
	return ""
}

func getInt(src map[string]any, key string) int {
	if src == nil {
		return 0
	}
	switch typed := src[key].(type) {
	case float64:
		return int(typed)
	case int:
		return typed
	case int64:
		return int(typed)
	case string:
		v, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

func getIntAny(src map[string]any, keys ...string) int {
	for _, key := range keys {
		if value := getInt(src, key); value != 0 {
			return value
		}
	}
	return 0
}

func relationDataMap(raw any) map[string]any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
