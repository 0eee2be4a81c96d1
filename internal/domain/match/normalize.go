package match

import (
	"errors"
	"fmt"
)

var ErrMalformedMatch = errors.New("malformed match")

// Rejection records why one payload was dropped from aggregation.
type Rejection struct {
	Index   int
	MatchID string
	Reason  string
}

// Normalize converts one backend payload (v1 or v2 shape) into a canonical Match.
// Payloads that cannot contribute to any standing row return ErrMalformedMatch.
func Normalize(p Payload) (Match, error) {
	if len(p) == 0 {
		return Match{}, fmt.Errorf("%w: empty payload", ErrMalformedMatch)
	}

	version := detectVersion(p)
	id := getIDAny(p, "id", "_id", "matchId", "match_id")

	homeTeamID := resolveSideTeamID(p, "home")
	if homeTeamID == "" {
		return Match{}, fmt.Errorf("%w: match %q missing home team id", ErrMalformedMatch, id)
	}
	awayTeamID := resolveSideTeamID(p, "away")
	if awayTeamID == "" {
		return Match{}, fmt.Errorf("%w: match %q missing away team id", ErrMalformedMatch, id)
	}
	if homeTeamID == awayTeamID {
		return Match{}, fmt.Errorf("%w: match %q has the same home and away team %q", ErrMalformedMatch, id, homeTeamID)
	}

	rawStage := getString(p, "stage")
	if rawStage == "" {
		if stageObj := relationDataMap(p["stage"]); stageObj != nil {
			rawStage = firstNonEmpty(getString(stageObj, "code"), getString(stageObj, "name"))
		}
	}
	stage, ok := ParseStage(rawStage)
	if !ok {
		return Match{}, fmt.Errorf("%w: match %q has unknown stage %q", ErrMalformedMatch, id, rawStage)
	}

	status := NormalizeStatus(getString(p, "status"))
	homeScore, homeOK, awayScore, awayOK := resolveScores(p)
	if status == StatusCompleted {
		if !homeOK || !awayOK {
			return Match{}, fmt.Errorf("%w: completed match %q missing score", ErrMalformedMatch, id)
		}
		if homeScore < 0 || awayScore < 0 {
			return Match{}, fmt.Errorf("%w: completed match %q has negative score", ErrMalformedMatch, id)
		}
	}

	return Match{
		ID:            id,
		HomeTeamID:    homeTeamID,
		AwayTeamID:    awayTeamID,
		HomeScore:     homeScore,
		AwayScore:     awayScore,
		Status:        status,
		Stage:         stage,
		GroupID:       resolveGroupID(p),
		ScheduledAt:   parseDateTime(firstNonEmpty(getString(p, "scheduledAt"), getString(p, "scheduled_at"), getString(p, "date"))),
		SourceVersion: version,
	}, nil
}

// NormalizeAll never fails: malformed payloads are returned as rejections.
// A later payload with an id already seen replaces the earlier one in place.
func NormalizeAll(payloads []Payload) ([]Match, []Rejection) {
	out := make([]Match, 0, len(payloads))
	var rejected []Rejection
	indexByID := make(map[string]int, len(payloads))

	for i, p := range payloads {
		item, err := Normalize(p)
		if err != nil {
			rejected = append(rejected, Rejection{
				Index:   i,
				MatchID: getIDAny(p, "id", "_id", "matchId", "match_id"),
				Reason:  err.Error(),
			})
			continue
		}
		if item.ID != "" {
			if pos, seen := indexByID[item.ID]; seen {
				out[pos] = item
				continue
			}
			indexByID[item.ID] = len(out)
		}
		out = append(out, item)
	}

	return out, rejected
}

func detectVersion(p Payload) SourceVersion {
	if _, ok := p["_id"]; ok {
		return SourceV1
	}
	if _, ok := p["homeTeam"]; ok {
		return SourceV1
	}
	return SourceV2
}

func resolveSideTeamID(p Payload, side string) string {
	for _, key := range []string{side + "Team", side + "_team"} {
		raw, ok := p[key]
		if !ok || raw == nil {
			continue
		}
		if id := getID(map[string]any{key: raw}, key); id != "" {
			return id
		}
		obj := relationDataMap(raw)
		if obj == nil {
			continue
		}
		if nested := relationDataMap(obj["team"]); nested != nil {
			if id := getIDAny(nested, "_id", "id"); id != "" {
				return id
			}
		}
		if id := getIDAny(obj, "teamId", "team_id", "_id", "id"); id != "" {
			return id
		}
	}
	return getIDAny(p, side+"_team_id", side+"TeamId")
}

func resolveScores(p Payload) (int, bool, int, bool) {
	if score := relationDataMap(p["score"]); score != nil {
		home, homeOK := getInt(score, "home")
		away, awayOK := getInt(score, "away")
		if homeOK || awayOK {
			return home, homeOK, away, awayOK
		}
	}
	home, homeOK := getIntAny(p, "homeScore", "home_score")
	away, awayOK := getIntAny(p, "awayScore", "away_score")
	return home, homeOK, away, awayOK
}

func resolveGroupID(p Payload) string {
	if id := getIDAny(p, "group_id", "groupId"); id != "" {
		return id
	}
	if id := getID(p, "group"); id != "" {
		return id
	}
	if obj := relationDataMap(p["group"]); obj != nil {
		return getIDAny(obj, "_id", "id")
	}
	return ""
}
