package match

import (
	"strings"
	"time"
)

// Stage is a named phase of tournament progression.
type Stage string

const (
	StageAll          Stage = "all"
	StageRegularRound Stage = "regular_round"
	StageQuarterFinal Stage = "quarter_final"
	StageSemiFinal    Stage = "semi_final"
	StageFinal        Stage = "final"
)

// Stages lists the concrete stages in progression order.
var Stages = []Stage{StageRegularRound, StageQuarterFinal, StageSemiFinal, StageFinal}

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// SourceVersion identifies the backend payload shape a match was read from.
type SourceVersion string

const (
	SourceV1 SourceVersion = "v1"
	SourceV2 SourceVersion = "v2"
)

// Match is the canonical fixture record consumed by the aggregators.
type Match struct {
	ID            string
	HomeTeamID    string
	AwayTeamID    string
	HomeScore     int
	AwayScore     int
	Status        Status
	Stage         Stage
	GroupID       string
	ScheduledAt   time.Time
	SourceVersion SourceVersion
}

func (m Match) IsCompleted() bool {
	return m.Status == StatusCompleted
}

func (m Match) IsDraw() bool {
	return m.HomeScore == m.AwayScore
}

// NormalizeStatus maps backend status spellings onto the canonical set.
// Anything unrecognised is treated as not yet played.
func NormalizeStatus(value string) Status {
	switch normalizeToken(value) {
	case "completed", "complete", "finished", "ft", "done", "played":
		return StatusCompleted
	case "live", "in_progress", "inprogress", "ongoing", "playing":
		return StatusLive
	default:
		return StatusScheduled
	}
}

// ParseStage maps backend stage spellings onto the canonical set.
// An empty value is the regular round; ok is false for unknown values.
func ParseStage(value string) (Stage, bool) {
	switch normalizeToken(value) {
	case "", "regular_round", "regular", "round_robin", "group", "group_stage", "league_round", "rr":
		return StageRegularRound, true
	case "quarter_final", "quarterfinal", "quarter", "qf":
		return StageQuarterFinal, true
	case "semi_final", "semifinal", "semi", "sf":
		return StageSemiFinal, true
	case "final", "grand_final", "f":
		return StageFinal, true
	default:
		return "", false
	}
}

// ParseStageFilter accepts every stage plus "all"; empty means all.
func ParseStageFilter(value string) (Stage, bool) {
	token := normalizeToken(value)
	if token == "" || token == string(StageAll) {
		return StageAll, true
	}
	return ParseStage(value)
}

func normalizeToken(value string) string {
	token := strings.ToLower(strings.TrimSpace(value))
	token = strings.ReplaceAll(token, "-", "_")
	token = strings.ReplaceAll(token, " ", "_")
	return token
}
