package standing

import (
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/match"
)

// Source tags where a row's figures came from.
type Source string

const (
	SourceComputed        Source = "computed"
	SourceBackendFallback Source = "backend_fallback"
)

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// TeamStanding is one derived table row. It is never persisted.
type TeamStanding struct {
	TeamID         string
	TeamName       string
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Position       int
	Source         Source
}

// Filter narrows the matches a table is computed from.
// An empty Stage behaves like match.StageAll and an empty GroupID matches every group.
type Filter struct {
	Stage   match.Stage
	GroupID string
}

// IsUnfiltered reports whether the filter selects the whole tournament.
func (f Filter) IsUnfiltered() bool {
	return (f.Stage == "" || f.Stage == match.StageAll) && strings.TrimSpace(f.GroupID) == ""
}

func (f Filter) selects(m match.Match) bool {
	if !m.IsCompleted() {
		return false
	}
	if f.Stage != "" && f.Stage != match.StageAll && m.Stage != f.Stage {
		return false
	}
	groupID := strings.TrimSpace(f.GroupID)
	if groupID != "" && m.GroupID != groupID {
		return false
	}
	return true
}
