package leaderboard

import (
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/match"
)

// Category is a positional leaderboard.
type Category string

const (
	CategoryRusher   Category = "rusher"
	CategoryAttacker Category = "attacker"
	CategoryDefence  Category = "defence"
	CategoryQB       Category = "qb"
)

// Categories is the fixed board order.
var Categories = []Category{CategoryRusher, CategoryAttacker, CategoryDefence, CategoryQB}

func ParseCategory(value string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "rusher", "rush":
		return CategoryRusher, true
	case "attacker", "attack":
		return CategoryAttacker, true
	case "defence", "defense", "defender":
		return CategoryDefence, true
	case "qb", "quarterback":
		return CategoryQB, true
	default:
		return "", false
	}
}

// PlayerMatchStat is one player's contribution to one match.
// Stage and MatchStatus are bound from the normalized parent match.
type PlayerMatchStat struct {
	PlayerID       string
	PlayerName     string
	TeamID         string
	TeamName       string
	MatchID        string
	RusherPoints   int
	AttackerPoints int
	DefencePoints  int
	QBPoints       int
	Stage          match.Stage
	MatchStatus    match.Status
}

// Points returns the stat's points for one category.
func (s PlayerMatchStat) Points(category Category) int {
	switch category {
	case CategoryRusher:
		return s.RusherPoints
	case CategoryAttacker:
		return s.AttackerPoints
	case CategoryDefence:
		return s.DefencePoints
	case CategoryQB:
		return s.QBPoints
	default:
		return 0
	}
}

type PlayerRanking struct {
	PlayerID      string
	PlayerName    string
	TeamName      string
	Category      Category
	TotalPoints   int
	MatchesPlayed int
	Position      int
}

// Board is one category's ranked leaderboard.
type Board struct {
	Category Category
	Rankings []PlayerRanking
}

// Filter narrows contributing stats by the parent match's stage. Empty Stage means all stages.
type Filter struct {
	Stage match.Stage
}

func (f Filter) selects(s PlayerMatchStat) bool {
	if s.MatchStatus != "" && s.MatchStatus != match.StatusCompleted {
		return false
	}
	if f.Stage == "" || f.Stage == match.StageAll {
		return true
	}
	return s.Stage == f.Stage
}
