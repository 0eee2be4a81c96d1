package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
)

// ViewFilter is the stage/group selection a view is built for.
type ViewFilter struct {
	Stage   match.Stage
	GroupID string
}

// Group is one tournament sub-group as found on the roster.
type Group struct {
	ID   string
	Name string
}

// View is the presentation contract: one table and every category board for a filter.
type View struct {
	TournamentID string
	Version      string
	FetchedAt    time.Time
	Filter       ViewFilter
	Groups       []Group
	Standings    []standing.TeamStanding
	Leaderboards []leaderboard.Board
	Rejected     int
}

// ParseViewFilter validates raw stage and group values.
func ParseViewFilter(stage, groupID string) (ViewFilter, error) {
	parsed, ok := match.ParseStageFilter(stage)
	if !ok {
		return ViewFilter{}, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, stage)
	}
	return ViewFilter{Stage: parsed, GroupID: strings.TrimSpace(groupID)}, nil
}

// BuildView derives standings and leaderboards from a dataset. Backend partial figures are
// merged only into the tournament-wide table.
func BuildView(dataset tournament.Dataset, filter ViewFilter) View {
	if filter.Stage == "" {
		filter.Stage = match.StageAll
	}

	tableFilter := standing.Filter{Stage: filter.Stage, GroupID: filter.GroupID}
	rows := standing.Compute(dataset.Teams, dataset.Matches, tableFilter)
	if tableFilter.IsUnfiltered() {
		rows = standing.MergeFallback(rows, standing.FromBackendStats(dataset.Teams))
	}

	return View{
		TournamentID: dataset.TournamentID,
		Version:      dataset.Version,
		FetchedAt:    dataset.FetchedAt,
		Filter:       filter,
		Groups:       groupsOf(dataset),
		Standings:    rows,
		Leaderboards: leaderboard.ComputeBoards(dataset.PlayerStats, leaderboard.Filter{Stage: filter.Stage}),
		Rejected:     dataset.Rejected,
	}
}

// Board returns the rankings for one category, or nil.
func (v View) Board(category leaderboard.Category) []leaderboard.PlayerRanking {
	for _, board := range v.Leaderboards {
		if board.Category == category {
			return board.Rankings
		}
	}
	return nil
}

// Clone returns a deep copy so callers never share backing arrays with the memo.
func (v View) Clone() View {
	out := v
	out.Groups = append([]Group(nil), v.Groups...)
	out.Standings = append([]standing.TeamStanding(nil), v.Standings...)
	out.Leaderboards = make([]leaderboard.Board, 0, len(v.Leaderboards))
	for _, board := range v.Leaderboards {
		out.Leaderboards = append(out.Leaderboards, leaderboard.Board{
			Category: board.Category,
			Rankings: append([]leaderboard.PlayerRanking(nil), board.Rankings...),
		})
	}
	return out
}

func groupsOf(dataset tournament.Dataset) []Group {
	seen := make(map[string]struct{})
	out := make([]Group, 0)
	for _, item := range dataset.Teams {
		groupID := strings.TrimSpace(item.GroupID)
		if groupID == "" {
			continue
		}
		if _, ok := seen[groupID]; ok {
			continue
		}
		seen[groupID] = struct{}{}
		out = append(out, Group{ID: groupID, Name: strings.TrimSpace(item.GroupName)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
