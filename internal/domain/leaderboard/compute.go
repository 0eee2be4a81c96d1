package leaderboard

import "sort"

// Compute folds per-match stats into one ranked category board.
//
// A stat counts when its match is completed, passes the stage filter and carries
// non-zero points for the category. Players without a counting stat are left out.
func Compute(stats []PlayerMatchStat, category Category, filter Filter) []PlayerRanking {
	out := make([]PlayerRanking, 0)
	indexByPlayer := make(map[string]int)

	for _, item := range stats {
		if item.PlayerID == "" || !filter.selects(item) {
			continue
		}
		points := item.Points(category)
		if points == 0 {
			continue
		}

		idx, ok := indexByPlayer[item.PlayerID]
		if !ok {
			idx = len(out)
			indexByPlayer[item.PlayerID] = idx
			out = append(out, PlayerRanking{
				PlayerID:   item.PlayerID,
				PlayerName: item.PlayerName,
				TeamName:   item.TeamName,
				Category:   category,
			})
		}
		out[idx].TotalPoints += points
		out[idx].MatchesPlayed++
		if out[idx].PlayerName == "" {
			out[idx].PlayerName = item.PlayerName
		}
		if out[idx].TeamName == "" {
			out[idx].TeamName = item.TeamName
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		if out[i].PlayerName != out[j].PlayerName {
			return out[i].PlayerName < out[j].PlayerName
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	for i := range out {
		out[i].Position = i + 1
	}

	return out
}

// ComputeBoards computes every category in Categories order.
func ComputeBoards(stats []PlayerMatchStat, filter Filter) []Board {
	boards := make([]Board, 0, len(Categories))
	for _, category := range Categories {
		boards = append(boards, Board{
			Category: category,
			Rankings: Compute(stats, category, filter),
		})
	}
	return boards
}
