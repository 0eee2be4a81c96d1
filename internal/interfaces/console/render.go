package console

import (
	"fmt"
	"text/tabwriter"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

const maxBoardRows = 10

func renderSnapshot(snapshot usecase.ControllerSnapshot, only leaderboard.Category) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	switch snapshot.State {
	case usecase.StateIdle:
		_, _ = buf.WriteString("no tournament selected\n")
		return buf.String()
	case usecase.StateLoading:
		fmt.Fprintf(buf, "loading %s...\n", snapshot.Selection.TournamentID)
		return buf.String()
	case usecase.StateError:
		fmt.Fprintf(buf, "load failed: %v\n", snapshot.Err)
		return buf.String()
	}
	if snapshot.View == nil {
		_, _ = buf.WriteString("no data\n")
		return buf.String()
	}

	view := snapshot.View
	group := view.Filter.GroupID
	if group == "" {
		group = "-"
	}
	fmt.Fprintf(buf, "%s  stage=%s group=%s version=%s", view.TournamentID, view.Filter.Stage, group, view.Version)
	if view.Rejected > 0 {
		fmt.Fprintf(buf, " rejected=%d", view.Rejected)
	}
	_, _ = buf.WriteString("\n")

	if only != "" {
		writeBoard(buf, only, view.Board(only))
		return buf.String()
	}

	writeStandings(buf, view.Standings)
	for _, board := range view.Leaderboards {
		writeBoard(buf, board.Category, board.Rankings)
	}
	return buf.String()
}

func writeStandings(buf *bytebufferpool.ByteBuffer, rows []standing.TeamStanding) {
	_, _ = buf.WriteString("\nstandings\n")
	if len(rows) == 0 {
		_, _ = buf.WriteString("  (no teams)\n")
		return
	}

	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tteam\tP\tW\tD\tL\tGF\tGA\tGD\tPts\t")
	for _, row := range rows {
		name := row.TeamName
		if row.Source == standing.SourceBackendFallback {
			name += " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\t\n",
			row.Position, name, row.Played, row.Won, row.Drawn, row.Lost,
			row.GoalsFor, row.GoalsAgainst, row.GoalDifference, row.Points)
	}
	_ = tw.Flush()
}

func writeBoard(buf *bytebufferpool.ByteBuffer, category leaderboard.Category, rankings []leaderboard.PlayerRanking) {
	fmt.Fprintf(buf, "\n%s leaders\n", category)
	if len(rankings) == 0 {
		_, _ = buf.WriteString("  (no stats)\n")
		return
	}

	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tplayer\tteam\tpts\tmatches")
	for i, row := range rankings {
		if i == maxBoardRows {
			break
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", row.Position, row.PlayerName, row.TeamName, row.TotalPoints, row.MatchesPlayed)
	}
	_ = tw.Flush()
}

func renderCatalog(leagueID string, items []tournament.Summary) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "tournaments in %s\n", leagueID)
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	for _, item := range items {
		fmt.Fprintf(tw, "  %s\t%s\n", item.ID, item.Name)
	}
	_ = tw.Flush()
	return buf.String()
}
