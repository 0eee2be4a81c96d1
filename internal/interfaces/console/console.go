package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

var errUsage = errors.New("usage")

const helpText = `commands:
  league <id>          select a league and list its tournaments
  tournament <id>      select a tournament and load it
  stage <stage|all>    regular_round, quarter_final, semi_final, final or all
  group <id|->         narrow the table to one group, "-" clears it
  leaders <category>   show one leaderboard (rusher, attacker, defence, qb)
  retry                retry a failed load
  refresh              reload the current tournament from the source
  show                 print the current table and leaderboards
  help                 print this help
  quit                 leave the console
`

// Console is a line-oriented operator front end over a FilterController.
type Console struct {
	controller *usecase.FilterController
	catalog    tournament.Catalog
	logger     *logging.Logger

	mu  sync.Mutex
	out io.Writer
}

// New returns a console writing to out. catalog may be nil when the source cannot list tournaments.
func New(controller *usecase.FilterController, catalog tournament.Catalog, out io.Writer, logger *logging.Logger) *Console {
	if logger == nil {
		logger = logging.Default()
	}

	return &Console{
		controller: controller,
		catalog:    catalog,
		logger:     logger,
		out:        out,
	}
}

// Run reads commands from in until quit, EOF or ctx cancellation.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.print("league standings console, type help for commands\n")

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	for {
		c.print("> ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			quit, err := c.Execute(ctx, line)
			if err != nil {
				c.print(fmt.Sprintf("error: %v\n", err))
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute runs one command line and waits for any load it triggers to settle.
func (c *Console) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		c.print(helpText)
		return false, nil
	case "show":
		c.render(c.controller.Snapshot(), "")
		return false, nil
	case "league":
		return false, c.selectLeague(ctx, args)
	case "tournament":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: tournament <id>", errUsage)
		}
		sel := c.controller.Snapshot().Selection
		sel.TournamentID = args[0]
		sel.GroupID = ""
		return false, c.apply(ctx, c.controller.Select(ctx, sel))
	case "stage":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: stage <stage|all>", errUsage)
		}
		stage, ok := match.ParseStageFilter(args[0])
		if !ok {
			return false, fmt.Errorf("unknown stage %q", args[0])
		}
		sel := c.controller.Snapshot().Selection
		sel.Stage = stage
		return false, c.apply(ctx, c.controller.Select(ctx, sel))
	case "group":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: group <id|->", errUsage)
		}
		sel := c.controller.Snapshot().Selection
		sel.GroupID = args[0]
		if sel.GroupID == "-" {
			sel.GroupID = ""
		}
		return false, c.apply(ctx, c.controller.Select(ctx, sel))
	case "leaders":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: leaders <category>", errUsage)
		}
		category, ok := leaderboard.ParseCategory(args[0])
		if !ok {
			return false, fmt.Errorf("unknown leaderboard category %q", args[0])
		}
		c.render(c.controller.Snapshot(), category)
		return false, nil
	case "retry":
		if c.controller.Snapshot().State != usecase.StateError {
			return false, errors.New("nothing to retry")
		}
		return false, c.apply(ctx, c.controller.Retry(ctx))
	case "refresh":
		if c.controller.Snapshot().State != usecase.StateReady {
			return false, errors.New("no loaded tournament to refresh")
		}
		return false, c.apply(ctx, c.controller.Refresh(ctx))
	default:
		return false, fmt.Errorf("unknown command %q, type help", cmd)
	}
}

func (c *Console) selectLeague(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: league <id>", errUsage)
	}
	leagueID := args[0]

	if err := c.wait(ctx, c.controller.Select(ctx, usecase.Selection{LeagueID: leagueID})); err != nil {
		return err
	}
	if c.catalog == nil {
		c.print(fmt.Sprintf("league %s selected\n", leagueID))
		return nil
	}

	items, err := c.catalog.ListTournaments(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("list tournaments: %w", err)
	}
	if len(items) == 0 {
		c.print(fmt.Sprintf("league %s has no tournaments\n", leagueID))
		return nil
	}
	c.print(renderCatalog(leagueID, items))
	return nil
}

// apply waits for the controller to settle and prints the result.
func (c *Console) apply(ctx context.Context, done <-chan struct{}) error {
	if err := c.wait(ctx, done); err != nil {
		return err
	}
	snapshot := c.controller.Snapshot()
	if snapshot.State == usecase.StateError {
		c.logger.WarnContext(ctx, "console load failed",
			"tournament_id", snapshot.Selection.TournamentID,
			"error", snapshot.Err,
		)
		return fmt.Errorf("%w (type retry to try again)", snapshot.Err)
	}
	c.render(snapshot, "")
	return nil
}

func (c *Console) wait(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Console) render(snapshot usecase.ControllerSnapshot, category leaderboard.Category) {
	c.print(renderSnapshot(snapshot, category))
}

func (c *Console) print(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, text)
}
