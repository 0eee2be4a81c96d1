package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

type ControllerState string

const (
	StateIdle    ControllerState = "idle"
	StateLoading ControllerState = "loading"
	StateReady   ControllerState = "ready"
	StateError   ControllerState = "error"
)

// Selection is what the operator is looking at.
type Selection struct {
	LeagueID     string
	TournamentID string
	Stage        match.Stage
	GroupID      string
}

func (s Selection) normalized() Selection {
	s.LeagueID = strings.TrimSpace(s.LeagueID)
	s.TournamentID = strings.TrimSpace(s.TournamentID)
	s.GroupID = strings.TrimSpace(s.GroupID)
	if s.Stage == "" {
		s.Stage = match.StageAll
	}
	return s
}

func (s Selection) viewFilter() ViewFilter {
	return ViewFilter{Stage: s.Stage, GroupID: s.GroupID}
}

// ControllerSnapshot is a consistent copy of the controller state.
type ControllerSnapshot struct {
	State     ControllerState
	Selection Selection
	Seq       uint64
	View      *View
	Err       error
}

// FilterController owns the current selection and keeps a derived view in sync with it.
//
// Fetches run in their own goroutine and are never aborted. Each fetch carries the sequence
// number current when it started; a result is applied only while that number is still the
// latest, so a slow response for an earlier selection can never overwrite a newer one.
type FilterController struct {
	loader DatasetLoader
	logger *logging.Logger

	mu        sync.Mutex
	state     ControllerState
	selection Selection
	seq       uint64
	loadingID string
	inflight  chan struct{}
	dataset   *tournament.Dataset
	view      *View
	err       error
	onChange  func(ControllerSnapshot)
}

func NewFilterController(loader DatasetLoader, logger *logging.Logger) *FilterController {
	if logger == nil {
		logger = logging.Default()
	}

	return &FilterController{
		loader: loader,
		logger: logger,
		state:  StateIdle,
	}
}

// OnChange registers a callback invoked after every state transition, outside the lock.
func (c *FilterController) OnChange(fn func(ControllerSnapshot)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *FilterController) Snapshot() ControllerSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Select applies a new selection. The returned channel closes once the selection has settled.
func (c *FilterController) Select(ctx context.Context, sel Selection) <-chan struct{} {
	sel = sel.normalized()

	c.mu.Lock()
	c.selection = sel

	if sel.TournamentID == "" {
		c.seq++
		c.state = StateIdle
		c.dataset = nil
		c.view = nil
		c.err = nil
		c.loadingID = ""
		c.inflight = nil
		return c.settleLocked()
	}

	if c.dataset != nil && c.dataset.TournamentID == sel.TournamentID && c.state != StateError && c.state != StateLoading {
		view := BuildView(*c.dataset, sel.viewFilter())
		c.view = &view
		c.state = StateReady
		return c.settleLocked()
	}

	// Same tournament already in flight: the pending result will be built for the new filter.
	if c.state == StateLoading && c.loadingID == sel.TournamentID && c.inflight != nil {
		done := c.inflight
		snapshot, notify := c.snapshotLocked(), c.onChange
		c.mu.Unlock()
		if notify != nil {
			notify(snapshot)
		}
		return done
	}

	return c.startFetchLocked(ctx, false)
}

// Retry re-issues the fetch for the current selection after a failure.
func (c *FilterController) Retry(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	if c.state != StateError || c.selection.TournamentID == "" {
		c.mu.Unlock()
		return closedChan()
	}
	return c.startFetchLocked(ctx, false)
}

// Refresh invalidates cached data for the current tournament and refetches it in the background.
// The current view stays visible until the new one is applied.
func (c *FilterController) Refresh(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	if c.state != StateReady || c.selection.TournamentID == "" {
		c.mu.Unlock()
		return closedChan()
	}
	tournamentID := c.selection.TournamentID
	c.mu.Unlock()

	c.loader.Invalidate(ctx, tournamentID)

	c.mu.Lock()
	if c.state != StateReady || c.selection.TournamentID != tournamentID {
		c.mu.Unlock()
		return closedChan()
	}
	return c.startFetchLocked(ctx, true)
}

// startFetchLocked must be called with c.mu held; it releases it.
func (c *FilterController) startFetchLocked(ctx context.Context, background bool) <-chan struct{} {
	c.seq++
	seq := c.seq
	tournamentID := c.selection.TournamentID
	done := make(chan struct{})

	c.loadingID = tournamentID
	c.inflight = done
	if !background {
		c.state = StateLoading
		c.err = nil
		if c.dataset == nil || c.dataset.TournamentID != tournamentID {
			c.dataset = nil
			c.view = nil
		}
	}

	snapshot, notify := c.snapshotLocked(), c.onChange
	c.mu.Unlock()
	if notify != nil {
		notify(snapshot)
	}

	go c.fetch(ctx, seq, tournamentID, done)
	return done
}

func (c *FilterController) fetch(ctx context.Context, seq uint64, tournamentID string, done chan struct{}) {
	dataset, err := c.loader.Load(ctx, tournamentID)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.DebugContext(ctx, "discard stale tournament fetch",
			"tournament_id", tournamentID,
			"seq", seq,
			"error", err,
		)
		close(done)
		return
	}

	c.loadingID = ""
	c.inflight = nil
	if err != nil {
		c.state = StateError
		c.err = fmt.Errorf("%w: tournament=%s: %w", ErrFetchFailure, tournamentID, err)
		c.dataset = nil
		c.view = nil
		c.logger.WarnContext(ctx, "tournament fetch failed", "tournament_id", tournamentID, "error", err)
	} else {
		view := BuildView(dataset, c.selection.viewFilter())
		c.dataset = &dataset
		c.view = &view
		c.err = nil
		c.state = StateReady
	}

	snapshot, notify := c.snapshotLocked(), c.onChange
	c.mu.Unlock()
	if notify != nil {
		notify(snapshot)
	}
	close(done)
}

// settleLocked releases c.mu, notifies and returns a closed channel.
func (c *FilterController) settleLocked() <-chan struct{} {
	snapshot, notify := c.snapshotLocked(), c.onChange
	c.mu.Unlock()
	if notify != nil {
		notify(snapshot)
	}
	return closedChan()
}

func (c *FilterController) snapshotLocked() ControllerSnapshot {
	out := ControllerSnapshot{
		State:     c.state,
		Selection: c.selection,
		Seq:       c.seq,
		Err:       c.err,
	}
	if c.view != nil {
		view := c.view.Clone()
		out.View = &view
	}
	return out
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
