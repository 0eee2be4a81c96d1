package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

func waitSettled(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("selection did not settle")
	}
}

func TestFilterController_EmptyTournamentIsIdle(t *testing.T) {
	t.Parallel()

	controller := NewFilterController(newStubLoader(), logging.NewNop())
	waitSettled(t, controller.Select(context.Background(), Selection{LeagueID: "league-1"}))

	snapshot := controller.Snapshot()
	if snapshot.State != StateIdle || snapshot.View != nil {
		t.Fatalf("expected idle without view, got %+v", snapshot)
	}
}

func TestFilterController_LoadsThenRefiltersWithoutFetching(t *testing.T) {
	t.Parallel()

	loader := newStubLoader()
	loader.set("t-1", sampleDataset("t-1", "v1"), nil)
	gate := loader.gate("t-1")

	controller := NewFilterController(loader, logging.NewNop())

	var mu sync.Mutex
	var states []ControllerState
	controller.OnChange(func(s ControllerSnapshot) {
		mu.Lock()
		states = append(states, s.State)
		mu.Unlock()
	})

	done := controller.Select(context.Background(), Selection{TournamentID: "t-1"})
	if got := controller.Snapshot().State; got != StateLoading {
		t.Fatalf("expected loading while fetch is pending, got %s", got)
	}
	close(gate)
	waitSettled(t, done)

	snapshot := controller.Snapshot()
	if snapshot.State != StateReady || snapshot.View == nil || snapshot.View.Filter.Stage != match.StageAll {
		t.Fatalf("expected ready with unfiltered view, got %+v", snapshot)
	}

	waitSettled(t, controller.Select(context.Background(), Selection{TournamentID: "t-1", Stage: match.StageFinal}))
	snapshot = controller.Snapshot()
	if snapshot.State != StateReady || snapshot.View.Filter.Stage != match.StageFinal {
		t.Fatalf("expected immediate re-filter, got %+v", snapshot)
	}
	if loader.loadCount("t-1") != 1 {
		t.Fatalf("expected a single fetch, got %d", loader.loadCount("t-1"))
	}

	mu.Lock()
	defer mu.Unlock()
	want := []ControllerState{StateLoading, StateReady, StateReady}
	if len(states) != len(want) {
		t.Fatalf("unexpected transitions: %v", states)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("unexpected transitions: %v", states)
		}
	}
}

func TestFilterController_DiscardsStaleResults(t *testing.T) {
	t.Parallel()

	loader := newStubLoader()
	loader.set("slow", sampleDataset("slow", "v-slow"), nil)
	loader.set("fast", sampleDataset("fast", "v-fast"), nil)
	slowGate := loader.gate("slow")

	controller := NewFilterController(loader, logging.NewNop())

	slowDone := controller.Select(context.Background(), Selection{TournamentID: "slow"})
	fastDone := controller.Select(context.Background(), Selection{TournamentID: "fast"})
	waitSettled(t, fastDone)

	close(slowGate)
	waitSettled(t, slowDone)

	snapshot := controller.Snapshot()
	if snapshot.State != StateReady || snapshot.View == nil || snapshot.View.TournamentID != "fast" {
		t.Fatalf("stale fetch overwrote newer selection: %+v", snapshot)
	}
	if snapshot.Selection.TournamentID != "fast" || snapshot.Seq != 2 {
		t.Fatalf("unexpected selection or sequence: %+v", snapshot)
	}
}

func TestFilterController_StaleFailureIsDiscarded(t *testing.T) {
	t.Parallel()

	loader := newStubLoader()
	loader.set("broken", sampleDataset("broken", "v"), errors.New("boom"))
	loader.set("ok", sampleDataset("ok", "v"), nil)
	gate := loader.gate("broken")

	controller := NewFilterController(loader, logging.NewNop())
	brokenDone := controller.Select(context.Background(), Selection{TournamentID: "broken"})
	waitSettled(t, controller.Select(context.Background(), Selection{TournamentID: "ok"}))
	close(gate)
	waitSettled(t, brokenDone)

	if snapshot := controller.Snapshot(); snapshot.State != StateReady || snapshot.Err != nil {
		t.Fatalf("stale failure must not move controller to error: %+v", snapshot)
	}
}

func TestFilterController_ErrorThenRetry(t *testing.T) {
	t.Parallel()

	loader := newStubLoader()
	loader.set("t-1", sampleDataset("t-1", "v1"), errors.New("backend down"))
	controller := NewFilterController(loader, logging.NewNop())

	waitSettled(t, controller.Select(context.Background(), Selection{TournamentID: "t-1"}))
	snapshot := controller.Snapshot()
	if snapshot.State != StateError || !errors.Is(snapshot.Err, ErrFetchFailure) || snapshot.View != nil {
		t.Fatalf("expected error state with cleared view, got %+v", snapshot)
	}

	// A re-filter while in error must fetch again instead of reusing a dataset.
	loader.set("t-1", sampleDataset("t-1", "v2"), nil)
	waitSettled(t, controller.Retry(context.Background()))

	snapshot = controller.Snapshot()
	if snapshot.State != StateReady || snapshot.View == nil || snapshot.View.Version != "v2" {
		t.Fatalf("expected ready after retry, got %+v", snapshot)
	}
	if loader.loadCount("t-1") != 2 {
		t.Fatalf("expected two fetches, got %d", loader.loadCount("t-1"))
	}

	// Retry outside error is a no-op.
	waitSettled(t, controller.Retry(context.Background()))
	if loader.loadCount("t-1") != 2 {
		t.Fatalf("retry in ready state must not fetch")
	}
}

func TestFilterController_RefreshStaysReady(t *testing.T) {
	t.Parallel()

	loader := newStubLoader()
	loader.set("t-1", sampleDataset("t-1", "v1"), nil)
	controller := NewFilterController(loader, logging.NewNop())
	waitSettled(t, controller.Select(context.Background(), Selection{TournamentID: "t-1"}))

	loader.set("t-1", sampleDataset("t-1", "v2"), nil)
	gate := loader.gate("t-1")
	done := controller.Refresh(context.Background())

	snapshot := controller.Snapshot()
	if snapshot.State != StateReady || snapshot.View == nil || snapshot.View.Version != "v1" {
		t.Fatalf("expected previous view to stay visible during refresh, got %+v", snapshot)
	}
	close(gate)
	waitSettled(t, done)

	snapshot = controller.Snapshot()
	if snapshot.State != StateReady || snapshot.View.Version != "v2" {
		t.Fatalf("expected refreshed view, got %+v", snapshot)
	}
	if len(loader.invalidated) != 1 || loader.invalidated[0] != "t-1" {
		t.Fatalf("expected cache invalidation before refresh, got %v", loader.invalidated)
	}
}
