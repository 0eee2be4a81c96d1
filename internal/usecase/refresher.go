package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

const (
	defaultRefreshWorkers = 4
	maxRefreshWorkers     = 32
)

type RefreshTaskResult struct {
	TournamentID string
	Version      string
	Status       string
	Message      string
	DurationMs   int64
}

type RefreshResult struct {
	WorkerCount  int
	SuccessCount int
	FailedCount  int
	Tasks        []RefreshTaskResult
}

const (
	refreshStatusSuccess = "success"
	refreshStatusFailed  = "failed"
)

// DatasetRefresher keeps configured tournaments warm by reloading them on an interval.
type DatasetRefresher struct {
	loader      DatasetLoader
	tournaments []string
	interval    time.Duration
	workers     int
	logger      *logging.Logger
}

func NewDatasetRefresher(loader DatasetLoader, tournaments []string, interval time.Duration, workers int, logger *logging.Logger) *DatasetRefresher {
	if logger == nil {
		logger = logging.Default()
	}

	ids := make([]string, 0, len(tournaments))
	seen := make(map[string]struct{}, len(tournaments))
	for _, id := range tournaments {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return &DatasetRefresher{
		loader:      loader,
		tournaments: ids,
		interval:    interval,
		workers:     workers,
		logger:      logger,
	}
}

// Run refreshes once immediately and then on every tick until ctx is done.
func (r *DatasetRefresher) Run(ctx context.Context) error {
	if r.interval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive", ErrInvalidInput)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.RefreshOnce(ctx); err != nil {
			r.logger.WarnContext(ctx, "dataset refresh round failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RefreshOnce invalidates and reloads every configured tournament on a bounded worker pool.
func (r *DatasetRefresher) RefreshOnce(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetRefresher.RefreshOnce")
	defer span.End()

	workerCount := normalizeRefreshWorkerCount(r.workers, len(r.tournaments))
	result := RefreshResult{
		WorkerCount: workerCount,
		Tasks:       make([]RefreshTaskResult, 0, len(r.tournaments)),
	}
	if len(r.tournaments) == 0 {
		return result, nil
	}

	results := make(chan RefreshTaskResult, len(r.tournaments))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, tournamentID := range r.tournaments {
		tournamentID := tournamentID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RefreshTaskResult{TournamentID: tournamentID}

			r.loader.Invalidate(ctx, tournamentID)
			dataset, loadErr := r.loader.Load(ctx, tournamentID)
			if loadErr != nil {
				row.Status = refreshStatusFailed
				row.Message = loadErr.Error()
				failedCount.Add(1)
				r.logger.WarnContext(ctx, "refresh tournament dataset failed", "tournament_id", tournamentID, "error", loadErr)
			} else {
				row.Status = refreshStatusSuccess
				row.Version = dataset.Version
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			workers.Done()
			return RefreshResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].TournamentID < result.Tasks[j].TournamentID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	r.logger.InfoContext(ctx, "dataset refresh round completed",
		"workers", result.WorkerCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)

	return result, nil
}

func normalizeRefreshWorkerCount(requested, tasks int) int {
	count := requested
	if count <= 0 {
		count = defaultRefreshWorkers
	}
	if count > maxRefreshWorkers {
		count = maxRefreshWorkers
	}
	if tasks > 0 && count > tasks {
		count = tasks
	}
	if count < 1 {
		count = 1
	}
	return count
}
