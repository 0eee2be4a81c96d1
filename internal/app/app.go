package app

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/league-standings/external/leagueapi"
	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-standings/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

const maxMemoizedViews = 512

// App holds the wired services shared by the HTTP API and the console.
type App struct {
	cfg    config.Config
	logger *logging.Logger
	db     *sqlx.DB

	Source    tournament.Source
	Catalog   tournament.Catalog
	Datasets  *usecase.DatasetService
	Standings *usecase.StandingsService
	Refresher *usecase.DatasetRefresher
}

// New builds the source chain selected by cfg.DataSource and the services on top of it.
func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{cfg: cfg, logger: logger}

	source, err := a.buildSource()
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if catalog, ok := source.(tournament.Catalog); ok {
		a.Catalog = catalog
	}
	if cfg.CacheEnabled {
		source = cache.NewTournamentSource(source, basecache.NewStore(cfg.CacheTTL))
	}
	a.Source = source

	viewTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		viewTTL = time.Minute
	}
	a.Datasets = usecase.NewDatasetService(source, logger)
	a.Standings = usecase.NewStandingsService(a.Datasets, a.Datasets, basecache.NewStore(viewTTL, basecache.WithMaxEntries(maxMemoizedViews)))

	if cfg.RefreshEnabled {
		a.Refresher = usecase.NewDatasetRefresher(a.Datasets, cfg.RefreshTournaments, cfg.RefreshInterval, cfg.RefreshWorkers, logger)
	}

	logger.Info("application wired",
		"data_source", cfg.DataSource,
		"cache_enabled", cfg.CacheEnabled,
		"mirror_enabled", cfg.DBMirrorEnabled,
		"refresh_enabled", cfg.RefreshEnabled,
	)
	return a, nil
}

// NewHTTPServer wraps the standings service in the HTTP router.
func (a *App) NewHTTPServer() (*http.Server, error) {
	if strings.TrimSpace(a.cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(a.Standings, a.logger)
	router := httpapi.NewRouter(handler, a.logger, a.cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}

// Close releases the database handle, if one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *App) buildSource() (tournament.Source, error) {
	switch a.cfg.DataSource {
	case config.DataSourceMemory:
		return memory.NewTournamentSource(memory.SeedTournaments()), nil
	case config.DataSourcePostgres:
		db, err := a.openDB()
		if err != nil {
			return nil, err
		}
		return postgres.NewSnapshotSource(postgres.NewSnapshotRepository(db)), nil
	case config.DataSourceAPI:
		client, err := leagueapi.NewClient(leagueapi.ClientConfig{
			BaseURL:    a.cfg.LeagueAPIBaseURL,
			Token:      a.cfg.LeagueAPIToken,
			Version:    a.cfg.LeagueAPIVersion,
			Timeout:    a.cfg.LeagueAPITimeout,
			MaxRetries: a.cfg.LeagueAPIMaxRetries,
			Logger:     a.logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          a.cfg.LeagueAPICircuitEnabled,
				FailureThreshold: a.cfg.LeagueAPICircuitFailureCount,
				OpenTimeout:      a.cfg.LeagueAPICircuitOpenTimeout,
				HalfOpenMaxReq:   a.cfg.LeagueAPICircuitHalfOpenMaxReq,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("build league api client: %w", err)
		}
		if !a.cfg.DBMirrorEnabled {
			return client, nil
		}
		db, err := a.openDB()
		if err != nil {
			return nil, err
		}
		return postgres.NewMirroredSource(client, postgres.NewSnapshotRepository(db), "league_api", a.logger), nil
	default:
		return nil, fmt.Errorf("unsupported data source %q", a.cfg.DataSource)
	}
}
