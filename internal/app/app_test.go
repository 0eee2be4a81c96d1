package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:        ":0",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		DataSource:      config.DataSourceMemory,
		CacheEnabled:    true,
		CacheTTL:        time.Minute,
		RefreshInterval: time.Minute,
		RefreshWorkers:  2,
	}
}

func TestNew_MemoryServesStandings(t *testing.T) {
	t.Parallel()

	a, err := New(memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	defer func() { _ = a.Close() }()

	if a.Catalog == nil {
		t.Fatalf("expected memory source to expose a catalog")
	}
	if a.Refresher != nil {
		t.Fatalf("refresher must stay nil when disabled")
	}

	srv, err := a.NewHTTPServer()
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/tournaments/" + memory.TournamentIDSpringCup + "/standings")
	if err != nil {
		t.Fatalf("get standings: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), `"teamId":"team-hawks"`) {
		t.Fatalf("expected hawks in standings, got %s", body)
	}
}

func TestNew_RefresherWired(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.RefreshEnabled = true
	cfg.RefreshTournaments = []string{memory.TournamentIDSpringCup}

	a, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	if a.Refresher == nil {
		t.Fatalf("expected refresher when enabled")
	}

	result, err := a.Refresher.RefreshOnce(context.Background())
	if err != nil {
		t.Fatalf("refresh once: %v", err)
	}
	if result.FailedCount != 0 || result.SuccessCount != 1 {
		t.Fatalf("unexpected refresh failures: %+v", result)
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  func() config.Config
	}{
		{
			name: "unknown data source",
			cfg: func() config.Config {
				cfg := memoryConfig()
				cfg.DataSource = "ftp"
				return cfg
			},
		},
		{
			name: "api without base url",
			cfg: func() config.Config {
				cfg := memoryConfig()
				cfg.DataSource = config.DataSourceAPI
				return cfg
			},
		},
		{
			name: "api with unsupported version",
			cfg: func() config.Config {
				cfg := memoryConfig()
				cfg.DataSource = config.DataSourceAPI
				cfg.LeagueAPIBaseURL = "http://league.local"
				cfg.LeagueAPIVersion = "v9"
				return cfg
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tc.cfg(), logging.NewNop()); err == nil {
				t.Fatalf("expected build error")
			}
		})
	}
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.HTTPAddr = " "
	a, err := New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	if _, err := a.NewHTTPServer(); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
