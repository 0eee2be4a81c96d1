package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("APP_LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected app env: %q", cfg.AppEnv)
	}
	if cfg.DataSource != DataSourceMemory {
		t.Fatalf("expected memory data source by default, got %q", cfg.DataSource)
	}
	if cfg.HTTPAddr != ":8080" || cfg.ServiceName != "league-standings" {
		t.Fatalf("unexpected http defaults: addr=%q service=%q", cfg.HTTPAddr, cfg.ServiceName)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache defaults: enabled=%t ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.LeagueAPIVersion != "v2" || cfg.LeagueAPIMaxRetries != 1 {
		t.Fatalf("unexpected league api defaults: version=%q retries=%d", cfg.LeagueAPIVersion, cfg.LeagueAPIMaxRetries)
	}
	if cfg.RefreshEnabled || cfg.RefreshInterval != 5*time.Minute || cfg.RefreshWorkers != 4 {
		t.Fatalf("unexpected refresh defaults: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_DataSourceValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("unknown source", func(t *testing.T) {
		t.Setenv("DATA_SOURCE", "redis")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown DATA_SOURCE")
		}
	})

	t.Run("api requires base url", func(t *testing.T) {
		t.Setenv("DATA_SOURCE", "api")
		t.Setenv("LEAGUE_API_BASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when DATA_SOURCE=api without LEAGUE_API_BASE_URL")
		}
	})

	t.Run("postgres requires db url", func(t *testing.T) {
		t.Setenv("DATA_SOURCE", "postgres")
		t.Setenv("DB_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when DATA_SOURCE=postgres without DB_URL")
		}
	})

	t.Run("mirror requires api source", func(t *testing.T) {
		t.Setenv("DATA_SOURCE", "memory")
		t.Setenv("DB_URL", "postgres://localhost/standings")
		t.Setenv("DB_MIRROR_ENABLED", "true")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when DB_MIRROR_ENABLED=true without DATA_SOURCE=api")
		}
	})

	t.Run("api with mirror", func(t *testing.T) {
		t.Setenv("DATA_SOURCE", " API ")
		t.Setenv("LEAGUE_API_BASE_URL", "https://league.example.com")
		t.Setenv("LEAGUE_API_VERSION", "V1")
		t.Setenv("LEAGUE_API_TOKEN", " secret ")
		t.Setenv("DB_URL", "postgres://localhost/standings")
		t.Setenv("DB_MIRROR_ENABLED", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DataSource != DataSourceAPI || !cfg.DBMirrorEnabled {
			t.Fatalf("unexpected source config: %q mirror=%t", cfg.DataSource, cfg.DBMirrorEnabled)
		}
		if cfg.LeagueAPIVersion != "v1" || cfg.LeagueAPIToken != "secret" {
			t.Fatalf("unexpected league api config: version=%q token=%q", cfg.LeagueAPIVersion, cfg.LeagueAPIToken)
		}
	})
}

func TestLoad_LeagueAPIValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown version", key: "LEAGUE_API_VERSION", value: "v3"},
		{name: "negative retries", key: "LEAGUE_API_MAX_RETRIES", value: "-1"},
		{name: "zero circuit failures", key: "LEAGUE_API_CIRCUIT_FAILURE_COUNT", value: "0"},
		{name: "bad open timeout", key: "LEAGUE_API_CIRCUIT_OPEN_TIMEOUT", value: "soon"},
		{name: "zero timeout", key: "LEAGUE_API_TIMEOUT", value: "0s"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_RefreshConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("enabled requires tournaments", func(t *testing.T) {
		t.Setenv("REFRESH_ENABLED", "true")
		t.Setenv("REFRESH_TOURNAMENTS", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when REFRESH_ENABLED=true without REFRESH_TOURNAMENTS")
		}
	})

	t.Run("enabled with values", func(t *testing.T) {
		t.Setenv("REFRESH_ENABLED", "true")
		t.Setenv("REFRESH_TOURNAMENTS", " t-1, ,t-2 ")
		t.Setenv("REFRESH_INTERVAL", "30s")
		t.Setenv("REFRESH_WORKERS", "2")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.RefreshTournaments) != 2 || cfg.RefreshTournaments[1] != "t-2" {
			t.Fatalf("unexpected refresh tournaments: %+v", cfg.RefreshTournaments)
		}
		if cfg.RefreshInterval != 30*time.Second || cfg.RefreshWorkers != 2 {
			t.Fatalf("unexpected refresh config: interval=%s workers=%d", cfg.RefreshInterval, cfg.RefreshWorkers)
		}
	})

	t.Run("zero workers", func(t *testing.T) {
		t.Setenv("REFRESH_ENABLED", "false")
		t.Setenv("REFRESH_WORKERS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for REFRESH_WORKERS=0")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SERVICE_NAME", "league-standings-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "league-standings-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("only separators", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " , ,")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for empty CORS origins")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})

	t.Run("invalid enabled flag", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "")
		t.Setenv("CACHE_ENABLED", "maybe")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_ENABLED")
		}
	})
}
