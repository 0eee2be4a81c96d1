package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

// Data sources a tournament can be served from.
const (
	DataSourceMemory   = "memory"
	DataSourceAPI      = "api"
	DataSourcePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	CORSAllowedOrigins             []string
	DataSource                     string
	DBURL                          string
	DBDisablePreparedBinary        bool
	DBMirrorEnabled                bool
	CacheEnabled                   bool
	CacheTTL                       time.Duration
	LeagueAPIBaseURL               string
	LeagueAPIToken                 string
	LeagueAPIVersion               string
	LeagueAPITimeout               time.Duration
	LeagueAPIMaxRetries            int
	LeagueAPICircuitEnabled        bool
	LeagueAPICircuitFailureCount   int
	LeagueAPICircuitOpenTimeout    time.Duration
	LeagueAPICircuitHalfOpenMaxReq int
	RefreshEnabled                 bool
	RefreshInterval                time.Duration
	RefreshTournaments             []string
	RefreshWorkers                 int
	UptraceEnabled                 bool
	UptraceDSN                     string
	UptraceLogsEnabled             bool
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	PprofEnabled                   bool
	PprofAddr                      string
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}

	dataSource, err := parseDataSource(getEnv("DATA_SOURCE", DataSourceMemory))
	if err != nil {
		return Config{}, err
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	dbMirrorEnabled, err := strconv.ParseBool(getEnv("DB_MIRROR_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MIRROR_ENABLED: %w", err)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if (dataSource == DataSourcePostgres || dbMirrorEnabled) && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when DATA_SOURCE=postgres or DB_MIRROR_ENABLED=true")
	}
	if dbMirrorEnabled && dataSource != DataSourceAPI {
		return Config{}, fmt.Errorf("DB_MIRROR_ENABLED requires DATA_SOURCE=api")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", "60s")
	if err != nil {
		return Config{}, err
	}

	leagueAPIBaseURL := strings.TrimSpace(getEnv("LEAGUE_API_BASE_URL", ""))
	if dataSource == DataSourceAPI && leagueAPIBaseURL == "" {
		return Config{}, fmt.Errorf("LEAGUE_API_BASE_URL is required when DATA_SOURCE=api")
	}
	leagueAPIVersion := strings.ToLower(strings.TrimSpace(getEnv("LEAGUE_API_VERSION", "v2")))
	if leagueAPIVersion != "v1" && leagueAPIVersion != "v2" {
		return Config{}, fmt.Errorf("invalid LEAGUE_API_VERSION %q: valid values are v1, v2", leagueAPIVersion)
	}
	leagueAPITimeout, err := getEnvAsDuration("LEAGUE_API_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	leagueAPIMaxRetries, err := getEnvAsInt("LEAGUE_API_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_API_MAX_RETRIES: %w", err)
	}
	if leagueAPIMaxRetries < 0 {
		return Config{}, fmt.Errorf("LEAGUE_API_MAX_RETRIES must be >= 0")
	}
	leagueAPICircuitEnabled, err := strconv.ParseBool(getEnv("LEAGUE_API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_API_CIRCUIT_ENABLED: %w", err)
	}
	leagueAPICircuitFailureCount, err := getEnvAsInt("LEAGUE_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if leagueAPICircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("LEAGUE_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	leagueAPICircuitOpenTimeout, err := getEnvAsDuration("LEAGUE_API_CIRCUIT_OPEN_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	leagueAPICircuitHalfOpenMaxReq, err := getEnvAsInt("LEAGUE_API_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if leagueAPICircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("LEAGUE_API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	refreshEnabled, err := strconv.ParseBool(getEnv("REFRESH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_ENABLED: %w", err)
	}
	refreshInterval, err := getEnvAsDuration("REFRESH_INTERVAL", "5m")
	if err != nil {
		return Config{}, err
	}
	refreshTournaments := splitCSV(getEnv("REFRESH_TOURNAMENTS", ""))
	if refreshEnabled && len(refreshTournaments) == 0 {
		return Config{}, fmt.Errorf("REFRESH_TOURNAMENTS is required when REFRESH_ENABLED=true")
	}
	refreshWorkers, err := getEnvAsInt("REFRESH_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_WORKERS: %w", err)
	}
	if refreshWorkers < 1 {
		return Config{}, fmt.Errorf("REFRESH_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("SERVICE_NAME", "league-standings"),
		ServiceVersion:                 getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DataSource:                     dataSource,
		DBURL:                          dbURL,
		DBDisablePreparedBinary:        dbDisablePreparedBinary,
		DBMirrorEnabled:                dbMirrorEnabled,
		CacheEnabled:                   cacheEnabled,
		CacheTTL:                       cacheTTL,
		LeagueAPIBaseURL:               leagueAPIBaseURL,
		LeagueAPIToken:                 strings.TrimSpace(getEnv("LEAGUE_API_TOKEN", "")),
		LeagueAPIVersion:               leagueAPIVersion,
		LeagueAPITimeout:               leagueAPITimeout,
		LeagueAPIMaxRetries:            leagueAPIMaxRetries,
		LeagueAPICircuitEnabled:        leagueAPICircuitEnabled,
		LeagueAPICircuitFailureCount:   leagueAPICircuitFailureCount,
		LeagueAPICircuitOpenTimeout:    leagueAPICircuitOpenTimeout,
		LeagueAPICircuitHalfOpenMaxReq: leagueAPICircuitHalfOpenMaxReq,
		RefreshEnabled:                 refreshEnabled,
		RefreshInterval:                refreshInterval,
		RefreshTournaments:             refreshTournaments,
		RefreshWorkers:                 refreshWorkers,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		UptraceLogsEnabled:             uptraceLogsEnabled,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		LogLevel:                       logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// getEnvAsDuration rejects zero and negative durations.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseDataSource(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case DataSourceMemory, DataSourceAPI, DataSourcePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid DATA_SOURCE %q: valid values are %s, %s, %s", v, DataSourceMemory, DataSourceAPI, DataSourcePostgres)
	}
}
