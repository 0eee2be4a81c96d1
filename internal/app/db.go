package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	dbPingTimeout        = 5 * time.Second
	maxTracedQueryLength = 512
)

func (a *App) openDB() (*sqlx.DB, error) {
	dsn := postgresDSN(a.cfg.DBURL, a.cfg.DBDisablePreparedBinary, a.cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	a.db = db
	return db, nil
}

// postgresDSN fills connection parameters the service relies on. Values already present in
// the URL win; key/value DSNs are returned untouched.
func postgresDSN(raw string, disablePreparedBinary bool, applicationName string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	changed := false
	setDefault := func(key, value string) {
		if value == "" || query.Get(key) != "" {
			return
		}
		query.Set(key, value)
		changed = true
	}
	if disablePreparedBinary {
		setDefault("disable_prepared_binary_result", "yes")
	}
	setDefault("application_name", strings.TrimSpace(applicationName))
	if !changed {
		return raw
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL accepts both postgres:// URLs and "dbname=..." key/value DSNs.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			if name = strings.Trim(name, `"'`); name != "" {
				return name
			}
		}
	}
	return ""
}

// formatDBQueryForTrace collapses whitespace so span attributes stay on one line.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
