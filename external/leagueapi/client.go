package leagueapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/leaderboard"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/domain/tournament"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const (
	VersionV1 = "v1"
	VersionV2 = "v2"

	maxResponseBytes = 6 << 20
)

var errLeagueAPITransient = crerr.New("league api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Version        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads tournament data from the tournament management backend.
// It speaks both the legacy v1 document API and the v2 relational API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	version      string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
}

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, crerr.New("league api base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, crerr.Newf("invalid league api base url %q", baseURL)
	}

	version := strings.ToLower(strings.TrimSpace(cfg.Version))
	if version == "" {
		version = VersionV2
	}
	if version != VersionV1 && version != VersionV2 {
		return nil, crerr.Newf("unsupported league api version %q", cfg.Version)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = time.Second
	}
	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("league api circuit state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		token:        strings.TrimSpace(cfg.Token),
		version:      version,
		maxRetries:   maxInt(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		logger:       logger,
		breaker:      breaker,
	}, nil
}

func (c *Client) FetchTeams(ctx context.Context, tournamentID string) ([]team.TournamentTeam, error) {
	items, err := c.fetchList(ctx, c.tournamentPath(tournamentID, "teams"))
	if err != nil {
		return nil, fmt.Errorf("fetch teams tournament_id=%s: %w", tournamentID, err)
	}

	out := make([]team.TournamentTeam, 0, len(items))
	for _, item := range items {
		parsed, ok := parseTournamentTeam(tournamentID, item)
		if !ok {
			c.logger.WarnContext(ctx, "skip tournament team without id", "tournament_id", tournamentID)
			continue
		}
		out = append(out, parsed)
	}
	return out, nil
}

func (c *Client) FetchMatches(ctx context.Context, tournamentID string) ([]match.Payload, error) {
	items, err := c.fetchList(ctx, c.tournamentPath(tournamentID, "matches"))
	if err != nil {
		return nil, fmt.Errorf("fetch matches tournament_id=%s: %w", tournamentID, err)
	}

	out := make([]match.Payload, 0, len(items))
	for _, item := range items {
		out = append(out, match.Payload(item))
	}
	return out, nil
}

func (c *Client) FetchPlayerStats(ctx context.Context, tournamentID string) ([]leaderboard.PlayerMatchStat, error) {
	items, err := c.fetchList(ctx, c.tournamentPath(tournamentID, "player-stats"))
	if err != nil {
		return nil, fmt.Errorf("fetch player stats tournament_id=%s: %w", tournamentID, err)
	}
	return parsePlayerStats(items, ""), nil
}

func (c *Client) FetchMatchPlayerStats(ctx context.Context, matchID string) ([]leaderboard.PlayerMatchStat, error) {
	path := fmt.Sprintf("/%s/matches/%s/player-stats", c.version, url.PathEscape(strings.TrimSpace(matchID)))
	items, err := c.fetchList(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch player stats match_id=%s: %w", matchID, err)
	}
	return parsePlayerStats(items, matchID), nil
}

func (c *Client) tournamentPath(tournamentID, resource string) string {
	return fmt.Sprintf("/%s/tournaments/%s/%s", c.version, url.PathEscape(strings.TrimSpace(tournamentID)), resource)
}

// fetchList accepts a bare array, {"data": [...]} or {"data": {"items": [...]}}.
func (c *Client) fetchList(ctx context.Context, path string) ([]map[string]any, error) {
	var decoded any
	if _, err := c.doJSON(ctx, path, &decoded); err != nil {
		return nil, err
	}
	return extractList(decoded), nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) ([]byte, error) {
	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		reqErr := c.breaker.Execute(func() error {
			var err error
			raw, err = c.executeRequest(ctx, fullURL)
			return err
		}, isCircuitFailure)
		return raw, reqErr
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "league api circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("league api is temporarily unavailable: %w", err)
	}
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode league api payload: %w", err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errLeagueAPITransient, "send request: %s", sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errLeagueAPITransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: status=%d", tournament.ErrNotFound, resp.StatusCode)
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errLeagueAPITransient, "league api status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("league api status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("league api request failed")
	}
	c.logger.WarnContext(ctx, "league api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func extractList(decoded any) []map[string]any {
	switch typed := decoded.(type) {
	case []any:
		return mapsOf(typed)
	case map[string]any:
		switch data := typed["data"].(type) {
		case []any:
			return mapsOf(data)
		case map[string]any:
			if items, ok := data["items"].([]any); ok {
				return mapsOf(items)
			}
		}
		if items, ok := typed["items"].([]any); ok {
			return mapsOf(items)
		}
	}
	return []map[string]any{}
}

func mapsOf(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errLeagueAPITransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
