package livefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	scoredomain "github.com/Black-And-White-Club/majors-pool/app/modules/score/domain"
	"github.com/Black-And-White-Club/majors-pool/pkg/observability/attr"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the RapidAPI live-golf-data endpoint.
	DefaultBaseURL = "https://live-golf-data.p.rapidapi.com"
	// DefaultHost is sent as X-RapidAPI-Host.
	DefaultHost = "live-golf-data.p.rapidapi.com"

	orgPGATour     = "1"
	scheduleTTL    = 12 * time.Hour
	maxErrorBody   = 512
	defaultTimeout = 10 * time.Second
)

// Config configures the live feed client.
type Config struct {
	APIKey            string
	Host              string
	BaseURL           string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// ScheduleEntry is one event on the season schedule.
type ScheduleEntry struct {
	TournID string `json:"tournId"`
	Name    string `json:"name"`
}

type scheduleResponse struct {
	Schedule []ScheduleEntry `json:"schedule"`
}

type cachedSchedule struct {
	entries  []ScheduleEntry
	cachedAt time.Time
}

// Client fetches live leaderboards. Requests are throttled by a token bucket
// shared by every caller.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	mu        sync.Mutex
	schedules map[int]cachedSchedule
}

// NewClient creates a live feed client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:    logger,
		schedules: make(map[int]cachedSchedule),
	}
}

// FetchLeaderboard resolves liveID and returns the current leaderboard.
func (c *Client) FetchLeaderboard(ctx context.Context, liveID string) (*scoredomain.LeaderboardPayload, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	id, err := ParseLiveID(liveID)
	if err != nil {
		return nil, err
	}
	tournID, err := c.ResolveTournID(ctx, id)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("orgId", orgPGATour)
	params.Set("tournId", tournID)
	params.Set("year", strconv.Itoa(id.Year))

	var payload scoredomain.LeaderboardPayload
	if err := c.get(ctx, "/leaderboard", params, &payload); err != nil {
		return nil, fmt.Errorf("leaderboard tournId=%s year=%d: %w", tournID, id.Year, err)
	}

	c.logger.InfoContext(ctx, "Fetched live leaderboard",
		attr.ExtractCorrelationID(ctx),
		attr.String("live_id", liveID),
		attr.String("tourn_id", tournID),
		attr.String("tournament_status", payload.TournamentStatus),
		attr.Int("rows", len(payload.Rows)),
	)
	return &payload, nil
}

// ResolveTournID returns the numeric tournId for id, looking it up by name in
// the season schedule and then in the static fallback table.
func (c *Client) ResolveTournID(ctx context.Context, id LiveID) (string, error) {
	if id.TournID != "" {
		return id.TournID, nil
	}

	search := id.SearchName()
	schedule, err := c.Schedule(ctx, id.Year)
	if err != nil {
		c.logger.WarnContext(ctx, "Schedule lookup failed, using fallback ids",
			attr.ExtractCorrelationID(ctx),
			attr.String("name", search),
			attr.Error(err),
		)
	}
	for _, entry := range schedule {
		if strings.Contains(strings.ToLower(entry.Name), search) {
			return entry.TournID, nil
		}
	}

	if tournID, ok := fallbackTournID(search); ok {
		c.logger.InfoContext(ctx, "Using fallback tournament id",
			attr.ExtractCorrelationID(ctx),
			attr.String("name", search),
			attr.String("tourn_id", tournID),
		)
		return tournID, nil
	}
	return "", fmt.Errorf("%w: %q in %d", ErrUnknownTournament, search, id.Year)
}

// Schedule returns the season schedule for year, cached for a few hours.
func (c *Client) Schedule(ctx context.Context, year int) ([]ScheduleEntry, error) {
	c.mu.Lock()
	cached, ok := c.schedules[year]
	c.mu.Unlock()
	if ok && time.Since(cached.cachedAt) < scheduleTTL {
		return cached.entries, nil
	}

	params := url.Values{}
	params.Set("orgId", orgPGATour)
	params.Set("year", strconv.Itoa(year))

	var resp scheduleResponse
	if err := c.get(ctx, "/schedule", params, &resp); err != nil {
		return nil, fmt.Errorf("schedule year=%d: %w", year, err)
	}

	c.mu.Lock()
	c.schedules[year] = cachedSchedule{entries: resp.Schedule, cachedAt: time.Now()}
	c.mu.Unlock()
	return resp.Schedule, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.cfg.Host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errorForStatus(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
