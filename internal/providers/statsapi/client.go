package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/logging"
	"github.com/preston-bernstein/mlb-live-service/internal/providers"
)

// Config controls how the client reaches the MLB Stats API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	SportID    int
	Logger     *slog.Logger
}

// Client fetches schedule, boxscore and live feed documents and maps them to domain models.
type Client struct {
	baseURL    string
	httpClient httpDoer
	sportID    int
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient constructs a Stats API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		sportID:    resolveSportID(cfg.SportID),
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// FetchSeasonSchedule returns every game of the season in upstream order.
// Games missing a required field are logged and skipped.
func (c *Client) FetchSeasonSchedule(ctx context.Context, season string) ([]games.Event, error) {
	q := url.Values{}
	q.Set("sportId", strconv.Itoa(c.sportID))
	q.Set("season", season)

	var payload scheduleResponse
	if err := c.getJSON(ctx, providers.OpSchedule, schedulePath, q, &payload); err != nil {
		return nil, err
	}

	events := make([]games.Event, 0)
	for _, d := range payload.Dates {
		for _, g := range d.Games {
			ev, err := mapScheduleGame(d.Date, g)
			if err != nil {
				logging.Warn(logging.FromContext(ctx, c.logger), "skipping unparseable schedule entry",
					slog.String(logging.FieldProvider, providerName),
					slog.String("date", d.Date),
					slog.Any("error", err),
				)
				continue
			}
			events = append(events, ev)
		}
	}
	return events, nil
}

// FetchFinalScore reads the authoritative run totals from the boxscore.
func (c *Client) FetchFinalScore(ctx context.Context, eventID string) (games.Score, error) {
	var payload boxscoreResponse
	if err := c.getJSON(ctx, providers.OpBoxscore, fmt.Sprintf(boxscorePath, url.PathEscape(eventID)), nil, &payload); err != nil {
		return games.Score{}, err
	}
	return mapBoxscore(payload)
}

// FetchLiveStatusAndScore reads the detailed state and running linescore from the live feed.
func (c *Client) FetchLiveStatusAndScore(ctx context.Context, eventID string) (providers.LiveSnapshot, error) {
	var payload liveFeedResponse
	if err := c.getJSON(ctx, providers.OpLiveFeed, fmt.Sprintf(liveFeedPath, url.PathEscape(eventID)), nil, &payload); err != nil {
		return providers.LiveSnapshot{}, err
	}
	return mapLiveFeed(payload), nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &providers.TransportError{Provider: providerName, Op: op, Err: err}
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &providers.TransportError{Provider: providerName, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    fmt.Sprintf("%s %s: rate limited", providerName, op),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &providers.TransportError{
			Provider:   providerName,
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &providers.DecodeError{Provider: providerName, Op: op, Err: err}
	}
	return nil
}
