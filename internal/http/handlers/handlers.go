package handlers

import (
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/logging"
	"github.com/preston-bernstein/mlb-live-service/internal/poller"
	"github.com/preston-bernstein/mlb-live-service/internal/timeutil"
)

type nowFunc func() time.Time

// EventReader is the read side of the in-memory dataset.
type EventReader interface {
	Events() []games.Event
	Get(id string) (games.Event, bool)
	Len() int
	Dirty() bool
}

// Handler serves the operational endpoints and a read-only view of the dataset.
type Handler struct {
	events   EventReader
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(events EventReader, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		events:   events,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/status":
		h.Status(w, r)
	case r.URL.Path == "/events":
		h.Events(w, r)
	case strings.HasPrefix(r.URL.Path, "/events/"):
		h.EventByID(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports process liveness.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the poller has completed a recent successful pass.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Now    string        `json:"now"`
	Rows   int           `json:"rows"`
	Dirty  bool          `json:"dirty"`
	Ready  bool          `json:"ready"`
	Poller *PollerStatus `json:"poller,omitempty"`
}

// PollerStatus mirrors poller.Status with wire-friendly timestamps.
type PollerStatus struct {
	ConsecutiveFailures int         `json:"consecutiveFailures"`
	LastError           string      `json:"lastError,omitempty"`
	LastAttempt         string      `json:"lastAttempt,omitempty"`
	LastSuccess         string      `json:"lastSuccess,omitempty"`
	LastPersist         string      `json:"lastPersist,omitempty"`
	LastPass            PassSummary `json:"lastPass"`
}

// PassSummary is the wire form of poller.PassResult.
type PassSummary struct {
	Eligible    int    `json:"eligible"`
	Updated     int    `json:"updated"`
	Failed      int    `json:"failed"`
	Skipped     int    `json:"skipped"`
	Persisted   bool   `json:"persisted"`
	Interrupted bool   `json:"interrupted,omitempty"`
	PersistErr  string `json:"persistError,omitempty"`
}

func newPassSummary(res poller.PassResult) PassSummary {
	out := PassSummary{
		Eligible:    res.Eligible,
		Updated:     res.Updated,
		Failed:      res.Failed,
		Skipped:     res.Skipped,
		Persisted:   res.Persisted,
		Interrupted: res.Interrupted,
	}
	if res.PersistErr != nil {
		out.PersistErr = res.PersistErr.Error()
	}
	return out
}

// Status reports dataset size, dirtiness and poller health.
func (h *Handler) Status(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	resp := StatusResponse{
		Now:   h.now().UTC().Format(time.RFC3339),
		Ready: h.statusFn == nil,
	}
	if h.events != nil {
		resp.Rows = h.events.Len()
		resp.Dirty = h.events.Dirty()
	}
	if h.statusFn != nil {
		st := h.statusFn()
		resp.Ready = st.IsReady()
		resp.Poller = &PollerStatus{
			ConsecutiveFailures: st.ConsecutiveFailures,
			LastError:           st.LastError,
			LastAttempt:         formatTime(st.LastAttempt),
			LastSuccess:         formatTime(st.LastSuccess),
			LastPersist:         formatTime(st.LastPersist),
			LastPass:            newPassSummary(st.LastResult),
		}
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// EventsResponse is the body of GET /events.
type EventsResponse struct {
	Date   string        `json:"date,omitempty"`
	Count  int           `json:"count"`
	Events []games.Event `json:"events"`
}

// Events lists dataset rows in stored order, optionally filtered by ?date=YYYY-MM-DD and ?status=.
func (h *Handler) Events(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.events == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "dataset not loaded", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date != "" {
		if _, err := timeutil.ParseDate(date); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
			return
		}
	}
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	out := make([]games.Event, 0)
	for _, ev := range h.events.Events() {
		if date != "" && ev.Date != date {
			continue
		}
		if status != "" && !strings.EqualFold(string(ev.Status), status) {
			continue
		}
		out = append(out, ev)
	}

	logging.Debug(logger, "served events",
		slog.String("date", date),
		slog.String(logging.FieldStatus, status),
		slog.Int(logging.FieldCount, len(out)),
	)
	writeJSON(w, nethttp.StatusOK, EventsResponse{Date: date, Count: len(out), Events: out}, logger)
}

// EventByID returns a single dataset row.
func (h *Handler) EventByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	idRaw := strings.TrimPrefix(r.URL.Path, "/events/")
	id, err := url.PathUnescape(idRaw)
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid event id", h.logger)
		return
	}
	if h.events == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "dataset not loaded", h.logger)
		return
	}

	ev, ok := h.events.Get(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "event not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, ev, h.logger)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
