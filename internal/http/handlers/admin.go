package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/mlb-live-service/internal/http/requestutil"
	"github.com/preston-bernstein/mlb-live-service/internal/logging"
	"github.com/preston-bernstein/mlb-live-service/internal/poller"
)

// ScheduleRefresher appends newly scheduled events to the dataset.
type ScheduleRefresher interface {
	RefreshOnce(ctx context.Context) (int, error)
}

// PassRunner runs one polling pass on demand.
type PassRunner interface {
	RunPass(ctx context.Context) poller.PassResult
}

// AdminHandler exposes operator-only endpoints guarded by a bearer token.
type AdminHandler struct {
	refresher ScheduleRefresher
	passes    PassRunner
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. It returns nil when token is empty so admin routes stay unmounted.
func NewAdminHandler(refresher ScheduleRefresher, passes PassRunner, token string, logger *slog.Logger) *AdminHandler {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return &AdminHandler{
		refresher: refresher,
		passes:    passes,
		token:     token,
		logger:    logger,
	}
}

// Refresh fetches the season schedule and appends unseen events.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "schedule refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	added, err := h.refresher.RefreshOnce(r.Context())
	if err != nil {
		logging.Warn(logger, "admin schedule refresh failed", slog.Any("error", err))
		writeError(w, r, http.StatusBadGateway, "failed to refresh schedule", logger)
		return
	}

	logging.Info(logger, "admin schedule refresh complete", slog.Int("added", added))
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"added":  added,
	}, logger)
}

// Poll runs one polling pass immediately and reports its summary.
func (h *AdminHandler) Poll(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	if h.passes == nil {
		writeError(w, r, http.StatusServiceUnavailable, "poller not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	result := h.passes.RunPass(r.Context())
	logging.Info(logger, "admin poll complete",
		slog.Int("eligible", result.Eligible),
		slog.Int("updated", result.Updated),
		slog.Int("failed", result.Failed),
	)
	writeJSON(w, http.StatusOK, newPassSummary(result), logger)
}

func (h *AdminHandler) guard(w http.ResponseWriter, r *http.Request) bool {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return false
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return false
	}
	return true
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
