package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/mlb-live-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. Admin routes are mounted only when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/status", handler.Status)
	mux.HandleFunc("/events", handler.Events)
	mux.HandleFunc("/events/", handler.EventByID)
	if admin != nil {
		mux.HandleFunc("/admin/refresh", admin.Refresh)
		mux.HandleFunc("/admin/poll", admin.Poll)
	}
	return mux
}
