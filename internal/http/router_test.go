package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/mlb-live-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-live-service/internal/testutil"
)

func newRouterHandler() *handlers.Handler {
	start := time.Date(2025, 4, 1, 23, 5, 0, 0, time.UTC)
	table := testutil.NewTableWithEvents(testutil.SampleEvent("745123", start))
	return handlers.NewHandler(table, nil, nil)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := NewRouter(newRouterHandler(), nil)

	cases := map[string]int{
		"/health":        http.StatusOK,
		"/ready":         http.StatusOK,
		"/status":        http.StatusOK,
		"/events":        http.StatusOK,
		"/events/745123": http.StatusOK,
		"/events/1":      http.StatusNotFound,
	}

	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := NewRouter(newRouterHandler(), nil)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := testutil.ServeRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestRouterAdminRoutesOnlyWithToken(t *testing.T) {
	unmounted := NewRouter(newRouterHandler(), handlers.NewAdminHandler(nil, nil, "", nil))
	rr := testutil.Serve(unmounted, http.MethodPost, "/admin/poll", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	stub := &testutil.StubPoller{}
	mounted := NewRouter(newRouterHandler(), handlers.NewAdminHandler(nil, stub, "secret", nil))

	req := httptest.NewRequest(http.MethodPost, "/admin/poll", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(mounted, req), http.StatusOK)
	if stub.PassCalls != 1 {
		t.Fatalf("expected one pass, got %d", stub.PassCalls)
	}

	rr = testutil.Serve(mounted, http.MethodPost, "/admin/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}
