package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/preston-bernstein/mlb-live-service/internal/poller"
)

// StubPoller stands in for the polling loop. RunPass returns PassResult and records it
// as the latest pass in Status, the way the real poller does.
type StubPoller struct {
	StartCalls int
	StopCalls  int
	PassCalls  int
	Err        error
	StatusVal  poller.Status
	PassResult poller.PassResult
}

func (p *StubPoller) Start(ctx context.Context) {
	_ = ctx
	p.StartCalls++
}

func (p *StubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status { return p.StatusVal }

func (p *StubPoller) IsReady() bool { return p.StatusVal.IsReady() }

func (p *StubPoller) RunPass(ctx context.Context) poller.PassResult {
	_ = ctx
	p.PassCalls++
	now := time.Now()
	p.StatusVal.LastAttempt = now
	p.StatusVal.LastResult = p.PassResult
	if p.PassResult.Persisted {
		p.StatusVal.LastPersist = now
	}
	return p.PassResult
}

// StubHTTPServer implements the server's httpServer contract.
// ListenAndServe returns ListenErr. When Block is set, Shutdown waits for it to close or for ctx.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenErr     error
	ShutdownErr   error
	Block         chan struct{}
	ListenCalls   int
	ShutdownCalls int
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.ShutdownCalls++
	if s.Block != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Block:
		}
	}
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}
