package teststubs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/providers"
)

// ErrNoStubData is returned for event IDs the stub was not configured with.
var ErrNoStubData = errors.New("no stub data")

// StubProvider is a test double for providers.DataProvider.
type StubProvider struct {
	Schedule      []games.Event
	ScheduleErr   error
	ScheduleCalls atomic.Int32
	// Notify is closed on the first live feed call.
	Notify chan struct{}

	mu         sync.Mutex
	live       map[string]providers.LiveSnapshot
	liveErr    map[string]error
	final      map[string]games.Score
	finalErr   map[string]error
	liveCalls  map[string]int
	finalCalls map[string]int
	order      []string
}

// NewStubProvider returns an empty stub.
func NewStubProvider() *StubProvider {
	return &StubProvider{
		live:       make(map[string]providers.LiveSnapshot),
		liveErr:    make(map[string]error),
		final:      make(map[string]games.Score),
		finalErr:   make(map[string]error),
		liveCalls:  make(map[string]int),
		finalCalls: make(map[string]int),
	}
}

func (s *StubProvider) SetLive(id string, snap providers.LiveSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live[id] = snap
	delete(s.liveErr, id)
}

func (s *StubProvider) SetLiveErr(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liveErr[id] = err
}

func (s *StubProvider) SetFinal(id string, score games.Score) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.final[id] = score
	delete(s.finalErr, id)
}

func (s *StubProvider) SetFinalErr(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalErr[id] = err
}

// LiveCalls returns how many live feed requests were made for id.
func (s *StubProvider) LiveCalls(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveCalls[id]
}

// FinalCalls returns how many boxscore requests were made for id.
func (s *StubProvider) FinalCalls(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalCalls[id]
}

// CallOrder returns the event IDs in the order their live feed was requested.
func (s *StubProvider) CallOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// FetchSeasonSchedule returns the configured schedule and error while tracking calls.
func (s *StubProvider) FetchSeasonSchedule(ctx context.Context, season string) ([]games.Event, error) {
	_ = ctx
	_ = season
	s.ScheduleCalls.Add(1)
	if s.ScheduleErr != nil {
		return nil, s.ScheduleErr
	}
	out := make([]games.Event, len(s.Schedule))
	for i, ev := range s.Schedule {
		out[i] = ev.Clone()
	}
	return out, nil
}

// FetchFinalScore returns the configured boxscore totals for id.
func (s *StubProvider) FetchFinalScore(ctx context.Context, eventID string) (games.Score, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalCalls[eventID]++
	if err, ok := s.finalErr[eventID]; ok {
		return games.Score{}, err
	}
	score, ok := s.final[eventID]
	if !ok {
		return games.Score{}, fmt.Errorf("final %s: %w", eventID, ErrNoStubData)
	}
	return score, nil
}

// FetchLiveStatusAndScore returns the configured live snapshot for id.
func (s *StubProvider) FetchLiveStatusAndScore(ctx context.Context, eventID string) (providers.LiveSnapshot, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.liveCalls[eventID]++
	s.order = append(s.order, eventID)
	if err, ok := s.liveErr[eventID]; ok {
		return providers.LiveSnapshot{}, err
	}
	snap, ok := s.live[eventID]
	if !ok {
		return providers.LiveSnapshot{}, fmt.Errorf("live %s: %w", eventID, ErrNoStubData)
	}
	if snap.Score != nil {
		score := *snap.Score
		snap.Score = &score
	}
	return snap, nil
}

// StubPersister is a test double for the dataset writer.
type StubPersister struct {
	mu    sync.Mutex
	Saves [][]games.Event
	Err   error
}

// Save records a copy of the events for verification in tests.
func (p *StubPersister) Save(events []games.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	snapshot := make([]games.Event, len(events))
	for i, ev := range events {
		snapshot[i] = ev.Clone()
	}
	p.Saves = append(p.Saves, snapshot)
	return nil
}

// SaveCount returns the number of successful saves.
func (p *StubPersister) SaveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Saves)
}

// Last returns the most recently saved dataset.
func (p *StubPersister) Last() []games.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Saves) == 0 {
		return nil
	}
	return p.Saves[len(p.Saves)-1]
}

// StubPublisher is a test double for publish.Publisher.
type StubPublisher struct {
	mu        sync.Mutex
	Published []games.Event
	Err       error
}

// PublishChange records the event.
func (p *StubPublisher) PublishChange(ctx context.Context, ev games.Event) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published = append(p.Published, ev.Clone())
	return p.Err
}

// IDs returns the published event IDs in order.
func (p *StubPublisher) IDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, len(p.Published))
	for i, ev := range p.Published {
		ids[i] = ev.ID
	}
	return ids
}

// Close is a no-op.
func (p *StubPublisher) Close() error { return nil }
