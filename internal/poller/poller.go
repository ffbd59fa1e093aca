package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/mlb-live-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-live-service/internal/logging"
	"github.com/preston-bernstein/mlb-live-service/internal/metrics"
	"github.com/preston-bernstein/mlb-live-service/internal/resolver"
	"github.com/preston-bernstein/mlb-live-service/internal/store"
	"github.com/preston-bernstein/mlb-live-service/internal/window"
)

const (
	defaultInterval  = 60 * time.Second
	maxReadyFailures = 3
)

// Resolver produces the refreshed state for one event.
type Resolver interface {
	Resolve(ctx context.Context, ev games.Event) (resolver.Update, error)
}

// Persister writes the whole dataset durably.
type Persister interface {
	Save(events []games.Event) error
}

// Publisher announces a changed row to downstream consumers.
type Publisher interface {
	PublishChange(ctx context.Context, ev games.Event) error
}

// Options tunes the polling loop. Zero Interval and Lead select the defaults.
// Zero SettledAfter disables the settled rule.
type Options struct {
	Interval     time.Duration
	Lead         time.Duration
	SettledAfter time.Duration
	Publisher    Publisher
}

// PassResult summarizes one sweep over the dataset.
type PassResult struct {
	Eligible  int
	Updated   int
	Failed    int
	Skipped   int
	Persisted bool
	// Interrupted is set when the context was cancelled before every row was visited.
	Interrupted bool
	PersistErr  error
}

// Poller sweeps the dataset on an interval, refreshing in-window events and persisting changes.
type Poller struct {
	table     *store.Table
	resolver  Resolver
	persister Persister
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	selector  window.Selector
	settled   time.Duration
	now       func() time.Time
	newPassID func() string

	// confirmed holds ids whose final score came from the boxscore. Guarded by passMu.
	confirmed map[string]struct{}

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	passMu   sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastPersist         time.Time
	LastResult          PassResult
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxReadyFailures
}

// New constructs a Poller with sane defaults.
func New(table *store.Table, res Resolver, persister Persister, logger *slog.Logger, recorder *metrics.Recorder, opts Options) *Poller {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	lead := opts.Lead
	if lead <= 0 {
		lead = window.DefaultLead
	}
	settled := opts.SettledAfter
	if settled < 0 {
		settled = 0
	}
	return &Poller{
		table:     table,
		resolver:  res,
		persister: persister,
		publisher: opts.Publisher,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		selector:  window.NewSelector(lead),
		settled:   settled,
		confirmed: make(map[string]struct{}),
		now:       time.Now,
		newPassID: uuid.NewString,
		done:      make(chan struct{}),
		exited:    make(chan struct{}),
	}
}

// Start runs one pass immediately, then one per tick, until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	ticker := time.NewTicker(p.interval)
	p.ticker = ticker
	p.startMu.Unlock()

	go func() {
		defer close(p.exited)
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.RunPass(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-ticker.C:
				p.RunPass(ctx)
			}
		}
	}()
}

// Stop halts the polling loop and waits for an in-flight pass, bounded by ctx.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})

	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunPass performs one sweep: every row is visited in stored order, eligible rows are resolved
// and applied, and the dataset is persisted only if something changed.
func (p *Poller) RunPass(ctx context.Context) PassResult {
	p.passMu.Lock()
	defer p.passMu.Unlock()

	started := time.Now()
	now := p.now()
	p.recordAttempt(now)

	logger := p.logger
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldPassID, p.newPassID()))
	}
	ctx = logging.WithLogger(ctx, logger)

	var result PassResult
	for _, ev := range p.table.Events() {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}
		p.visit(ctx, logger, now, ev, &result)
	}

	p.persist(logger, &result)

	duration := time.Since(started)
	p.metrics.RecordPass(duration, result.Updated, result.Failed)
	p.recordResult(now, result)

	logging.Info(logger, "poll pass complete",
		slog.Int("eligible", result.Eligible),
		slog.Int("updated", result.Updated),
		slog.Int("failed", result.Failed),
		slog.Int("skipped", result.Skipped),
		slog.Bool("persisted", result.Persisted),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	return result
}

func (p *Poller) visit(ctx context.Context, logger *slog.Logger, now time.Time, ev games.Event, result *PassResult) {
	start, err := ev.Start()
	if err != nil {
		result.Skipped++
		logging.Debug(logger, "skipping event with unparseable start",
			slog.String(logging.FieldGameID, ev.ID),
			slog.String("game_time", ev.GameTime),
			slog.Any("error", err),
		)
		return
	}
	if !p.selector.Eligible(now, start) {
		return
	}
	if p.isSettled(now, start, ev) {
		result.Skipped++
		return
	}

	result.Eligible++
	update, err := p.resolver.Resolve(ctx, ev)
	if err != nil {
		result.Failed++
		logging.Warn(logger, "event refresh failed",
			slog.String(logging.FieldGameID, ev.ID),
			slog.String(logging.FieldMatchup, ev.Matchup()),
			slog.Any("error", err),
		)
		return
	}
	if update.Final {
		p.confirmed[ev.ID] = struct{}{}
	} else {
		delete(p.confirmed, ev.ID)
	}

	if !p.table.Apply(ev.ID, update.Status, update.Score) {
		return
	}
	result.Updated++

	changed, _ := p.table.Get(ev.ID)
	attrs := []any{
		slog.String(logging.FieldGameID, changed.ID),
		slog.String(logging.FieldMatchup, changed.Matchup()),
		slog.String(logging.FieldStatus, string(changed.Status)),
	}
	if changed.Score != nil {
		attrs = append(attrs,
			slog.Int(logging.FieldHomeScore, changed.Score.Home),
			slog.Int(logging.FieldAwayScore, changed.Score.Away),
		)
	}
	logging.Info(logger, "event updated", attrs...)

	p.publish(ctx, logger, changed)
}

// isSettled reports rows that concluded long enough ago that re-polling cannot change them.
// A row only settles after this process has read its boxscore at least once.
func (p *Poller) isSettled(now, start time.Time, ev games.Event) bool {
	if p.settled <= 0 || ev.Score == nil || !ev.Status.IsTerminal() {
		return false
	}
	if _, ok := p.confirmed[ev.ID]; !ok {
		return false
	}
	return now.Sub(start) >= p.settled
}

func (p *Poller) publish(ctx context.Context, logger *slog.Logger, ev games.Event) {
	if p.publisher == nil {
		return
	}
	err := p.publisher.PublishChange(ctx, ev)
	p.metrics.RecordPublish(err)
	if err != nil {
		logging.Warn(logger, "publish change failed", slog.String(logging.FieldGameID, ev.ID), slog.Any("error", err))
	}
}

func (p *Poller) persist(logger *slog.Logger, result *PassResult) {
	if p.persister == nil || !p.table.Dirty() {
		return
	}

	events, version := p.table.Snapshot()
	started := time.Now()
	err := p.persister.Save(events)
	p.metrics.RecordPersist(time.Since(started), err)
	if err != nil {
		result.PersistErr = err
		logging.Error(logger, "dataset persist failed", err)
		return
	}

	p.table.MarkCleanAt(version)
	result.Persisted = true
	logging.Info(logger, "dataset persisted", slog.Int(logging.FieldCount, len(events)))
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, args...)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

// recordResult treats a pass as failed when persisting failed or every eligible row failed.
func (p *Poller) recordResult(at time.Time, result PassResult) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()

	p.status.LastResult = result
	if result.Persisted {
		p.status.LastPersist = at
	}

	switch {
	case result.PersistErr != nil:
		p.status.ConsecutiveFailures++
		p.status.LastError = result.PersistErr.Error()
	case result.Eligible > 0 && result.Failed == result.Eligible:
		p.status.ConsecutiveFailures++
		p.status.LastError = "all eligible events failed to refresh"
	default:
		p.status.ConsecutiveFailures = 0
		p.status.LastError = ""
		p.status.LastSuccess = at
	}
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// IsReady reports whether the poller is healthy enough to serve readiness checks.
func (p *Poller) IsReady() bool {
	return p.Status().IsReady()
}
