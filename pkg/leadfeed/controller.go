package leadfeed

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/zenflow/zenflow/pkg/domain"
)

// tick results reported to metrics
const (
	TickEmitted   = "emitted"
	TickSkipped   = "skipped"
	TickUnmounted = "unmounted"
)

// Controller simulates a live lead feed.
// It is responsible for:
//   - Ticking on a fixed interval and deciding whether a new lead shows up
//   - Keeping the newest-first list bounded to the configured size
//   - Driving the presentation surface: prepend, evict and the delayed reveal
//   - Recording every emitted lead in the history log
//
// Ticks are serialized, reveal callbacks run independently and are bound to the controller lifetime.
type Controller struct {
	params   Params
	surface  Surface
	random   RandomSource
	recorder Recorder
	metrics  Metrics
	now      func() time.Time

	mu   sync.Mutex // serializes ticks and guards list
	list []domain.Lead

	lifeMu  sync.Mutex // guards ctx, cancel, stopped and wg.Add against Stop
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
}

// Surface is the presentation layer the controller renders into
type Surface interface {
	Mounted() bool
	Prepend(ctx context.Context, lead domain.Lead) error
	RemoveLast(ctx context.Context) error
	Reveal(ctx context.Context, lead domain.Lead) error
}

// Recorder keeps the history of emitted leads
type Recorder interface {
	RecordLead(ctx context.Context, lead domain.Lead) error
}

// Metrics receives feed counters
type Metrics interface {
	ObserveTick(result string)
	ObserveEvictions(n int)
	SetListSize(n int)
}

// ControllerConfig holds dependencies and parameters for Controller
type ControllerConfig struct {
	Params   Params
	Surface  Surface
	Random   RandomSource     // defaults to the runtime source
	Recorder Recorder         // optional
	Metrics  Metrics          // optional
	Seed     []domain.Lead    // initial list, newest first, trimmed to MaxSize
	Clock    func() time.Time // defaults to time.Now
}

// NewController creates a controller. It does nothing until Start or Tick is called.
func NewController(cfg ControllerConfig) *Controller {
	params := cfg.Params.withDefaults()
	if cfg.Random == nil {
		cfg.Random = NewRandomSource(0)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}

	seed := cfg.Seed
	if len(seed) > params.MaxSize {
		seed = seed[:params.MaxSize]
	}

	c := &Controller{
		params:   params,
		surface:  cfg.Surface,
		random:   cfg.Random,
		recorder: cfg.Recorder,
		metrics:  cfg.Metrics,
		now:      cfg.Clock,
		list:     append([]domain.Lead(nil), seed...),
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.metrics.SetListSize(len(c.list))
	return c
}

// Start begins ticking every interval until ctx is canceled or Stop is called
func (c *Controller) Start(ctx context.Context) {
	c.lifeMu.Lock()
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.stopped = false
	ctx = c.ctx
	c.wg.Add(1)
	c.lifeMu.Unlock()

	go c.worker(ctx)

	lgr.Printf("[INFO] lead feed started with interval %v, threshold %.2f, max size %d",
		c.params.Interval, c.params.Threshold, c.params.MaxSize)
}

// Stop cancels ticking and waits for the worker and pending reveals
func (c *Controller) Stop() {
	lgr.Printf("[INFO] stopping lead feed...")
	c.lifeMu.Lock()
	c.stopped = true
	c.cancel()
	c.lifeMu.Unlock()
	c.wg.Wait()
	lgr.Printf("[INFO] lead feed stopped")
}

// Snapshot returns a copy of the current list, newest first
func (c *Controller) Snapshot() []domain.Lead {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() []domain.Lead {
	return append([]domain.Lead(nil), c.list...)
}

// Params returns the effective feed parameters
func (c *Controller) Params() Params {
	return c.params
}

func (c *Controller) worker(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.params.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick(ctx)
		}
	}
}

// Tick runs one feed update. An unmounted surface makes it a no-op.
func (c *Controller) Tick(ctx context.Context) Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.surface == nil || !c.surface.Mounted() {
		lgr.Printf("[DEBUG] lead feed surface not mounted, tick skipped")
		c.metrics.ObserveTick(TickUnmounted)
		return Decision{List: c.snapshotLocked()}
	}

	d := Decide(c.list, c.random, c.params, c.now())
	if !d.Emitted {
		c.metrics.ObserveTick(TickSkipped)
		d.List = c.snapshotLocked()
		return d
	}
	c.list = d.List

	lead := *d.Event.Added
	lgr.Printf("[DEBUG] new lead %s (%s), list size %d", lead.Handle, lead.ID, len(c.list))

	if err := c.surface.Prepend(ctx, lead); err != nil {
		lgr.Printf("[WARN] failed to prepend lead %s: %v", lead.ID, err)
	}
	for range d.Event.Evicted {
		if err := c.surface.RemoveLast(ctx); err != nil {
			lgr.Printf("[WARN] failed to remove last lead: %v", err)
		}
	}
	if c.recorder != nil {
		if err := c.recorder.RecordLead(ctx, lead); err != nil {
			lgr.Printf("[WARN] failed to record lead %s: %v", lead.ID, err)
		}
	}

	c.metrics.ObserveTick(TickEmitted)
	c.metrics.ObserveEvictions(len(d.Event.Evicted))
	c.metrics.SetListSize(len(c.list))

	c.scheduleReveal(lead)
	d.List = c.snapshotLocked()
	return d
}

// scheduleReveal fires the entrance transition for lead after the reveal delay
func (c *Controller) scheduleReveal(lead domain.Lead) {
	c.lifeMu.Lock()
	if c.stopped {
		c.lifeMu.Unlock()
		return
	}
	ctx := c.ctx
	c.wg.Add(1)
	c.lifeMu.Unlock()

	go func() {
		defer c.wg.Done()
		timer := time.NewTimer(c.params.RevealDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := c.surface.Reveal(ctx, lead); err != nil {
			lgr.Printf("[WARN] failed to reveal lead %s: %v", lead.ID, err)
		}
	}()
}

type nopMetrics struct{}

func (nopMetrics) ObserveTick(string)  {}
func (nopMetrics) ObserveEvictions(int) {}
func (nopMetrics) SetListSize(int)      {}
