package leadfeed

import (
	"time"

	"github.com/google/uuid"

	"github.com/zenflow/zenflow/pkg/domain"
)

// default feed parameters, match the dashboard's original behavior
const (
	DefaultInterval    = 5 * time.Second
	DefaultThreshold   = 0.7
	DefaultMaxSize     = 5
	DefaultRevealDelay = 50 * time.Millisecond
	DefaultKeyword     = "RECIPE"

	// Transition is the CSS transition applied when a new lead is revealed
	Transition = "all 0.5s cubic-bezier(0.4, 0, 0.2, 1)"
)

// DefaultIdentities is the pool of simulated lead handles
var DefaultIdentities = []string{"@leo_vlogs", "@fitness_hero", "@yoga_jane", "@travel_tok"}

// Params controls how the feed decides and bounds its list
type Params struct {
	Interval    time.Duration
	Threshold   float64 // a tick proceeds only when the draw is strictly above it
	MaxSize     int
	RevealDelay time.Duration
	Identities  []string
	Status      string
	NewID       func() string
}

// withDefaults returns a copy of params with zero values replaced by defaults
func (p Params) withDefaults() Params {
	if p.Interval <= 0 {
		p.Interval = DefaultInterval
	}
	if p.Threshold <= 0 {
		p.Threshold = DefaultThreshold
	}
	if p.MaxSize <= 0 {
		p.MaxSize = DefaultMaxSize
	}
	if p.RevealDelay <= 0 {
		p.RevealDelay = DefaultRevealDelay
	}
	if len(p.Identities) == 0 {
		p.Identities = DefaultIdentities
	}
	if p.Status == "" {
		p.Status = domain.StatusLabel(DefaultKeyword)
	}
	if p.NewID == nil {
		p.NewID = uuid.NewString
	}
	return p
}

// Decision is the outcome of a single tick
type Decision struct {
	Emitted bool
	List    []domain.Lead // resulting list, newest first
	Event   domain.FeedEvent
}

// Decide runs the tick logic against list without side effects.
// When the draw does not exceed the threshold the very same list is returned.
// The input slice is never modified.
func Decide(list []domain.Lead, src RandomSource, p Params, now time.Time) Decision {
	p = p.withDefaults()
	if src.Float64() <= p.Threshold {
		return Decision{List: list}
	}

	idx := int(src.Float64() * float64(len(p.Identities)))
	idx = min(max(idx, 0), len(p.Identities)-1)

	lead := domain.Lead{
		ID:        p.NewID(),
		Handle:    p.Identities[idx],
		Status:    p.Status,
		CreatedAt: now,
	}

	next := make([]domain.Lead, 0, len(list)+1)
	next = append(next, lead)
	next = append(next, list...)

	event := domain.FeedEvent{Added: &lead}
	if len(next) > p.MaxSize {
		event.Evicted = append([]domain.Lead(nil), next[p.MaxSize:]...)
		next = next[:p.MaxSize:p.MaxSize]
	}

	return Decision{Emitted: true, List: next, Event: event}
}
