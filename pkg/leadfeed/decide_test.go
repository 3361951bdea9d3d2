package leadfeed

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenflow/zenflow/pkg/domain"
)

// seqSource returns preset values in order and repeats the last one
type seqSource struct {
	vals []float64
	pos  int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[min(s.pos, len(s.vals)-1)]
	s.pos++
	return v
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func leads(handles ...string) []domain.Lead {
	res := make([]domain.Lead, 0, len(handles))
	for _, h := range handles {
		res = append(res, domain.Lead{ID: h, Handle: h, Status: "seed"})
	}
	return res
}

func handles(list []domain.Lead) []string {
	res := make([]string, 0, len(list))
	for _, l := range list {
		res = append(res, l.Handle)
	}
	return res
}

func TestDecide(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	params := Params{Threshold: DefaultThreshold, MaxSize: 5, NewID: seqIDs()}

	t.Run("full list evicts oldest", func(t *testing.T) {
		list := leads("A", "B", "C", "D", "E")
		d := Decide(list, &seqSource{vals: []float64{0.9, 0.0}}, params, now)

		require.True(t, d.Emitted)
		assert.Equal(t, []string{"@leo_vlogs", "A", "B", "C", "D"}, handles(d.List))
		require.NotNil(t, d.Event.Added)
		assert.Equal(t, "@leo_vlogs", d.Event.Added.Handle)
		assert.Equal(t, "Just commented #RECIPE", d.Event.Added.Status)
		assert.Equal(t, now, d.Event.Added.CreatedAt)
		assert.NotEmpty(t, d.Event.Added.ID)
		require.Len(t, d.Event.Evicted, 1)
		assert.Equal(t, "E", d.Event.Evicted[0].Handle)

		// input untouched
		assert.Equal(t, []string{"A", "B", "C", "D", "E"}, handles(list))
	})

	t.Run("short list grows without eviction", func(t *testing.T) {
		list := leads("A", "B")
		d := Decide(list, &seqSource{vals: []float64{0.71, 0.5}}, params, now)

		require.True(t, d.Emitted)
		assert.Equal(t, []string{"@yoga_jane", "A", "B"}, handles(d.List))
		assert.Empty(t, d.Event.Evicted)
	})

	t.Run("draw at threshold is a no-op", func(t *testing.T) {
		list := leads("A", "B", "C")
		d := Decide(list, &seqSource{vals: []float64{0.7}}, params, now)

		assert.False(t, d.Emitted)
		assert.True(t, d.Event.Empty())
		assert.Equal(t, list, d.List)
		assert.Same(t, &list[0], &d.List[0])
	})

	t.Run("draw below threshold is a no-op", func(t *testing.T) {
		list := leads("A")
		d := Decide(list, &seqSource{vals: []float64{0.1}}, params, now)
		assert.False(t, d.Emitted)
		assert.Equal(t, list, d.List)
	})

	t.Run("empty list", func(t *testing.T) {
		d := Decide(nil, &seqSource{vals: []float64{0.99, 0.99}}, params, now)
		require.True(t, d.Emitted)
		assert.Equal(t, []string{"@travel_tok"}, handles(d.List))
	})

	t.Run("over capacity input is trimmed to max", func(t *testing.T) {
		list := leads("A", "B", "C", "D", "E", "F")
		d := Decide(list, &seqSource{vals: []float64{0.8, 0.3}}, params, now)
		require.True(t, d.Emitted)
		assert.Len(t, d.List, 5)
		assert.Equal(t, []string{"E", "F"}, handles(d.Event.Evicted))
	})

	t.Run("identity index clamped", func(t *testing.T) {
		d := Decide(nil, &seqSource{vals: []float64{0.8, 1.0}}, params, now)
		require.True(t, d.Emitted)
		assert.Equal(t, "@travel_tok", d.List[0].Handle)
	})
}

func TestDecide_Invariants(t *testing.T) {
	src := NewRandomSource(42)
	params := Params{Threshold: DefaultThreshold}
	var list []domain.Lead

	for i := 0; i < 1000; i++ {
		before := append([]domain.Lead(nil), list...)
		d := Decide(list, src, params, time.Now())
		require.LessOrEqual(t, len(d.List), DefaultMaxSize)

		if !d.Emitted {
			assert.Equal(t, before, d.List)
			continue
		}

		assert.Contains(t, DefaultIdentities, d.List[0].Handle)
		assert.Equal(t, d.Event.Added.ID, d.List[0].ID)
		if len(before) == DefaultMaxSize {
			require.Len(t, d.Event.Evicted, 1)
			assert.Equal(t, before[len(before)-1], d.Event.Evicted[0])
			assert.Equal(t, before[:DefaultMaxSize-1], d.List[1:])
		} else {
			assert.Empty(t, d.Event.Evicted)
			assert.Len(t, d.List, len(before)+1)
		}
		list = d.List
	}
}

func TestParams_withDefaults(t *testing.T) {
	p := Params{}.withDefaults()
	assert.Equal(t, DefaultInterval, p.Interval)
	assert.InDelta(t, DefaultThreshold, p.Threshold, 1e-9)
	assert.Equal(t, DefaultMaxSize, p.MaxSize)
	assert.Equal(t, DefaultRevealDelay, p.RevealDelay)
	assert.Equal(t, DefaultIdentities, p.Identities)
	assert.Equal(t, "Just commented #RECIPE", p.Status)
	assert.NotEmpty(t, p.NewID())
}

func TestDecide_ZeroParamsUseDefaultThreshold(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	d := Decide(nil, &seqSource{vals: []float64{0.5}}, Params{}, now)
	assert.False(t, d.Emitted, "draw below 0.7 must not emit")

	d = Decide(nil, &seqSource{vals: []float64{0.7}}, Params{}, now)
	assert.False(t, d.Emitted, "draw at 0.7 must not emit")

	d = Decide(nil, &seqSource{vals: []float64{0.71, 0.0}}, Params{}, now)
	assert.True(t, d.Emitted)

	// explicit threshold is kept
	d = Decide(nil, &seqSource{vals: []float64{0.5, 0.0}}, Params{Threshold: 0.4}, now)
	assert.True(t, d.Emitted)
}

func TestNewRandomSource(t *testing.T) {
	a, b := NewRandomSource(7), NewRandomSource(7)
	for i := 0; i < 10; i++ {
		v := a.Float64()
		assert.InDelta(t, v, b.Float64(), 0)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}

	v := NewRandomSource(0).Float64()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}
