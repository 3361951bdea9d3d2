package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLead_Badge(t *testing.T) {
	tests := []struct {
		handle string
		want   string
	}{
		{"@leo_vlogs", "LE"},
		{"@fitness_hero", "FI"},
		{"@yoga_jane", "YO"},
		{"@travel_tok", "TR"},
		{"plain", "PL"},
		{"@x", "X"},
		{"", ""},
		{"@ёжик", "ЁЖ"},
	}

	for _, tt := range tests {
		t.Run(tt.handle, func(t *testing.T) {
			assert.Equal(t, tt.want, Lead{Handle: tt.handle}.Badge())
		})
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Just commented #RECIPE", StatusLabel("RECIPE"))
	assert.Equal(t, "Just commented #RECIPE", StatusLabel("#recipe"))
}

func TestFeedEvent_Empty(t *testing.T) {
	assert.True(t, FeedEvent{}.Empty())
	assert.False(t, FeedEvent{Added: &Lead{Handle: "@a"}}.Empty())
	assert.Equal(t, JustNow, Lead{}.TimeLabel())
}
