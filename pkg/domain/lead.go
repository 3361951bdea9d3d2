package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrLeadNotFound is returned when a lead with the given id is not in the history
var ErrLeadNotFound = errors.New("lead not found")

// JustNow is the time label shown for freshly captured leads
const JustNow = "Just now"

// Lead represents a single lead notification row in the live feed
type Lead struct {
	ID        string
	Handle    string
	Status    string
	CreatedAt time.Time
}

// Badge returns the avatar initials for the lead, two characters after the leading "@"
func (l Lead) Badge() string {
	name := []rune(strings.TrimPrefix(l.Handle, "@"))
	if len(name) > 2 {
		name = name[:2]
	}
	return strings.ToUpper(string(name))
}

// TimeLabel returns the label rendered next to a live lead
func (l Lead) TimeLabel() string {
	return JustNow
}

// FeedEvent describes what a single proceeding tick changed in the feed list.
// Evicted is ordered from newest to oldest, normally it holds at most one lead.
type FeedEvent struct {
	Added   *Lead
	Evicted []Lead
}

// Empty reports whether the event carries no change
func (e FeedEvent) Empty() bool {
	return e.Added == nil && len(e.Evicted) == 0
}

// StatusLabel builds the constant status text for a comment keyword
func StatusLabel(keyword string) string {
	return "Just commented #" + strings.ToUpper(strings.TrimPrefix(keyword, "#"))
}
