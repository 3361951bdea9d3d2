package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenflow/zenflow/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://zenflow.example.com")

	pubTime := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	leads := []domain.Lead{
		{ID: "id-2", Handle: "@yoga_jane", Status: "Just commented #RECIPE", CreatedAt: pubTime.Add(time.Minute)},
		{ID: "id-1", Handle: "@leo_vlogs", Status: "Just commented #RECIPE", CreatedAt: pubTime},
	}

	t.Run("structure", func(t *testing.T) {
		rss, err := generator.GenerateRSS(leads, pubTime)
		require.NoError(t, err)

		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<title>ZenFlow - Live Leads</title>`)
		assert.Contains(t, rss, `<link>https://zenflow.example.com/dashboard</link>`)
		assert.Contains(t, rss, `<link xmlns="http://www.w3.org/2005/Atom" href="https://zenflow.example.com/rss/leads" rel="self" type="application/rss+xml"></link>`)
		assert.Contains(t, rss, `<guid isPermaLink="false">id-2</guid>`)
		assert.Contains(t, rss, `<category>lead</category>`)
	})

	t.Run("parsable by feed readers", func(t *testing.T) {
		rss, err := generator.GenerateRSS(leads, pubTime)
		require.NoError(t, err)

		parsed, err := gofeed.NewParser().ParseString(rss)
		require.NoError(t, err)
		assert.Equal(t, "ZenFlow - Live Leads", parsed.Title)
		require.Len(t, parsed.Items, 2)

		first := parsed.Items[0]
		assert.Equal(t, "@yoga_jane: Just commented #RECIPE", first.Title)
		assert.Equal(t, "id-2", first.GUID)
		assert.Equal(t, "https://zenflow.example.com/leads#lead-id-2", first.Link)
		assert.Equal(t, "[YO] @yoga_jane just commented #recipe", first.Description)
		require.NotNil(t, first.PublishedParsed)
		assert.True(t, pubTime.Add(time.Minute).Equal(*first.PublishedParsed))
		assert.Equal(t, "id-1", parsed.Items[1].GUID)
	})

	t.Run("empty leads", func(t *testing.T) {
		rss, err := generator.GenerateRSS([]domain.Lead{}, pubTime)
		require.NoError(t, err)
		assert.Contains(t, rss, `<channel>`)
		assert.NotContains(t, rss, `<item>`)
	})

	t.Run("trailing slash in base URL", func(t *testing.T) {
		gen := NewGenerator("https://zenflow.example.com/")
		rss, err := gen.GenerateRSS(leads[:1], pubTime)
		require.NoError(t, err)
		assert.Equal(t, 0, strings.Count(rss, "example.com//"))
	})
}
