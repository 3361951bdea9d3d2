package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenflow/zenflow/pkg/domain"
)

func TestServer_RSSHandler(t *testing.T) {
	db := testDatabase()
	db.GetRecentLeadsFunc = func(context.Context, int) ([]domain.Lead, error) { return sampleLeads(), nil }
	srv := testServer(t, Deps{DB: db})

	rec := serve(t, srv, http.MethodGet, "/rss/leads")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, defaultRSSLimit, db.GetRecentLeadsCalls()[0].Limit)

	parsed, err := gofeed.NewParser().ParseString(rec.Body.String())
	require.NoError(t, err)
	assert.Equal(t, "ZenFlow - Live Leads", parsed.Title)
	assert.Equal(t, "http://example.com/dashboard", parsed.Link)
	require.Len(t, parsed.Items, 2)
	assert.Equal(t, "@yoga_jane: Just commented #RECIPE", parsed.Items[0].Title)
	assert.Equal(t, "http://example.com/leads#lead-l2", parsed.Items[0].Link)
}

func TestServer_RSSHandler_Error(t *testing.T) {
	db := testDatabase()
	db.GetRecentLeadsFunc = func(context.Context, int) ([]domain.Lead, error) { return nil, errors.New("boom") }
	srv := testServer(t, Deps{DB: db})

	rec := serve(t, srv, http.MethodGet, "/rss/leads")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to generate RSS feed")
}
