package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/zenflow/zenflow/pkg/domain"
)

// Generator creates RSS feeds from the lead history
type Generator struct {
	baseURL string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateRSS creates an RSS 2.0 feed from leads, kept in the given order
func (g *Generator) GenerateRSS(leads []domain.Lead, buildTime time.Time) (string, error) {
	rssItems := make([]*RSSItem, 0, len(leads))
	for _, lead := range leads {
		rssItems = append(rssItems, g.convertToRSSItem(lead))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "ZenFlow - Live Leads",
			Link:          g.baseURL + "/dashboard",
			Description:   fmt.Sprintf("Leads captured by ZenFlow funnels, %d most recent", len(leads)),
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss/leads", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: buildTime.Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts a lead to an RSS item
func (g *Generator) convertToRSSItem(lead domain.Lead) *RSSItem {
	return &RSSItem{
		Title:       fmt.Sprintf("%s: %s", lead.Handle, lead.Status),
		Link:        fmt.Sprintf("%s/leads#lead-%s", g.baseURL, lead.ID),
		GUID:        RSSGUID{Value: lead.ID},
		Description: fmt.Sprintf("[%s] %s %s", lead.Badge(), lead.Handle, strings.ToLower(lead.Status)),
		PubDate:     lead.CreatedAt.Format(time.RFC1123Z),
		Categories:  []string{"lead"},
	}
}
