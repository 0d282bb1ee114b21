// Package sources suggests citations for the source fields by reading the
// RSS feeds of the official publishers (BMF, BFH, EU). Feed failures degrade
// to an empty suggestion list so the editor keeps working offline.
package sources

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Feed is one configured publisher feed.
type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Suggestion is a candidate citation for a source field.
type Suggestion struct {
	Feed      string
	Title     string
	Link      string
	Published time.Time
}

// Fetcher reads publisher feeds and matches items against document text.
type Fetcher struct {
	feeds  []Feed
	parser *gofeed.Parser
}

// NewFetcher returns a fetcher for the given feeds.
func NewFetcher(feeds []Feed) *Fetcher {
	return &Fetcher{feeds: feeds, parser: gofeed.NewParser()}
}

// Suggest returns feed items whose titles share a keyword with the query,
// newest first, at most limit entries. Unreachable feeds are logged and
// skipped.
func (f *Fetcher) Suggest(ctx context.Context, query string, limit int) []Suggestion {
	keywords := extractKeywords(query)
	if len(keywords) == 0 {
		return nil
	}

	var suggestions []Suggestion
	for _, feed := range f.feeds {
		parsed, err := f.parser.ParseURLWithContext(feed.URL, ctx)
		if err != nil {
			log.Printf("source feed %s unreachable: %v", feed.Name, err)
			continue
		}
		for _, item := range parsed.Items {
			if !matchesKeywords(item.Title, keywords) {
				continue
			}
			s := Suggestion{Feed: feed.Name, Title: item.Title, Link: item.Link}
			if item.PublishedParsed != nil {
				s.Published = *item.PublishedParsed
			}
			suggestions = append(suggestions, s)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Published.After(suggestions[j].Published)
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// extractKeywords keeps words long enough to be meaningful search terms.
func extractKeywords(query string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ".,;:()\"'")
		if len([]rune(word)) >= 5 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

func matchesKeywords(title string, keywords []string) bool {
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
