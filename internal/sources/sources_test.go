package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func feedServer(t *testing.T, items string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>BMF</title>%s</channel></rss>`, items)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSuggestMatchesKeywords(t *testing.T) {
	server := feedServer(t, `
		<item><title>Neues zur Grundsteuer 2025</title><link>https://example.org/a</link>
			<pubDate>Sat, 15 Mar 2025 10:00:00 GMT</pubDate></item>
		<item><title>Personalien im Ministerium</title><link>https://example.org/b</link>
			<pubDate>Fri, 14 Mar 2025 10:00:00 GMT</pubDate></item>`)

	f := NewFetcher([]Feed{{Name: "BMF", URL: server.URL}})
	got := f.Suggest(context.Background(), "Änderung der Grundsteuer", 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if got[0].Title != "Neues zur Grundsteuer 2025" || got[0].Feed != "BMF" {
		t.Errorf("unexpected suggestion %+v", got[0])
	}
}

func TestSuggestNewestFirstAndLimit(t *testing.T) {
	server := feedServer(t, `
		<item><title>Grundsteuer alt</title><pubDate>Mon, 01 Jan 2024 10:00:00 GMT</pubDate></item>
		<item><title>Grundsteuer neu</title><pubDate>Sat, 15 Mar 2025 10:00:00 GMT</pubDate></item>
		<item><title>Grundsteuer mittel</title><pubDate>Sun, 01 Sep 2024 10:00:00 GMT</pubDate></item>`)

	f := NewFetcher([]Feed{{Name: "BMF", URL: server.URL}})
	got := f.Suggest(context.Background(), "Grundsteuer", 2)
	if len(got) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(got))
	}
	if got[0].Title != "Grundsteuer neu" || got[1].Title != "Grundsteuer mittel" {
		t.Errorf("expected newest first, got %+v", got)
	}
}

func TestSuggestUnreachableFeedDegrades(t *testing.T) {
	f := NewFetcher([]Feed{{Name: "BMF", URL: "http://127.0.0.1:1/feed"}})
	if got := f.Suggest(context.Background(), "Grundsteuer", 5); len(got) != 0 {
		t.Errorf("expected empty suggestions, got %+v", got)
	}
}

func TestSuggestShortQueryIgnored(t *testing.T) {
	f := NewFetcher(nil)
	if got := f.Suggest(context.Background(), "ab cd", 5); got != nil {
		t.Errorf("expected nil for query without keywords, got %+v", got)
	}
}
