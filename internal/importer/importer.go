// Package importer loads editable document content from files. JSON files
// become structured data records, markdown and plain text load verbatim,
// and HTML is reduced to the editable content fragment.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Kind reports how an imported file was interpreted.
type Kind string

const (
	KindJSON     Kind = "json"
	KindMarkdown Kind = "markdown"
	KindHTML     Kind = "html"
	KindText     Kind = "text"
)

// Result is one successfully imported file.
type Result struct {
	Kind    Kind
	Content string         // editable text or markup
	Data    map[string]any // structured record for JSON imports
}

// Containers checked in order when extracting content from an HTML page.
var contentSelectors = []string{
	".newsletter-content",
	".editor-content",
	"#newsletter-editor",
	"main",
	"article",
}

// Import interprets file bytes by extension. Malformed JSON aborts with an
// error and no partial result; unknown extensions load verbatim as text.
func Import(filename string, data []byte) (*Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		var record map[string]any
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("parsing JSON import: %w", err)
		}
		return &Result{Kind: KindJSON, Data: record, Content: string(data)}, nil

	case ".md":
		return &Result{Kind: KindMarkdown, Content: string(data)}, nil

	case ".html", ".htm":
		content, err := extractHTMLContent(data)
		if err != nil {
			return nil, err
		}
		return &Result{Kind: KindHTML, Content: content}, nil

	default:
		return &Result{Kind: KindText, Content: string(data)}, nil
	}
}

// extractHTMLContent pulls the editable fragment out of an HTML page: a
// known content container when present, otherwise a readability extraction,
// otherwise the whole body.
func extractHTMLContent(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parsing HTML import: %w", err)
	}

	for _, sel := range contentSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if inner, err := node.Html(); err == nil && strings.TrimSpace(inner) != "" {
			return strings.TrimSpace(inner), nil
		}
	}

	// Arbitrary pages: try article extraction before falling back to body.
	article, err := readability.FromReader(bytes.NewReader(data), &url.URL{})
	if err == nil && strings.TrimSpace(article.Content) != "" {
		return strings.TrimSpace(article.Content), nil
	}

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("extracting HTML body: %w", err)
	}
	return strings.TrimSpace(body), nil
}
