// Package export produces downloadable file content for the supported
// output formats. PDF is declared but not yet implemented.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yuin/goldmark"
)

// Format names one of the export targets.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatMarkup   Format = "markup"
	FormatPDF      Format = "pdf"
)

// MIME types of the produced files.
const (
	MIMEHTML     = "text/html"
	MIMEMarkdown = "text/markdown"
	MIMEJSON     = "application/json"
)

// ErrUnsupportedFormat is returned for formats without an exporter.
var ErrUnsupportedFormat = errors.New("export format not supported")

// File is exported byte content ready to be saved.
type File struct {
	Name    string
	MIME    string
	Content []byte
}

var md = goldmark.New()

// HTML converts markdown document content into a standalone HTML page.
func HTML(title, markdown string, ts time.Time) (*File, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	return &File{
		Name:    stampedName("tcms-document", "html", ts),
		MIME:    MIMEHTML,
		Content: wrapPage(title, body.Bytes()),
	}, nil
}

// Markdown exports the raw markdown content.
func Markdown(content string, ts time.Time) *File {
	return &File{
		Name:    stampedName("tcms-document", "md", ts),
		MIME:    MIMEMarkdown,
		Content: []byte(content),
	}
}

// JSON serializes the current structured document data.
func JSON(data any, ts time.Time) (*File, error) {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling document data: %w", err)
	}
	return &File{
		Name:    stampedName("tcms-document", "json", ts),
		MIME:    MIMEJSON,
		Content: content,
	}, nil
}

// Markup exports rendered newsletter markup verbatim, wrapped in a page so
// the file opens directly in a browser.
func Markup(title, markup string, ts time.Time) *File {
	return &File{
		Name:    fmt.Sprintf("newsletter-%s.html", ts.Format("2006-01-02")),
		MIME:    MIMEHTML,
		Content: wrapPage(title, []byte(markup)),
	}
}

// PDF is a stub; real PDF generation is out of scope.
func PDF() (*File, error) {
	return nil, fmt.Errorf("%w: pdf", ErrUnsupportedFormat)
}

// stampedName embeds a millisecond timestamp so repeated downloads never
// collide.
func stampedName(prefix, ext string, ts time.Time) string {
	return fmt.Sprintf("%s-%d.%s", prefix, ts.UnixMilli(), ext)
}

func wrapPage(title string, body []byte) []byte {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html lang=\"de\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", title)
	b.WriteString("<style>body{font-family:Arial,sans-serif;max-width:800px;margin:0 auto;padding:24px;color:#1a1a1a}" +
		".newsletter-item{border:1px solid #ddd;border-radius:6px;padding:16px;margin:16px 0}" +
		".ampel-pflicht{color:#dc2626}.ampel-bald{color:#ca8a04}.ampel-radar{color:#16a34a}</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.Write(body)
	b.WriteString("\n</body>\n</html>\n")
	return b.Bytes()
}
