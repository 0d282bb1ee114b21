// Package document holds the editable state of a newsletter or TCMS
// document. The template engine, validator and fact checker operate on
// these values; presentation concerns stay with the callers.
package document

import "strings"

// Type distinguishes the two produced document kinds.
type Type string

const (
	TypeNewsletter Type = "newsletter"
	TypeInternal   Type = "internal"
)

// The two parallel editing versions of a newsletter.
const (
	VersionKompakt = "kompakt"
	VersionDetail  = "detail"
)

// TitlePlaceholder is the boilerplate heading of a fresh document. The
// cross-version title check ignores it.
const TitlePlaceholder = "[NEWSLETTER TITEL]"

// Classification is the Ampel priority tag of a document item.
type Classification string

const (
	ClassPflicht Classification = "pflicht"
	ClassBald    Classification = "bald"
	ClassRadar   Classification = "radar"
)

// Section is one structural block of a version, tracked by item count.
type Section struct {
	Title     string `json:"title"`
	ItemCount int    `json:"item_count"`
}

// Version is one editing version of the document content. Text is the
// visible plain text; Markup the underlying fragment.
type Version struct {
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	Markup       string    `json:"markup,omitempty"`
	Sections     []Section `json:"sections,omitempty"`
	SourceFields []string  `json:"source_fields,omitempty"`
}

// Empty reports whether the version has no visible text.
func (v Version) Empty() bool {
	return strings.TrimSpace(v.Text) == ""
}

// FocusPoints is the structured summary used to auto-generate an item.
type FocusPoints struct {
	MainStatement  string `json:"main_statement"`
	Audience       string `json:"audience"`
	Recommendation string `json:"recommendation"`
	Deadline       string `json:"deadline"`
}

// Checklist tracks the verification steps of the editing workflow.
type Checklist struct {
	Total   int `json:"total"`
	Checked int `json:"checked"`
}

// Document is the full editor state of one document.
type Document struct {
	Type            Type               `json:"type"`
	Versions        map[string]Version `json:"versions"`
	PrimarySource   string             `json:"primary_source"`
	SecondarySource string             `json:"secondary_source"`
	Checklist       Checklist          `json:"checklist"`
	Tags            []string           `json:"tags,omitempty"`
	FocusPoints     *FocusPoints       `json:"focus_points,omitempty"`
}

// New creates an empty document of the given type with both versions.
func New(t Type) *Document {
	return &Document{
		Type: t,
		Versions: map[string]Version{
			VersionKompakt: {},
			VersionDetail:  {},
		},
	}
}

// Version returns the named version, or a zero value when absent.
func (d *Document) Version(name string) Version {
	if d.Versions == nil {
		return Version{}
	}
	return d.Versions[name]
}
