// Package validate runs the content-quality checks of the editor. Issues
// never block an action; they are recomputed from scratch on every pass so
// the output only depends on the current document state.
package validate

import (
	"fmt"
	"strings"

	"taxletter/internal/document"
	"taxletter/internal/template"
)

// Severity classifies an issue. Errors outrank warnings outrank infos.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	}
	return 0
}

// Issue is one finding of a validation pass. Ref points back at the
// originating element for the UI and may be empty.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Ref      string   `json:"ref,omitempty"`
}

// Summary aggregates an issue list for display.
type Summary struct {
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Worst    Severity `json:"worst,omitempty"`
}

// Summarize derives counts and the worst severity from an issue list.
func Summarize(issues []Issue) Summary {
	var s Summary
	for _, i := range issues {
		switch i.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		}
		if i.Severity.rank() > s.Worst.rank() {
			s.Worst = i.Severity
		}
	}
	return s
}

// Validator checks a document for placeholder completeness, citations,
// verification progress, content sufficiency and cross-version consistency.
type Validator struct {
	// MinContentLength is the visible-text threshold below which a version
	// is flagged as too short.
	MinContentLength int
}

// New creates a validator with the default thresholds.
func New() *Validator {
	return &Validator{MinContentLength: 100}
}

// Run validates the named version of a document, always including the
// cross-version checks. The checks run in a fixed order so identical input
// yields an identical ordered issue list.
func (v *Validator) Run(d *document.Document, version string) []Issue {
	var issues []Issue
	issues = append(issues, v.checkMissingData(d, version)...)
	issues = append(issues, v.checkSources(d, version)...)
	issues = append(issues, v.checkVerification(d)...)
	issues = append(issues, v.checkContent(d, version)...)
	issues = append(issues, v.checkVersionConsistency(d)...)
	return issues
}

// checkMissingData flags every unfilled [DATEN ERFORDERLICH: ...] marker
// the template engine left in the content.
func (v *Validator) checkMissingData(d *document.Document, version string) []Issue {
	text := d.Version(version).Text
	label := strings.ToUpper(version)

	var issues []Issue
	rest := text
	for {
		idx := strings.Index(rest, template.MissingDataPrefix)
		if idx < 0 {
			break
		}
		issues = append(issues, Issue{
			Severity: SeverityError,
			Message:  fmt.Sprintf("Fehlende Daten in %s: %s...", label, truncate(rest[idx:], 100)),
			Ref:      "version:" + version,
		})
		rest = rest[idx+len(template.MissingDataPrefix):]
	}
	return issues
}

func (v *Validator) checkSources(d *document.Document, version string) []Issue {
	label := strings.ToUpper(version)

	var issues []Issue
	for _, src := range d.Version(version).SourceFields {
		if strings.TrimSpace(src) == "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Quellenangabe fehlt in %s-Version", label),
				Ref:      "version:" + version,
			})
		}
	}

	if strings.TrimSpace(d.PrimarySource) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Message:  "Primärquelle erforderlich",
			Ref:      "primary-source",
		})
	}
	if strings.TrimSpace(d.SecondarySource) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Message:  "Sekundärquelle zur Bestätigung empfohlen",
			Ref:      "secondary-source",
		})
	}
	return issues
}

func (v *Validator) checkVerification(d *document.Document) []Issue {
	c := d.Checklist
	switch {
	case c.Checked == 0:
		return []Issue{{
			Severity: SeverityError,
			Message:  "Keine Verifikationsschritte durchgeführt",
			Ref:      "verification-checklist",
		}}
	case c.Checked < c.Total:
		return []Issue{{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%d Verifikationsschritte ausstehend", c.Total-c.Checked),
			Ref:      "verification-checklist",
		}}
	}
	return nil
}

func (v *Validator) checkContent(d *document.Document, version string) []Issue {
	ver := d.Version(version)
	label := strings.ToUpper(version)

	var issues []Issue
	if len(strings.TrimSpace(ver.Text)) < v.MinContentLength {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s-Version sehr kurz", label),
			Ref:      "version:" + version,
		})
	}
	for _, s := range ver.Sections {
		if s.ItemCount == 0 {
			issues = append(issues, Issue{
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("Bereich %q in %s-Version ist leer", s.Title, label),
				Ref:      "section:" + s.Title,
			})
		}
	}
	return issues
}

// checkVersionConsistency compares the kompakt and detail versions. The
// title check is a best-effort substring heuristic, not a guarantee.
func (v *Validator) checkVersionConsistency(d *document.Document) []Issue {
	kompakt := d.Version(document.VersionKompakt)
	detail := d.Version(document.VersionDetail)

	var issues []Issue
	if !kompakt.Empty() && !detail.Empty() {
		kTitle := strings.TrimSpace(strings.ReplaceAll(kompakt.Title, document.TitlePlaceholder, ""))
		if kTitle != "" && detail.Title != "" && !strings.Contains(detail.Title, kTitle) {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Message:  "Titel zwischen Kompakt- und Detail-Version unterschiedlich",
			})
		}
	}
	if kompakt.Empty() && !detail.Empty() {
		issues = append(issues, Issue{
			Severity: SeverityInfo,
			Message:  "Detail-Version vorhanden, aber Kompakt-Version leer",
		})
	}
	if !kompakt.Empty() && detail.Empty() {
		issues = append(issues, Issue{
			Severity: SeverityInfo,
			Message:  "Kompakt-Version vorhanden, aber Detail-Version leer",
		})
	}
	return issues
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
