package validate

import (
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"taxletter/internal/document"
)

// fullDoc returns a document that passes every check.
func fullDoc() *document.Document {
	d := document.New(document.TypeNewsletter)
	long := strings.Repeat("Inhalt über die Grundsteuerreform. ", 5)
	d.Versions[document.VersionKompakt] = document.Version{
		Title: "Grundsteuer Newsletter",
		Text:  long,
		Sections: []document.Section{
			{Title: "Gesetzesänderungen", ItemCount: 2},
		},
	}
	d.Versions[document.VersionDetail] = document.Version{
		Title: "Grundsteuer Newsletter - Detailausgabe",
		Text:  long + long,
	}
	d.PrimarySource = "BGBl. I S. 123"
	d.SecondarySource = "BStBl. II 2025"
	d.Checklist = document.Checklist{Total: 4, Checked: 4}
	return d
}

func TestCleanDocumentHasNoIssues(t *testing.T) {
	issues := New().Run(fullDoc(), document.VersionKompakt)
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %+v", issues)
	}
}

func TestMissingDataMarkerIsError(t *testing.T) {
	d := fullDoc()
	v := d.Versions[document.VersionKompakt]
	v.Text += " [DATEN ERFORDERLICH: Titel] weiterer Text"
	d.Versions[document.VersionKompakt] = v

	issues := New().Run(d, document.VersionKompakt)
	found := 0
	for _, i := range issues {
		if i.Severity == SeverityError && strings.Contains(i.Message, "Fehlende Daten in KOMPAKT") {
			found++
		}
	}
	if found != 1 {
		t.Errorf("expected exactly one missing-data error, got %d (%+v)", found, issues)
	}
}

func TestEveryMarkerOccurrenceFlagged(t *testing.T) {
	d := fullDoc()
	v := d.Versions[document.VersionKompakt]
	v.Text += " [DATEN ERFORDERLICH: a] und [DATEN ERFORDERLICH: b]"
	d.Versions[document.VersionKompakt] = v

	s := Summarize(New().Run(d, document.VersionKompakt))
	if s.Errors != 2 {
		t.Errorf("expected 2 errors, got %d", s.Errors)
	}
}

func TestPrimarySourceRequired(t *testing.T) {
	d := fullDoc()
	d.PrimarySource = ""

	issues := New().Run(d, document.VersionKompakt)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %+v", issues)
	}
	if issues[0].Severity != SeverityError || issues[0].Message != "Primärquelle erforderlich" {
		t.Errorf("unexpected issue: %+v", issues[0])
	}
	// Filled secondary source must not produce a warning.
	for _, i := range issues {
		if strings.Contains(i.Message, "Sekundärquelle") {
			t.Error("unexpected secondary-source warning")
		}
	}
}

func TestSecondarySourceRecommended(t *testing.T) {
	d := fullDoc()
	d.SecondarySource = ""

	issues := New().Run(d, document.VersionKompakt)
	if len(issues) != 1 || issues[0].Severity != SeverityWarning {
		t.Fatalf("expected 1 warning, got %+v", issues)
	}
}

func TestItemSourceFieldWarning(t *testing.T) {
	d := fullDoc()
	v := d.Versions[document.VersionKompakt]
	v.SourceFields = []string{"BGBl. I S. 1", "", "  "}
	d.Versions[document.VersionKompakt] = v

	s := Summarize(New().Run(d, document.VersionKompakt))
	if s.Warnings != 2 {
		t.Errorf("expected 2 warnings for empty source fields, got %d", s.Warnings)
	}
}

func TestVerificationChecklist(t *testing.T) {
	tests := []struct {
		checked, total int
		severity       Severity
		contains       string
	}{
		{0, 4, SeverityError, "Keine Verifikationsschritte"},
		{2, 4, SeverityWarning, "2 Verifikationsschritte ausstehend"},
	}
	for _, tt := range tests {
		d := fullDoc()
		d.Checklist = document.Checklist{Total: tt.total, Checked: tt.checked}

		issues := New().Run(d, document.VersionKompakt)
		if len(issues) != 1 {
			t.Fatalf("checked=%d: expected 1 issue, got %+v", tt.checked, issues)
		}
		if issues[0].Severity != tt.severity || !strings.Contains(issues[0].Message, tt.contains) {
			t.Errorf("checked=%d: unexpected issue %+v", tt.checked, issues[0])
		}
	}
}

func TestShortContentWarning(t *testing.T) {
	d := fullDoc()
	v := d.Versions[document.VersionKompakt]
	v.Text = "Kurz."
	d.Versions[document.VersionKompakt] = v

	issues := New().Run(d, document.VersionKompakt)
	found := false
	for _, i := range issues {
		if i.Severity == SeverityWarning && strings.Contains(i.Message, "sehr kurz") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected short-content warning, got %+v", issues)
	}
}

func TestEmptySectionInfo(t *testing.T) {
	d := fullDoc()
	v := d.Versions[document.VersionKompakt]
	v.Sections = append(v.Sections, document.Section{Title: "Gerichtsurteile"})
	d.Versions[document.VersionKompakt] = v

	issues := New().Run(d, document.VersionKompakt)
	if len(issues) != 1 || issues[0].Severity != SeverityInfo {
		t.Fatalf("expected 1 info issue, got %+v", issues)
	}
	if !strings.Contains(issues[0].Message, `"Gerichtsurteile"`) {
		t.Errorf("expected section title in message, got %q", issues[0].Message)
	}
}

func TestEmptyVersionInfo(t *testing.T) {
	d := fullDoc()
	d.Versions[document.VersionDetail] = document.Version{}

	issues := New().Run(d, document.VersionKompakt)
	found := false
	for _, i := range issues {
		if i.Severity == SeverityInfo && strings.Contains(i.Message, "Detail-Version leer") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected empty-version info, got %+v", issues)
	}
}

func TestTitleMismatchWarning(t *testing.T) {
	d := fullDoc()
	v := d.Versions[document.VersionDetail]
	v.Title = "Etwas ganz anderes"
	d.Versions[document.VersionDetail] = v

	issues := New().Run(d, document.VersionKompakt)
	if len(issues) != 1 || issues[0].Severity != SeverityWarning {
		t.Fatalf("expected 1 title warning, got %+v", issues)
	}
}

func TestTitlePlaceholderIgnored(t *testing.T) {
	d := fullDoc()
	k := d.Versions[document.VersionKompakt]
	k.Title = document.TitlePlaceholder
	d.Versions[document.VersionKompakt] = k

	if issues := New().Run(d, document.VersionKompakt); len(issues) != 0 {
		t.Errorf("expected placeholder title to be ignored, got %+v", issues)
	}
}

func TestDeterministicIssueOrder(t *testing.T) {
	d := fullDoc()
	d.PrimarySource = ""
	d.SecondarySource = ""
	d.Checklist = document.Checklist{Total: 4, Checked: 1}
	v := d.Versions[document.VersionKompakt]
	v.Text = "[DATEN ERFORDERLICH: x]"
	d.Versions[document.VersionKompakt] = v

	val := New()
	a := val.Run(d, document.VersionKompakt)
	b := val.Run(d, document.VersionKompakt)
	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical ordered issue lists for identical input")
	}
	if len(a) < 4 {
		t.Fatalf("expected several issues, got %+v", a)
	}
	// Fixed check order: missing data before sources before verification.
	if !strings.Contains(a[0].Message, "Fehlende Daten") {
		t.Errorf("expected missing-data issue first, got %+v", a[0])
	}
}

func TestSummarizeWorstSeverity(t *testing.T) {
	s := Summarize([]Issue{
		{Severity: SeverityInfo},
		{Severity: SeverityWarning},
		{Severity: SeverityWarning},
	})
	if s.Worst != SeverityWarning || s.Warnings != 2 || s.Infos != 1 || s.Errors != 0 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(30 * time.Millisecond)
	for i := 0; i < 5; i++ {
		d.Trigger(func() { runs.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("expected 1 run, got %d", got)
	}
}

func TestDebouncerStop(t *testing.T) {
	var runs atomic.Int32
	d := NewDebouncer(20 * time.Millisecond)
	d.Trigger(func() { runs.Add(1) })
	d.Stop()
	time.Sleep(60 * time.Millisecond)
	if runs.Load() != 0 {
		t.Error("expected stopped debouncer not to fire")
	}
}
