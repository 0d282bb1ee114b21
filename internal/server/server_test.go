package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"taxletter/internal/factcheck"
	"taxletter/internal/generate"
	"taxletter/internal/sources"
	"taxletter/internal/store"
	doctemplate "taxletter/internal/template"
	"taxletter/internal/validate"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv, err := New(Deps{
		Store:     db,
		Registry:  doctemplate.NewRegistry(),
		Validator: validate.New(),
		Checker:   factcheck.NewMockChecker(42),
		Slots:     factcheck.NewSlots(0),
		Generator: generate.NewClient("http://127.0.0.1:1"),
		Sources:   sources.NewFetcher(nil),
	})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func TestIndexListsTemplates(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Gesetzesänderung") {
		t.Error("expected template cards on index page")
	}
	if !strings.Contains(body, "Kein gespeicherter Entwurf") {
		t.Error("expected empty draft status")
	}
}

func TestIndexUnknownPath(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestPreviewConvertsMarkdownDraft(t *testing.T) {
	srv := newTestServer(t)
	if err := srv.store.SaveDraft("# Überschrift\n\nAbsatz.", "newsletter"); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1") {
		t.Error("expected markdown draft converted to HTML")
	}
}

func TestAPITemplates(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates", nil))

	var resp struct {
		Templates []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"templates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Templates) != 5 {
		t.Errorf("expected 5 built-in templates, got %d", len(resp.Templates))
	}
}

func TestAPITemplateFields(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates/gesetzesaenderung/fields", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Fields []struct {
			Name     string `json:"name"`
			Required bool   `json:"required"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Fields) == 0 || resp.Fields[0].Name != "gesetz" {
		t.Errorf("unexpected fields %+v", resp.Fields)
	}
}

func TestAPITemplateUnknownSuggests(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates/gesetz/fields", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Suggestions) == 0 {
		t.Error("expected template id suggestions")
	}
}

func TestAPIRenderSuccess(t *testing.T) {
	srv := newTestServer(t)
	payload := `{"template":"gesetzesaenderung","data":{
		"gesetz":"Grundsteuergesetz","aenderung_typ":"Änderungsgesetz","inkrafttreten":"2026-01-01",
		"betroffene_bereiche":"Hebesätze","auswirkungen":"Neue Bescheide nötig",
		"handlungsbedarf":"Satzung anpassen","classification":"pflicht"}}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(payload)))

	var resp struct {
		Success bool   `json:"success"`
		HTML    string `json:"html"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %s", rec.Body.String())
	}
	if !strings.Contains(resp.HTML, "Grundsteuergesetz") || strings.Contains(resp.HTML, "{{") {
		t.Errorf("unexpected html %q", resp.HTML)
	}
}

func TestAPIRenderMissingRequired(t *testing.T) {
	srv := newTestServer(t)
	payload := `{"template":"gesetzesaenderung","data":{"gesetz":"GrStG"}}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(payload)))

	var resp struct {
		Success bool     `json:"success"`
		Errors  []string `json:"errors"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Success || len(resp.Errors) == 0 {
		t.Errorf("expected validation errors, got %s", rec.Body.String())
	}
	for _, e := range resp.Errors {
		if !strings.Contains(e, "Pflichtfeld") {
			t.Errorf("expected Pflichtfeld message, got %q", e)
		}
	}
}

func TestAPIValidate(t *testing.T) {
	srv := newTestServer(t)
	payload := `{"document":{"type":"newsletter","versions":{"kompakt":{"title":"T","text":"kurz"},"detail":{"title":"T","text":""}}},"version":"kompakt"}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/validate", strings.NewReader(payload)))

	var resp struct {
		Issues []struct {
			Severity string `json:"severity"`
			Message  string `json:"message"`
		} `json:"issues"`
		Summary struct {
			Errors   int `json:"errors"`
			Warnings int `json:"warnings"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Issues) == 0 {
		t.Error("expected issues for incomplete document")
	}
}

func TestAPIFactCheckRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	payload := `{"scope":"kompakt","text":"Ab dem 15.03.2025 gilt ein Satz von 19,5 % laut § 12."}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/factcheck", strings.NewReader(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/factcheck?scope=kompakt", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected cached result, got %d", rec.Code)
	}
	var result struct {
		Scope  string `json:"scope"`
		Claims []struct {
			Statement string `json:"statement"`
		} `json:"claims"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Scope != "kompakt" || len(result.Claims) == 0 {
		t.Errorf("unexpected cached result %s", rec.Body.String())
	}
}

func TestAPIDraftRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	payload := `{"content":"<h1>Entwurf</h1>","document_type":"newsletter"}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/draft", strings.NewReader(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("save failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/draft", nil))
	var resp struct {
		Exists  bool   `json:"exists"`
		Content string `json:"content"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Exists || resp.Content != "<h1>Entwurf</h1>" {
		t.Errorf("unexpected draft response %s", rec.Body.String())
	}
}

func TestAPIExportMarkdown(t *testing.T) {
	srv := newTestServer(t)
	payload := `{"format":"markdown","content":"# Newsletter"}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, ".md") {
		t.Errorf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "# Newsletter" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestAPIExportPDFNotImplemented(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader(`{"format":"pdf"}`)))
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("expected 501, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "PDF-Export") {
		t.Errorf("expected German stub message, got %s", rec.Body.String())
	}
}

func TestAPISourcesEmptyWithoutFeeds(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sources?q=Grundsteuer", nil))

	var resp struct {
		Suggestions []any `json:"suggestions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Suggestions) != 0 {
		t.Errorf("expected empty suggestions, got %v", resp.Suggestions)
	}
}
