package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"taxletter/internal/factcheck"
	"taxletter/internal/generate"
	"taxletter/internal/sources"
	"taxletter/internal/store"
	doctemplate "taxletter/internal/template"
	"taxletter/internal/validate"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Server is the HTTP editor: HTML pages plus the JSON API the editor
// frontend talks to.
type Server struct {
	store     *store.DB
	registry  *doctemplate.Registry
	validator *validate.Validator
	checker   factcheck.Checker
	slots     *factcheck.Slots
	generator *generate.Client
	sources   *sources.Fetcher
	pages     map[string]*template.Template
	mux       *http.ServeMux
}

// Deps bundles the collaborators a Server needs.
type Deps struct {
	Store     *store.DB
	Registry  *doctemplate.Registry
	Validator *validate.Validator
	Checker   factcheck.Checker
	Slots     *factcheck.Slots
	Generator *generate.Client
	Sources   *sources.Fetcher
}

// New creates a new Server.
func New(deps Deps) (*Server, error) {
	funcMap := template.FuncMap{
		"raw": func(s string) template.HTML { return template.HTML(s) }, //nolint: gosec
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// For each page template, clone the base and parse the page into the clone.
	// This gives each page its own {{define "content"}} and {{define "title"}}.
	pageNames := []string{"index.html", "preview.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{
		store:     deps.Store,
		registry:  deps.Registry,
		validator: deps.Validator,
		checker:   deps.Checker,
		slots:     deps.Slots,
		generator: deps.Generator,
		sources:   deps.Sources,
		pages:     pages,
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Pages
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/preview", s.handlePreview)

	// JSON API
	s.mux.HandleFunc("/api/templates", s.handleTemplates)
	s.mux.HandleFunc("/api/templates/", s.handleTemplate)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/validate", s.handleValidate)
	s.mux.HandleFunc("/api/factcheck", s.handleFactCheck)
	s.mux.HandleFunc("/api/factcheck/compare", s.handleCompare)
	s.mux.HandleFunc("/api/draft", s.handleDraft)
	s.mux.HandleFunc("/api/export", s.handleExport)
	s.mux.HandleFunc("/api/generate", s.handleGenerate)
	s.mux.HandleFunc("/api/sources", s.handleSources)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	type card struct {
		ID, Name, Description, Icon string
	}
	var cards []card
	for _, def := range s.registry.All() {
		cards = append(cards, card{def.ID, def.Name, def.Description, def.Icon})
	}

	data := map[string]any{"Templates": cards}
	if draft, ok, err := s.store.LoadDraft(); err == nil && ok {
		data["Draft"] = draft
	}
	s.render(w, "index.html", data)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	if draft, ok, err := s.store.LoadDraft(); err == nil && ok {
		data["Content"] = previewContent(draft.Content)
		data["DocumentType"] = draft.DocumentType
		data["UpdatedAt"] = draft.UpdatedAt
	}
	s.render(w, "preview.html", data)
}

// previewContent passes HTML drafts through and converts markdown drafts.
func previewContent(content string) string {
	if strings.HasPrefix(strings.TrimSpace(content), "<") {
		return content
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

// Serve starts the HTTP server on the given port.
func Serve(deps Deps, port int) error {
	srv, err := New(deps)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return httpSrv.ListenAndServe()
}
