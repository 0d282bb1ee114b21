package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taxletter/internal/document"
	"taxletter/internal/export"
	"taxletter/internal/generate"
	"taxletter/internal/sources"
	"taxletter/internal/validate"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Ungültige Anfrage: " + err.Error(),
		})
		return false
	}
	return true
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

type templateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type fieldInfo struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Type        string       `json:"type"`
	Required    bool         `json:"required"`
	Placeholder string       `json:"placeholder,omitempty"`
	Options     []optionInfo `json:"options,omitempty"`
}

type optionInfo struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	infos := []templateInfo{}
	for _, def := range s.registry.All() {
		infos = append(infos, templateInfo{def.ID, def.Name, def.Description, def.Icon})
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": infos})
}

// handleTemplate serves /api/templates/{id}/fields and /api/templates/{id}/form.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/templates/")
	parts := strings.SplitN(path, "/", 2)
	id := parts[0]

	fields, ok := s.registry.Fields(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success":     false,
			"error":       "Template not found",
			"suggestions": s.registry.Suggest(id),
		})
		return
	}

	if len(parts) == 2 && parts[1] == "form" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, s.registry.FormFields(id))
		return
	}

	infos := make([]fieldInfo, 0, len(fields))
	for _, f := range fields {
		fi := fieldInfo{
			Name:        f.Name,
			Label:       f.Label,
			Type:        string(f.Type),
			Required:    f.Required,
			Placeholder: f.Placeholder,
		}
		for _, o := range f.Options {
			fi.Options = append(fi.Options, optionInfo{o.Value, o.Text})
		}
		infos = append(infos, fi)
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "fields": infos})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req struct {
		Template string            `json:"template"`
		Data     map[string]string `json:"data"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	result := s.registry.Validate(req.Template, req.Data)
	if !result.Valid {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"errors":  result.Errors,
		})
		return
	}

	html, err := s.registry.Render(req.Template, req.Data)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success":     false,
			"error":       "Template not found",
			"suggestions": s.registry.Suggest(req.Template),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "html": html})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req struct {
		Document document.Document `json:"document"`
		Version  string            `json:"version"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if req.Version == "" {
		req.Version = document.VersionKompakt
	}

	issues := s.validator.Run(&req.Document, req.Version)
	if issues == nil {
		issues = []validate.Issue{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"issues":  issues,
		"summary": validate.Summarize(issues),
	})
}

func (s *Server) handleFactCheck(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		scope := r.URL.Query().Get("scope")
		result, ok := s.slots.Get(scope)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Keine Prüfung vorhanden"})
			return
		}
		writeJSON(w, http.StatusOK, result)

	case http.MethodPost:
		var req struct {
			Scope string `json:"scope"`
			Text  string `json:"text"`
		}
		if !readJSON(w, r, &req) {
			return
		}
		result, err := s.checker.Check(r.Context(), req.Scope, req.Text)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
			return
		}
		s.slots.Put(result)
		writeJSON(w, http.StatusOK, result)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req struct {
		Kompakt string `json:"kompakt"`
		Detail  string `json:"detail"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	result, err := s.checker.Compare(r.Context(), req.Kompakt, req.Detail)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}
	s.slots.PutComparison(result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		draft, ok, err := s.store.LoadDraft()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
			return
		}
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{"exists": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"exists":        true,
			"content":       draft.Content,
			"document_type": draft.DocumentType,
			"updated_at":    draft.UpdatedAt,
		})

	case http.MethodPost:
		var req struct {
			Content      string `json:"content"`
			DocumentType string `json:"document_type"`
		}
		if !readJSON(w, r, &req) {
			return
		}
		if err := s.store.SaveDraft(req.Content, req.DocumentType); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req struct {
		Format  string          `json:"format"`
		Title   string          `json:"title"`
		Content string          `json:"content"`
		Data    json.RawMessage `json:"data"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	now := time.Now()
	var file *export.File
	var err error
	switch export.Format(req.Format) {
	case export.FormatHTML:
		file, err = export.HTML(req.Title, req.Content, now)
	case export.FormatMarkdown:
		file = export.Markdown(req.Content, now)
	case export.FormatJSON:
		file, err = export.JSON(req.Data, now)
	case export.FormatMarkup:
		file = export.Markup(req.Title, req.Content, now)
	case export.FormatPDF:
		writeJSON(w, http.StatusNotImplemented, map[string]any{
			"success": false,
			"error":   "PDF-Export wird später verfügbar sein",
		})
		return
	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Unbekanntes Exportformat: " + req.Format,
		})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", file.MIME)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.Write(file.Content)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	var req struct {
		DocumentType string         `json:"document_type"`
		Template     string         `json:"template"`
		Data         map[string]any `json:"data"`
		Config       map[string]any `json:"config"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if req.DocumentType == "" {
		req.DocumentType = string(document.TypeNewsletter)
	}

	html, err := s.generator.Generate(r.Context(), req.DocumentType, generate.Request{
		Data:     req.Data,
		Config:   req.Config,
		Template: req.Template,
	})
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "html": html})
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	suggestions := s.sources.Suggest(r.Context(), query, limit)
	if suggestions == nil {
		suggestions = []sources.Suggestion{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
