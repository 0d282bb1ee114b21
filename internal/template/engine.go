package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrNotFound is returned by Render for an unregistered template id.
var ErrNotFound = errors.New("template not found")

// MissingDataPrefix marks unfilled fields in rendered output. The validator
// scans editable content for this literal.
const MissingDataPrefix = "[DATEN ERFORDERLICH"

// ValidationResult reports required-field completeness for one template.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks that every required field of the template has a
// non-whitespace value. Error messages reference the field label.
func (r *Registry) Validate(id string, values map[string]string) ValidationResult {
	def, ok := r.Get(id)
	if !ok {
		return ValidationResult{Valid: false, Errors: []string{"Template not found"}}
	}

	var errs []string
	for _, f := range def.Fields {
		if f.Required && strings.TrimSpace(values[f.Name]) == "" {
			errs = append(errs, fmt.Sprintf("%s ist ein Pflichtfeld", f.Label))
		}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// Render produces the item markup for a template and field values.
// Fields with a non-empty value are interpolated verbatim and keep their
// {{#field}} blocks; empty fields drop those blocks, keep {{^field}}
// blocks, and bare markers become a visible [DATEN ERFORDERLICH: field]
// flag. Markers that reference nothing known are stripped.
func (r *Registry) Render(id string, values map[string]string) (string, error) {
	def, ok := r.Get(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	vals := withDerived(values)
	var b strings.Builder
	renderNodes(&b, def, def.nodes, vals)
	return b.String(), nil
}

// withDerived adds classification_text when a classification is set and the
// caller did not supply its display text.
func withDerived(values map[string]string) map[string]string {
	c := strings.TrimSpace(values["classification"])
	if c == "" || strings.TrimSpace(values["classification_text"]) != "" {
		return values
	}
	vals := make(map[string]string, len(values)+1)
	for k, v := range values {
		vals[k] = v
	}
	vals["classification_text"] = ClassificationText(c)
	return vals
}

func renderNodes(b *strings.Builder, def *Definition, nodes []node, vals map[string]string) {
	for _, n := range nodes {
		switch n := n.(type) {
		case textNode:
			b.WriteString(string(n))
		case varNode:
			name := string(n)
			if v, ok := vals[name]; ok && strings.TrimSpace(v) != "" {
				b.WriteString(v)
			} else if _, known := def.field(name); known {
				b.WriteString(MissingDataPrefix + ": " + name + "]")
			}
			// Anything else is an unreferenced marker and renders empty.
		case *sectionNode:
			present := strings.TrimSpace(vals[n.field]) != ""
			if present != n.inverted {
				renderNodes(b, def, n.children, vals)
			}
		}
	}
}

// Fields returns the ordered field specs for a template.
func (r *Registry) Fields(id string) ([]FieldSpec, bool) {
	def, ok := r.Get(id)
	if !ok {
		return nil, false
	}
	out := make([]FieldSpec, len(def.Fields))
	copy(out, def.Fields)
	return out, true
}

// FormFields renders the input form markup for a template in field order,
// so embedding UIs need no field knowledge of their own. Returns "" for an
// unknown id.
func (r *Registry) FormFields(id string) string {
	def, ok := r.Get(id)
	if !ok {
		return ""
	}

	var b strings.Builder
	for _, f := range def.Fields {
		b.WriteString(`<div class="template-field">`)
		b.WriteString(fmt.Sprintf(`<label for="%s">%s%s</label>`, f.Name, f.Label, requiredMark(f.Required)))

		switch f.Type {
		case FieldTextarea:
			b.WriteString(fmt.Sprintf(`<textarea id="%s" name="%s" placeholder="%s"%s></textarea>`,
				f.Name, f.Name, f.Placeholder, requiredAttr(f.Required)))
		case FieldSelect:
			b.WriteString(fmt.Sprintf(`<select id="%s" name="%s"%s>`, f.Name, f.Name, requiredAttr(f.Required)))
			b.WriteString(`<option value="">Bitte wählen...</option>`)
			for _, o := range f.Options {
				b.WriteString(fmt.Sprintf(`<option value="%s">%s</option>`, o.Value, o.Text))
			}
			b.WriteString(`</select>`)
		case FieldDate:
			b.WriteString(fmt.Sprintf(`<input type="date" id="%s" name="%s"%s>`, f.Name, f.Name, requiredAttr(f.Required)))
		default:
			b.WriteString(fmt.Sprintf(`<input type="text" id="%s" name="%s" placeholder="%s"%s>`,
				f.Name, f.Name, f.Placeholder, requiredAttr(f.Required)))
		}
		b.WriteString(`</div>`)
	}
	return b.String()
}

func requiredMark(required bool) string {
	if required {
		return " *"
	}
	return ""
}

func requiredAttr(required bool) string {
	if required {
		return " required"
	}
	return ""
}

// Suggest returns up to three registered ids close to the given unknown id,
// for "did you mean" hints.
func (r *Registry) Suggest(id string) []string {
	matches := fuzzy.Find(id, r.IDs())
	var out []string
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}
