package template

import (
	"fmt"
	"sort"
)

// FieldType describes the form control a field is edited with.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
)

// Option is one selectable value of a select field. Text carries the
// display label when it differs from the stored value.
type Option struct {
	Value string `yaml:"value"`
	Text  string `yaml:"text"`
}

// FieldSpec describes a single data field of a document template.
type FieldSpec struct {
	Name        string    `yaml:"name"`
	Label       string    `yaml:"label"`
	Type        FieldType `yaml:"type"`
	Options     []Option  `yaml:"options,omitempty"`
	Required    bool      `yaml:"required"`
	Placeholder string    `yaml:"placeholder,omitempty"`
}

// Definition is a registered document template: field schema plus body
// markup with {{field}}, {{#field}}...{{/field}} and {{^field}}...{{/field}}
// markers. Fields keep registration order.
type Definition struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Icon        string      `yaml:"icon"`
	Fields      []FieldSpec `yaml:"fields"`
	Body        string      `yaml:"body"`

	nodes []node
}

func (d *Definition) field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Registry holds document templates in a fixed order.
type Registry struct {
	defs []*Definition
	byID map[string]*Definition
}

// NewRegistry creates a registry pre-loaded with the built-in templates.
func NewRegistry() *Registry {
	r := &Registry{byID: make(map[string]*Definition)}
	for _, d := range builtins() {
		if err := r.Register(d); err != nil {
			// Built-ins are static; a failure here is a programming error.
			panic(err)
		}
	}
	return r
}

// Register parses and adds a template definition.
func (r *Registry) Register(d *Definition) error {
	if d.ID == "" {
		return fmt.Errorf("template without id")
	}
	if _, exists := r.byID[d.ID]; exists {
		return fmt.Errorf("duplicate template id: %s", d.ID)
	}
	d.nodes = parse(d.Body)
	r.defs = append(r.defs, d)
	r.byID[d.ID] = d
	return nil
}

// Get looks up a template by id. Callers must check ok.
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// All returns every registered template in registration order.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// IDs returns all template ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.defs))
	for _, d := range r.defs {
		ids = append(ids, d.ID)
	}
	sort.Strings(ids)
	return ids
}

// ampelText maps a classification value to its display text.
var ampelText = map[string]string{
	"pflicht": "Pflicht",
	"bald":    "Bald",
	"radar":   "Radar",
}

// ClassificationText returns the display text for an Ampel classification
// value, or the value itself if it is not a known classification.
func ClassificationText(classification string) string {
	if t, ok := ampelText[classification]; ok {
		return t
	}
	return classification
}
