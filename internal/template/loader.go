package template

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Templates can also be loaded from YAML files, e.g. for department-specific
// document types. Field order in the file is preserved, and bodies use the
// same marker semantics as the built-ins.

// UnmarshalYAML accepts either a plain string option or a {value, text}
// mapping, matching the two option shapes of the built-in registry.
func (o *Option) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		o.Value = value.Value
		o.Text = value.Value
		return nil
	}

	type plain Option
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if p.Text == "" {
		p.Text = p.Value
	}
	*o = Option(p)
	return nil
}

// Load parses a template definition from YAML bytes.
func Load(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if d.ID == "" {
		return nil, fmt.Errorf("template without id")
	}
	return &d, nil
}

// LoadFile reads and parses a template definition file.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	return Load(data)
}
