package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a package import file (JSON or YAML).
type ImportSchema struct {
	Package     PackageImport      `json:"package" yaml:"package"`
	Subpackages []SubpackageImport `json:"subpackages" yaml:"subpackages"`
	Services    []ServiceImport    `json:"services" yaml:"services"`
}

// PackageImport defines the package-level fields in the import file.
type PackageImport struct {
	Name string `json:"name" yaml:"name"`
}

// SubpackageImport defines a subpackage in the import file.
type SubpackageImport struct {
	Ref   string `json:"ref" yaml:"ref"`
	Name  string `json:"name" yaml:"name"`
	Order int    `json:"order" yaml:"order"`
}

// ServiceImport defines a service, its checklist and its historical reports.
type ServiceImport struct {
	Ref                string            `json:"ref" yaml:"ref"`
	SubpackageRef      string            `json:"subpackage_ref" yaml:"subpackage_ref"`
	Code               string            `json:"code,omitempty" yaml:"code,omitempty"`
	Name               string            `json:"name" yaml:"name"`
	TotalHours         float64           `json:"total_hours" yaml:"total_hours"`
	PlannedStart       *string           `json:"planned_start,omitempty" yaml:"planned_start,omitempty"`
	PlannedEnd         *string           `json:"planned_end,omitempty" yaml:"planned_end,omitempty"`
	PlannedDailySeries []float64         `json:"planned_daily_series,omitempty" yaml:"planned_daily_series,omitempty"`
	Checklist          []ChecklistImport `json:"checklist,omitempty" yaml:"checklist,omitempty"`
	// Reports are raw progress records in whatever shape the upstream channel used.
	Reports []RawReport `json:"reports,omitempty" yaml:"reports,omitempty"`
}

// ChecklistImport defines a weighted checklist item.
type ChecklistImport struct {
	ID       string  `json:"id" yaml:"id"`
	Title    string  `json:"title,omitempty" yaml:"title,omitempty"`
	Weight   float64 `json:"weight" yaml:"weight"`
	Progress float64 `json:"progress,omitempty" yaml:"progress,omitempty"`
}

// LoadImportSchema reads and parses an import file. Files ending in .yaml or
// .yml are read as YAML, everything else as JSON.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

func ParseJSON(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

func ParseYAML(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// RawReport is one upstream progress record. Decoded from YAML, timestamp
// scalars keep their source text, so a bare 2024-01-02 stays a calendar date
// instead of becoming UTC midnight.
type RawReport map[string]any

func (r *RawReport) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: report must be a mapping", node.Line)
	}
	v, err := yamlValue(node)
	if err != nil {
		return err
	}
	*r = v.(map[string]any)
	return nil
}

// yamlValue decodes node like yaml.v3 does into an any, except that
// !!timestamp scalars stay strings.
func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return nil, err
			}
			v, err := yamlValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, 0, len(node.Content))
		for _, n := range node.Content {
			v, err := yamlValue(n)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	case yaml.ScalarNode:
		if node.ShortTag() == "!!timestamp" {
			return node.Value, nil
		}
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
