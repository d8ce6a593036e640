package interview

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates/default_structure.yaml
var defaultStructureYAML []byte

var defaultTemplate = mustParseTemplate(defaultStructureYAML)

type StructureTemplate struct {
	Categories []TemplateCategory `yaml:"categories"`
}

type TemplateCategory struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	DefaultTime int                `yaml:"default_time"`
	Questions   []TemplateQuestion `yaml:"questions"`
}

type TemplateQuestion struct {
	Text    string `yaml:"text"`
	MustAsk bool   `yaml:"must_ask"`
}

// DefaultTemplate returns the structure applied to newly created jobs.
func DefaultTemplate() *StructureTemplate {
	return defaultTemplate
}

// ParseTemplate decodes and validates a structure template.
func ParseTemplate(data []byte) (*StructureTemplate, error) {
	var tmpl StructureTemplate
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to decode structure template: %w", err)
	}

	if len(tmpl.Categories) == 0 {
		return nil, fmt.Errorf("structure template has no categories")
	}

	for i, category := range tmpl.Categories {
		if strings.TrimSpace(category.Name) == "" {
			return nil, fmt.Errorf("structure template category %d has no name", i)
		}
		if category.DefaultTime <= 0 {
			return nil, fmt.Errorf("structure template category %q must have a positive default_time", category.Name)
		}
		for j, question := range category.Questions {
			if strings.TrimSpace(question.Text) == "" {
				return nil, fmt.Errorf("structure template category %q question %d has no text", category.Name, j)
			}
		}
	}

	return &tmpl, nil
}

func mustParseTemplate(data []byte) *StructureTemplate {
	tmpl, err := ParseTemplate(data)
	if err != nil {
		panic(err)
	}
	return tmpl
}
