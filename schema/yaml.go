package schema

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// yamlDocument is the on-disk shape read by YAMLSource:
//
//	groups:
//	  - id: group_article
//	    fields:
//	      - name: gallery
//	        type: repeater
//	        sub_fields:
//	          - name: caption
//	            type: text
type yamlDocument struct {
	Groups []yamlGroup `yaml:"groups"`
}

type yamlGroup struct {
	ID     string      `yaml:"id"`
	Title  string      `yaml:"title"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Type      string         `yaml:"type"`
	Order     *int           `yaml:"order"`
	Settings  map[string]any `yaml:"settings"`
	Default   any            `yaml:"default"`
	SubFields []yamlField    `yaml:"sub_fields"`
}

// YAMLSource serves definitions parsed from a YAML document.
// Fields without an id get a generated one.
type YAMLSource struct {
	*StaticSource
	groups []string
}

// ParseYAML parses a schema document.
func ParseYAML(data []byte) (*YAMLSource, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidSchema, err)
	}

	src := &YAMLSource{StaticSource: NewStaticSource()}
	for _, g := range doc.Groups {
		if g.ID == "" {
			return nil, fmt.Errorf("%w: field group without id", ErrInvalidSchema)
		}
		src.groups = append(src.groups, g.ID)
		src.addFields(g.ID, g.Fields)
	}
	return src, nil
}

// LoadYAMLFile reads and parses a schema document from path.
func LoadYAMLFile(path string) (*YAMLSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAML(data)
}

// Groups returns the field group ids in document order.
func (s *YAMLSource) Groups() []string {
	return s.groups
}

// Tree loads the field tree of group.
func (s *YAMLSource) Tree(ctx context.Context, group string, maxDepth int) ([]*Field, error) {
	return Load(ctx, s, group, maxDepth)
}

func (s *YAMLSource) addFields(parentID string, fields []yamlField) {
	for i, f := range fields {
		id := f.ID
		if id == "" {
			id = "field_" + uuid.NewString()
		}
		order := i
		if f.Order != nil {
			order = *f.Order
		}
		var settings Settings
		if len(f.Settings) > 0 {
			settings = Settings(f.Settings)
		}
		s.Add(Definition{
			ID:       id,
			ParentID: parentID,
			Name:     f.Name,
			Type:     f.Type,
			Order:    order,
			Settings: settings,
			Default:  f.Default,
		})
		if len(f.SubFields) > 0 {
			s.addFields(id, f.SubFields)
		}
	}
}
