// Package catalog loads bar records from YAML or JSON documents.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/bartier/internal/model"
)

var (
	// ErrNotFound is returned when no bar has the requested id
	ErrNotFound = errors.New("bar not found")
	// ErrInvalidRecord is returned when a record fails validation on load
	ErrInvalidRecord = errors.New("invalid bar record")
	// ErrDuplicateID is returned when two records share an id
	ErrDuplicateID = errors.New("duplicate bar id")
)

// Format is the encoding of a catalog document
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromName guesses the format from a file name or URL path.
// Anything that is not .json is read as YAML.
func FormatFromName(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if strings.EqualFold(path.Ext(name), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Catalog is an ordered, id-indexed set of bar records
type Catalog struct {
	Source string
	bars   []model.BarContent
	index  map[string]int
}

type document struct {
	Bars []model.BarContent `json:"bars" yaml:"bars"`
}

// Decode parses a catalog document. The document is either {bars: [...]}
// or a bare list of records.
func Decode(data []byte, format Format) (*Catalog, error) {
	bars, err := decodeBars(data, format)
	if err != nil {
		return nil, err
	}
	return New(bars)
}

// New builds a catalog from already decoded records
func New(bars []model.BarContent) (*Catalog, error) {
	c := &Catalog{
		bars:  make([]model.BarContent, 0, len(bars)),
		index: make(map[string]int, len(bars)),
	}

	for i, bar := range bars {
		if err := ValidateRecord(bar); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, exists := c.index[bar.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, bar.ID)
		}
		c.index[bar.ID] = len(c.bars)
		c.bars = append(c.bars, bar)
	}

	return c, nil
}

func decodeBars(data []byte, format Format) ([]model.BarContent, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch format {
	case FormatJSON:
		if trimmed[0] == '[' {
			var bars []model.BarContent
			if err := json.Unmarshal(trimmed, &bars); err != nil {
				return nil, fmt.Errorf("decode json catalog: %w", err)
			}
			return bars, nil
		}
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
		return doc.Bars, nil
	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(trimmed, &root); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
		if len(root.Content) == 0 {
			return nil, nil
		}
		node := root.Content[0]
		if node.Kind == yaml.SequenceNode {
			var bars []model.BarContent
			if err := node.Decode(&bars); err != nil {
				return nil, fmt.Errorf("decode yaml catalog: %w", err)
			}
			return bars, nil
		}
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
		return doc.Bars, nil
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
}

// Get returns the bar with the given id
func (c *Catalog) Get(id string) (model.BarContent, error) {
	i, ok := c.index[id]
	if !ok {
		return model.BarContent{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.bars[i], nil
}

// IDs returns bar ids in document order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.bars))
	for i, bar := range c.bars {
		ids[i] = bar.ID
	}
	return ids
}

// Bars returns the records in document order
func (c *Catalog) Bars() []model.BarContent {
	out := make([]model.BarContent, len(c.bars))
	copy(out, c.bars)
	return out
}

// Len returns the number of records
func (c *Catalog) Len() int {
	return len(c.bars)
}
