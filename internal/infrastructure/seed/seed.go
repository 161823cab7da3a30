// Package seed loads demo pages of components from YAML fixtures.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
)

// Fixture is the top-level seed document.
type Fixture struct {
	Pages []Page `yaml:"pages"`
}

// Page groups the components of one canvas in display order.
type Page struct {
	ID         string                `yaml:"id"`
	Components []component.Component `yaml:"components"`
}

// Parse decodes a YAML fixture and checks that every page and component can
// be stored.
func Parse(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}
	if err := fixture.validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

// LoadFile reads and parses a fixture file.
func LoadFile(filename string) (*Fixture, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return Parse(data)
}

// LoadReader reads and parses a fixture from r.
func LoadReader(r io.Reader) (*Fixture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %w", err)
	}
	return Parse(data)
}

func (f *Fixture) validate() error {
	if len(f.Pages) == 0 {
		return errors.New("seed fixture has no pages")
	}
	for i, page := range f.Pages {
		if page.ID == "" {
			return fmt.Errorf("page %d has no id", i)
		}
		for j, c := range page.Components {
			if c.Type == "" {
				return fmt.Errorf("page %s component %d has no type", page.ID, j)
			}
		}
	}
	return nil
}

// Components flattens the fixture into store-ready components with PageID
// and Position filled from the page layout. Unknown types are kept so the
// inspector's empty state can be exercised.
func (f *Fixture) Components() []*component.Component {
	var out []*component.Component
	for _, page := range f.Pages {
		for i := range page.Components {
			c := component.Clone(&page.Components[i])
			c.PageID = page.ID
			c.Position = i
			out = append(out, c)
		}
	}
	return out
}
