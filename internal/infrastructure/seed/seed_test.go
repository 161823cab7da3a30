package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
)

const fixtureYAML = `
pages:
  - id: home
    components:
      - type: hero
        name: Welcome
        props:
          title: Build faster
          overlay: true
        styles:
          padding:
            top: 32
      - type: form
        props:
          includePhone: true
        responsive:
          mobile:
            hidden: true
  - id: legacy
    components:
      - type: unknown-widget
`

func TestParse(t *testing.T) {
	fixture, err := Parse([]byte(fixtureYAML))
	require.NoError(t, err)
	require.Len(t, fixture.Pages, 2)

	comps := fixture.Components()
	require.Len(t, comps, 3)

	hero := comps[0]
	assert.Equal(t, component.TypeHero, hero.Type)
	assert.Equal(t, "home", hero.PageID)
	assert.Equal(t, 0, hero.Position)
	assert.Equal(t, "Build faster", hero.Props["title"])
	assert.Equal(t, true, hero.Props["overlay"])
	assert.Equal(t, 32, component.SpacingValue(hero, component.SpacingPadding, component.EdgeTop))

	form := comps[1]
	assert.Equal(t, 1, form.Position)
	assert.Equal(t, true, form.Responsive[component.BreakpointMobile]["hidden"])

	assert.Equal(t, component.Type("unknown-widget"), comps[2].Type)
	assert.Equal(t, "legacy", comps[2].PageID)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "pages: []", "no pages"},
		{"missing page id", "pages:\n  - components: []", "has no id"},
		{"missing type", "pages:\n  - id: p\n    components:\n      - name: x", "has no type"},
		{"malformed", "pages: [", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFileAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))

	fromFile, err := LoadFile(path)
	require.NoError(t, err)
	fromReader, err := LoadReader(strings.NewReader(fixtureYAML))
	require.NoError(t, err)
	assert.Equal(t, fromFile, fromReader)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
