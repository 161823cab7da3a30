package inspector

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func rawFor(f Field, current any) string {
	switch f.Control {
	case ControlCheckbox:
		if b, _ := current.(bool); b {
			return "false"
		}
		return "true"
	case ControlSelect:
		return f.Options[len(f.Options)-1].Value
	case ControlNumber:
		return "42"
	}
	return "edited " + f.ID
}

func TestPropertyFields_RoundTripEveryField(t *testing.T) {
	for _, typ := range component.KnownTypes {
		fields, ok := PropertyFields(typ)
		require.True(t, ok, "type %s", typ)
		require.NotEmpty(t, fields)

		for _, f := range fields {
			t.Run(string(typ)+"/"+f.ID, func(t *testing.T) {
				c := &component.Component{
					ID:     "c1",
					Type:   typ,
					Props:  component.Attributes{"untouched": "keep me"},
					Styles: component.Attributes{"textColor": "blue"},
				}
				v, err := Decode(f, rawFor(f, f.Value(c)))
				require.NoError(t, err)

				got := f.Write(c, v).Apply(c)

				assert.Equal(t, v, got.Props[f.ID])
				assert.Equal(t, v, f.Value(got))
				assert.Equal(t, "keep me", got.Props["untouched"])
				assert.Equal(t, c.Styles, got.Styles)
			})
		}
	}
}

func TestPropertyFields_UniqueIDs(t *testing.T) {
	for _, typ := range component.KnownTypes {
		fields, _ := PropertyFields(typ)
		seen := map[string]bool{}
		for _, f := range fields {
			assert.False(t, seen[f.ID], "duplicate field %s on %s", f.ID, typ)
			seen[f.ID] = true
		}
	}
}

func TestFormSoftTrueDefaults(t *testing.T) {
	c := &component.Component{ID: "f1", Type: component.TypeForm}

	values := map[string]any{}
	for _, fv := range RenderPanel(c).Fields {
		values[fv.ID] = fv.Value
	}

	assert.Equal(t, true, values["includeName"])
	assert.Equal(t, true, values["includeEmail"])
	assert.Equal(t, true, values["includeMessage"])
	assert.Equal(t, false, values["includePhone"])
}

func TestFormSoftTrue_OnlyLiteralFalseUnchecks(t *testing.T) {
	f, ok := FindField(TabProperties, &component.Component{Type: component.TypeForm}, "includeEmail")
	require.True(t, ok)

	cases := []struct {
		stored any
		want   bool
	}{
		{false, false},
		{true, true},
		{"false", true},
		{nil, true},
		{0, true},
	}
	for _, tc := range cases {
		c := &component.Component{Type: component.TypeForm, Props: component.Attributes{"includeEmail": tc.stored}}
		assert.Equal(t, tc.want, f.Value(c), "stored %#v", tc.stored)
	}
}

func TestCheckboxDefaultsFalse(t *testing.T) {
	c := &component.Component{Type: component.TypeHero}
	f, ok := FindField(TabProperties, c, "overlay")
	require.True(t, ok)

	assert.Equal(t, false, f.Value(c))
}

func TestSelectDefaults(t *testing.T) {
	tests := []struct {
		typ   component.Type
		field string
		want  string
	}{
		{component.TypeHeading, "level", "h2"},
		{component.TypeHeading, "alignment", "left"},
		{component.TypeButton, "variant", "primary"},
		{component.TypeButton, "size", "md"},
		{component.TypeImage, "objectFit", "cover"},
		{component.TypeGrid, "columns", "3"},
	}
	for _, tt := range tests {
		c := &component.Component{Type: tt.typ}
		f, ok := FindField(TabProperties, c, tt.field)
		require.True(t, ok)
		assert.Equal(t, tt.want, f.Value(c))
		assert.True(t, f.HasOption(tt.want))
	}
}

func TestSelectShowsStoredNonStringValue(t *testing.T) {
	tests := []struct {
		name   string
		stored any
		want   string
	}{
		{"yaml int", 4, "4"},
		{"json number", float64(5), "5"},
		{"empty string", "", "3"},
		{"missing", nil, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &component.Component{Type: component.TypeGrid, Props: component.Attributes{}}
			if tt.stored != nil {
				c.Props["columns"] = tt.stored
			}

			panel := RenderPanel(c)
			var columns *FieldValue
			for i := range panel.Fields {
				if panel.Fields[i].ID == "columns" {
					columns = &panel.Fields[i]
				}
			}
			require.NotNil(t, columns)
			assert.Equal(t, tt.want, columns.Value)
		})
	}
}

func TestCheckboxReadsTruthyValues(t *testing.T) {
	tests := []struct {
		stored any
		want   bool
	}{
		{true, true},
		{false, false},
		{"yes", true},
		{"", false},
		{1, true},
		{float64(0), false},
		{nil, false},
	}
	for _, tt := range tests {
		c := &component.Component{Type: component.TypeHero, Props: component.Attributes{"overlay": tt.stored}}
		f, ok := FindField(TabProperties, c, "overlay")
		require.True(t, ok)
		assert.Equal(t, tt.want, f.Value(c), "stored %#v", tt.stored)
	}
}

func TestNumericCoercion(t *testing.T) {
	c := &component.Component{ID: "b1", Type: component.TypeButton}
	var emitted []component.Patch
	shell := NewShell(c, func(p component.Patch) { emitted = append(emitted, p) }, nil)

	patch, err := shell.Edit(TabStyles, "padding.top", "not a number")
	require.NoError(t, err)

	got := patch.Apply(c)
	assert.Equal(t, map[string]any{"top": 0}, got.Styles["padding"])
	assert.Equal(t, 0, component.SpacingValue(got, component.SpacingPadding, component.EdgeTop))
	assert.Len(t, emitted, 1)
}

func TestSpacingDefaultsInStylesTab(t *testing.T) {
	c := &component.Component{Type: component.TypeImage}

	values := map[string]any{}
	for _, fv := range RenderTab(TabStyles, c).Fields {
		values[fv.ID] = fv.Value
	}

	for _, edge := range component.Edges {
		assert.Equal(t, 16, values["padding."+string(edge)])
		assert.Equal(t, 0, values["margin."+string(edge)])
	}
	assert.Equal(t, "none", values["boxShadow"])
}

func TestUnknownType_EmptyStateAndNoPatches(t *testing.T) {
	c := &component.Component{ID: "u1", Type: "unknown-widget", Props: component.Attributes{"x": 1}}
	calls := 0
	shell := NewShell(c, func(component.Patch) { calls++ }, nil)

	panel := shell.Panel()
	assert.True(t, panel.IsEmpty())
	assert.Empty(t, panel.Fields)
	assert.Equal(t, NoPropertiesState, *panel.Empty)

	_, err := shell.Edit(TabProperties, "title", "hello")
	assert.True(t, errors.Is(err, ErrUnknownField))
	assert.Zero(t, calls)
}

func TestMissingType_EmptyState(t *testing.T) {
	assert.True(t, RenderPanel(&component.Component{}).IsEmpty())
}

func TestUnknownType_OtherTabsStillEditable(t *testing.T) {
	c := &component.Component{ID: "u1", Type: "unknown-widget"}
	shell := NewShell(c, nil, nil)

	patch, err := shell.Edit(TabAdvanced, "cssClasses", "wide")
	require.NoError(t, err)
	assert.Equal(t, "wide", patch.Apply(c).CSSClasses)
}

func TestSelectRejectsUndeclaredOption(t *testing.T) {
	c := &component.Component{Type: component.TypeButton}
	calls := 0
	shell := NewShell(c, func(component.Patch) { calls++ }, nil)

	_, err := shell.Edit(TabProperties, "variant", "neon")
	assert.True(t, errors.Is(err, ErrOptionNotAllowed))
	assert.Zero(t, calls)

	patch, err := shell.Edit(TabProperties, "variant", "outline")
	require.NoError(t, err)
	assert.Equal(t, "outline", patch.Props["variant"])
	assert.Equal(t, 1, calls)
}

func TestResponsiveEditIsolation(t *testing.T) {
	c := &component.Component{
		Type: component.TypeHeading,
		Responsive: map[component.Breakpoint]component.Attributes{
			component.BreakpointTablet:  {"fontSize": "20px"},
			component.BreakpointDesktop: {"hidden": true},
		},
	}
	shell := NewShell(c, nil, nil)

	patch, err := shell.Edit(TabResponsive, "mobile.fontSize", "12px")
	require.NoError(t, err)
	got := patch.Apply(c)

	assert.Equal(t, component.Attributes{"fontSize": "12px"}, got.Responsive[component.BreakpointMobile])
	assert.Equal(t, c.Responsive[component.BreakpointTablet], got.Responsive[component.BreakpointTablet])
	assert.Equal(t, c.Responsive[component.BreakpointDesktop], got.Responsive[component.BreakpointDesktop])
}

func TestResponsivePaddingStaysText(t *testing.T) {
	c := &component.Component{Type: component.TypeHero}

	patch, err := NewShell(c, nil, nil).Edit(TabResponsive, "tablet.padding", "8px 12px")
	require.NoError(t, err)

	assert.Equal(t, "8px 12px", patch.Responsive[component.BreakpointTablet]["padding"])
}

func TestCheckboxDecode(t *testing.T) {
	f, _ := FindField(TabResponsive, &component.Component{}, "mobile.hidden")

	for _, raw := range []string{"on", "true", "1", "TRUE"} {
		v, err := Decode(f, raw)
		require.NoError(t, err)
		assert.Equal(t, true, v)
	}
	for _, raw := range []string{"", "off", "false", "0"} {
		v, err := Decode(f, raw)
		require.NoError(t, err)
		assert.Equal(t, false, v)
	}
	_, err := Decode(f, "maybe")
	assert.True(t, errors.Is(err, ErrInvalidCheckbox))
}

func TestShellTabs(t *testing.T) {
	shell := NewShell(&component.Component{Type: component.TypeHero}, nil, nil)
	assert.Equal(t, TabProperties, shell.ActiveTab())

	for _, tab := range Tabs {
		require.NoError(t, shell.SelectTab(tab))
		assert.Equal(t, tab, shell.ActiveTab())
		assert.Equal(t, tab, shell.Panel().Tab)
	}

	err := shell.SelectTab("seo")
	assert.True(t, errors.Is(err, ErrUnknownTab))
	assert.Equal(t, TabAdvanced, shell.ActiveTab())
}

func TestShellDeleteForwards(t *testing.T) {
	deleted := 0
	shell := NewShell(&component.Component{ID: "d1"}, nil, func() { deleted++ })

	shell.Delete()
	assert.Equal(t, 1, deleted)
}

func TestShellSync(t *testing.T) {
	c := &component.Component{ID: "h1", Type: component.TypeHeading}
	var store = c
	var shell *Shell
	shell = NewShell(c, func(p component.Patch) {
		store = p.Apply(store)
		shell.Sync(store)
	}, nil)

	_, err := shell.Edit(TabProperties, "text", "Hello")
	require.NoError(t, err)
	_, err = shell.Edit(TabProperties, "level", "h1")
	require.NoError(t, err)

	assert.Equal(t, component.Attributes{"text": "Hello", "level": "h1"}, store.Props)
}

func TestExport(t *testing.T) {
	c := &component.Component{
		ID:    "e1",
		Type:  component.TypeButton,
		Name:  "CTA",
		Props: component.Attributes{"text": "Buy"},
	}
	shell := NewShell(c, nil, nil)

	t.Run("success", func(t *testing.T) {
		cb := &fakeClipboard{}
		res := shell.Export(cb)

		require.True(t, res.Success)
		assert.NoError(t, res.Err)
		assert.Equal(t, res.Payload, cb.text)
		assert.Equal(t, "Component JSON copied to clipboard", res.Message)

		var decoded component.Component
		require.NoError(t, json.Unmarshal([]byte(cb.text), &decoded))
		assert.Equal(t, "e1", decoded.ID)
		assert.Equal(t, "Buy", decoded.Props["text"])
	})

	t.Run("clipboard failure", func(t *testing.T) {
		res := shell.Export(&fakeClipboard{err: errors.New("no display")})

		assert.False(t, res.Success)
		assert.Error(t, res.Err)
		assert.NotEmpty(t, res.Payload)
		assert.Equal(t, "Failed to copy component JSON to clipboard", res.Message)
	})

	t.Run("no clipboard", func(t *testing.T) {
		res := shell.Export(nil)

		assert.True(t, res.Success)
		assert.Contains(t, res.Payload, `"id": "e1"`)
	})
}
