// Package inspector implements the schema-driven component property editor:
// per-type field sets, the tabbed shell, input decoding and export. It does no
// I/O; updates leave through the shell's callbacks as component patches.
package inspector

import (
	"fmt"

	"github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"
)

// Control is the kind of form control a field renders as.
type Control string

const (
	ControlText     Control = "text"
	ControlTextarea Control = "textarea"
	ControlCheckbox Control = "checkbox"
	ControlSelect   Control = "select"
	ControlNumber   Control = "number"
)

// Option is one entry of a select control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field binds a label and control to one fixed leaf of a component. The
// reader and writer closures are built from typed keys, so a field can only
// ever touch the path it was declared with.
type Field struct {
	ID          string
	Label       string
	Control     Control
	Options     []Option
	Placeholder string
	Group       string

	read  func(*component.Component) any
	write func(*component.Component, any) component.Patch
}

// Value returns the current value of the field, with the field default
// applied when the leaf is absent.
func (f Field) Value(c *component.Component) any {
	return f.read(c)
}

// Write builds the patch that sets the field to v. v must already be decoded
// for the field's control.
func (f Field) Write(c *component.Component, v any) component.Patch {
	return f.write(c, v)
}

// HasOption reports whether value is one of the field's declared options.
func (f Field) HasOption(value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// FieldValue is a rendered snapshot of a field for templates and JSON.
type FieldValue struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Control     Control  `json:"control"`
	Options     []Option `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Group       string   `json:"group,omitempty"`
	Value       any      `json:"value"`
}

func snapshot(f Field, c *component.Component) FieldValue {
	return FieldValue{
		ID:          f.ID,
		Label:       f.Label,
		Control:     f.Control,
		Options:     f.Options,
		Placeholder: f.Placeholder,
		Group:       f.Group,
		Value:       f.Value(c),
	}
}

func options(values ...string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: v}
	}
	return out
}

func labelled(pairs ...string) []Option {
	out := make([]Option, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Option{Value: pairs[i], Label: pairs[i+1]})
	}
	return out
}

// --- props -----------------------------------------------------------------

func textProp(key component.PropKey, label, placeholder string) Field {
	return Field{
		ID:          string(key),
		Label:       label,
		Control:     ControlText,
		Placeholder: placeholder,
		read: func(c *component.Component) any {
			v, _ := c.Prop(key)
			return asString(v)
		},
		write: func(c *component.Component, v any) component.Patch {
			return component.SetProp(c, key, asString(v))
		},
	}
}

func textareaProp(key component.PropKey, label, placeholder string) Field {
	f := textProp(key, label, placeholder)
	f.Control = ControlTextarea
	return f
}

// checkboxProp reads a stored value by truthiness, so a missing key is
// unchecked.
func checkboxProp(key component.PropKey, label string) Field {
	return Field{
		ID:      string(key),
		Label:   label,
		Control: ControlCheckbox,
		read: func(c *component.Component) any {
			v, _ := c.Prop(key)
			return truthy(v)
		},
		write: func(c *component.Component, v any) component.Patch {
			return component.SetProp(c, key, asBool(v))
		},
	}
}

// softTrueProp reads true unless the stored value is literally false, so
// absent and non-boolean values both show checked.
func softTrueProp(key component.PropKey, label string) Field {
	f := checkboxProp(key, label)
	f.read = func(c *component.Component) any {
		v, _ := c.Prop(key)
		b, ok := v.(bool)
		return !(ok && !b)
	}
	return f
}

func selectProp(key component.PropKey, label string, opts []Option, def string) Field {
	return Field{
		ID:      string(key),
		Label:   label,
		Control: ControlSelect,
		Options: opts,
		read: func(c *component.Component) any {
			v, _ := c.Prop(key)
			if s := asString(v); s != "" {
				return s
			}
			return def
		},
		write: func(c *component.Component, v any) component.Patch {
			return component.SetProp(c, key, asString(v))
		},
	}
}

// --- styles ----------------------------------------------------------------

func textStyle(key component.StyleKey, label, placeholder string) Field {
	return Field{
		ID:          string(key),
		Label:       label,
		Control:     ControlText,
		Placeholder: placeholder,
		read: func(c *component.Component) any {
			v, _ := c.Style(key)
			return asString(v)
		},
		write: func(c *component.Component, v any) component.Patch {
			return component.SetStyle(c, key, asString(v))
		},
	}
}

func selectStyle(key component.StyleKey, label string, opts []Option, def string) Field {
	return Field{
		ID:      string(key),
		Label:   label,
		Control: ControlSelect,
		Options: opts,
		read: func(c *component.Component) any {
			v, _ := c.Style(key)
			if s := asString(v); s != "" {
				return s
			}
			return def
		},
		write: func(c *component.Component, v any) component.Patch {
			return component.SetStyle(c, key, asString(v))
		},
	}
}

func spacingField(box component.SpacingBox, edge component.Edge, group string) Field {
	return Field{
		ID:      string(box) + "." + string(edge),
		Label:   capitalize(string(edge)),
		Control: ControlNumber,
		Group:   group,
		read: func(c *component.Component) any {
			return component.SpacingValue(c, box, edge)
		},
		write: func(c *component.Component, v any) component.Patch {
			return component.SetSpacing(c, box, edge, asInt(v))
		},
	}
}

// --- responsive ------------------------------------------------------------

func responsiveText(bp component.Breakpoint, key component.ResponsiveKey, label, placeholder string) Field {
	return Field{
		ID:          string(bp) + "." + string(key),
		Label:       label,
		Control:     ControlText,
		Placeholder: placeholder,
		Group:       capitalize(string(bp)),
		read: func(c *component.Component) any {
			v, _ := c.ResponsiveValue(bp, key)
			return asString(v)
		},
		write: func(c *component.Component, v any) component.Patch {
			return component.SetResponsive(c, bp, key, asString(v))
		},
	}
}

func responsiveHidden(bp component.Breakpoint) Field {
	return Field{
		ID:      string(bp) + "." + string(component.ResponsiveHidden),
		Label:   "Hide on " + string(bp),
		Control: ControlCheckbox,
		Group:   capitalize(string(bp)),
		read: func(c *component.Component) any {
			v, _ := c.ResponsiveValue(bp, component.ResponsiveHidden)
			return truthy(v)
		},
		write: func(c *component.Component, v any) component.Patch {
			return component.SetResponsive(c, bp, component.ResponsiveHidden, asBool(v))
		},
	}
}

// --- advanced --------------------------------------------------------------

func advancedField(key component.AdvancedKey, label, placeholder string, control Control) Field {
	return Field{
		ID:          string(key),
		Label:       label,
		Control:     control,
		Placeholder: placeholder,
		read: func(c *component.Component) any {
			return c.Advanced(key)
		},
		write: func(c *component.Component, v any) component.Patch {
			return component.SetAdvanced(c, key, asString(v))
		},
	}
}

// --- coercion --------------------------------------------------------------

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// truthy treats empty strings, zero numbers and nil as false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	}
	return true
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case string:
		return component.ParseSpacing(t)
	}
	return 0
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
